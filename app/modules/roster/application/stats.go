package rosterservice

import (
	"context"
	"math"
	"time"

	rosterdb "github.com/Black-And-White-Club/clan-roster/app/modules/roster/infrastructure/repositories"
	"github.com/Black-And-White-Club/clan-roster/app/observability"
	"github.com/google/uuid"
)

// GetDashboardStats summarizes the clan. Member figures count active members
// only; party power counts every assigned member.
func (s *RosterService) GetDashboardStats(ctx context.Context, clanID uuid.UUID) (*DashboardStats, error) {
	return observability.Run(ctx, s.telemetry, "GetDashboardStats", clanID.String(), func(ctx context.Context) (*DashboardStats, error) {
		snap, err := s.fetchSnapshot(ctx, clanID, false)
		if err != nil {
			return nil, err
		}
		return buildStats(snap.members, snap.parties, s.now()), nil
	})
}

func buildStats(members []*rosterdb.Member, parties []*rosterdb.Party, now time.Time) *DashboardStats {
	stats := &DashboardStats{
		ClassDistribution: []ClassShare{},
		CPPower:           []PartyPower{},
		RecruitmentNeeds:  []RecruitmentNeed{},
		GeneratedAt:       now,
	}

	levelSum := 0
	groupIndex := map[string]int{}
	partyPower := make(map[uuid.UUID]int64, len(parties))
	for _, m := range members {
		if m.PartyID != nil {
			partyPower[*m.PartyID] += m.CombatPower
		}
		if m.Status != rosterdb.MemberStatusActive {
			continue
		}
		stats.GeneralStats.TotalMembers++
		stats.GeneralStats.TotalPower += m.CombatPower
		levelSum += m.Level

		i, ok := groupIndex[m.ClassGroup]
		if !ok {
			i = len(stats.ClassDistribution)
			groupIndex[m.ClassGroup] = i
			stats.ClassDistribution = append(stats.ClassDistribution, ClassShare{Name: m.ClassGroup})
		}
		stats.ClassDistribution[i].Value++
	}
	if n := stats.GeneralStats.TotalMembers; n > 0 {
		stats.GeneralStats.AvgLevel = int(math.Round(float64(levelSum) / float64(n)))
	}

	for _, p := range parties {
		stats.CPPower = append(stats.CPPower, PartyPower{Name: p.Name, TotalPower: partyPower[p.ID]})
		if len(p.RecruitingClasses) > 0 {
			stats.RecruitmentNeeds = append(stats.RecruitmentNeeds, RecruitmentNeed{
				CPName:            p.Name,
				RecruitingClasses: p.RecruitingClasses,
			})
		}
	}
	return stats
}
