package rosterservice

import (
	"context"
	"fmt"

	rosterdb "github.com/Black-And-White-Club/clan-roster/app/modules/roster/infrastructure/repositories"
	"github.com/Black-And-White-Club/clan-roster/app/observability"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// snapshot is the raw clan data the enriched views are built from.
type snapshot struct {
	members  []*rosterdb.Member
	parties  []*rosterdb.Party
	eventIDs []uuid.UUID
}

// fetchSnapshot loads members, parties and (optionally) event ids
// concurrently. Reads run outside a transaction.
func (s *RosterService) fetchSnapshot(ctx context.Context, clanID uuid.UUID, withEvents bool) (*snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		members, err := s.repo.ListMembers(gctx, nil, clanID)
		if err != nil {
			return fmt.Errorf("failed to list members: %w", err)
		}
		snap.members = members
		return nil
	})
	g.Go(func() error {
		parties, err := s.repo.ListParties(gctx, nil, clanID)
		if err != nil {
			return fmt.Errorf("failed to list parties: %w", err)
		}
		snap.parties = parties
		return nil
	})
	if withEvents {
		g.Go(func() error {
			ids, err := s.repo.ListEventIDs(gctx, nil, clanID)
			if err != nil {
				return fmt.Errorf("failed to list events: %w", err)
			}
			snap.eventIDs = ids
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// ListEnrichedMembers joins each member with its party name and attendance
// counts. Every member is measured against the clan's full event count.
func (s *RosterService) ListEnrichedMembers(ctx context.Context, clanID uuid.UUID) ([]*EnrichedMember, error) {
	return observability.Run(ctx, s.telemetry, "ListEnrichedMembers", clanID.String(), func(ctx context.Context) ([]*EnrichedMember, error) {
		return s.enrichMembers(ctx, clanID)
	})
}

func (s *RosterService) enrichMembers(ctx context.Context, clanID uuid.UUID) ([]*EnrichedMember, error) {
	snap, err := s.fetchSnapshot(ctx, clanID, true)
	if err != nil {
		return nil, err
	}
	if len(snap.members) == 0 {
		return []*EnrichedMember{}, nil
	}

	memberIDs := make([]uuid.UUID, len(snap.members))
	for i, m := range snap.members {
		memberIDs[i] = m.ID
	}
	rows, err := s.repo.ListAttendance(ctx, nil, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	clanEvents := make(map[uuid.UUID]struct{}, len(snap.eventIDs))
	for _, id := range snap.eventIDs {
		clanEvents[id] = struct{}{}
	}
	attended := make(map[uuid.UUID]int, len(snap.members))
	for _, a := range rows {
		if _, ok := clanEvents[a.EventID]; ok {
			attended[a.MemberID]++
		}
	}

	partyNames := make(map[uuid.UUID]string, len(snap.parties))
	for _, p := range snap.parties {
		partyNames[p.ID] = p.Name
	}

	out := make([]*EnrichedMember, 0, len(snap.members))
	for _, m := range snap.members {
		em := &EnrichedMember{
			Member:         m,
			AttendedEvents: attended[m.ID],
			TotalEvents:    len(snap.eventIDs),
		}
		if m.PartyID != nil {
			if name, ok := partyNames[*m.PartyID]; ok {
				em.CPName = &name
			}
		}
		out = append(out, em)
	}
	return out, nil
}

// ListEnrichedParties attaches each party's members and its leader's
// username. Leaders are resolved only among the clan's own members.
func (s *RosterService) ListEnrichedParties(ctx context.Context, clanID uuid.UUID) ([]*EnrichedParty, error) {
	return observability.Run(ctx, s.telemetry, "ListEnrichedParties", clanID.String(), func(ctx context.Context) ([]*EnrichedParty, error) {
		return s.enrichParties(ctx, clanID)
	})
}

func (s *RosterService) enrichParties(ctx context.Context, clanID uuid.UUID) ([]*EnrichedParty, error) {
	snap, err := s.fetchSnapshot(ctx, clanID, false)
	if err != nil {
		return nil, err
	}
	if len(snap.parties) == 0 {
		return []*EnrichedParty{}, nil
	}

	byID := make(map[uuid.UUID]*rosterdb.Member, len(snap.members))
	byParty := make(map[uuid.UUID][]*rosterdb.Member, len(snap.parties))
	for _, m := range snap.members {
		byID[m.ID] = m
		if m.PartyID != nil {
			byParty[*m.PartyID] = append(byParty[*m.PartyID], m)
		}
	}

	var leaderUserIDs []uuid.UUID
	for _, p := range snap.parties {
		if leader, ok := byID[p.LeaderID]; ok {
			leaderUserIDs = append(leaderUserIDs, leader.UserID)
		}
	}
	usernames := make(map[uuid.UUID]string, len(leaderUserIDs))
	if len(leaderUserIDs) > 0 {
		users, err := s.users.ListUsersByIDs(ctx, nil, leaderUserIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to list party leaders: %w", err)
		}
		for _, u := range users {
			usernames[u.ID] = u.Username
		}
	}

	out := make([]*EnrichedParty, 0, len(snap.parties))
	for _, p := range snap.parties {
		ep := &EnrichedParty{
			Party:      p,
			LeaderName: UnknownLeader,
			Members:    byParty[p.ID],
		}
		if ep.Members == nil {
			ep.Members = []*rosterdb.Member{}
		}
		if leader, ok := byID[p.LeaderID]; ok {
			if name, ok := usernames[leader.UserID]; ok && name != "" {
				ep.LeaderName = name
			}
		}
		out = append(out, ep)
	}
	return out, nil
}
