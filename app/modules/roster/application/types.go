package rosterservice

import (
	"math"
	"time"

	rosterdb "github.com/Black-And-White-Club/clan-roster/app/modules/roster/infrastructure/repositories"
	"github.com/google/uuid"
)

// UnknownLeader is the leader_name of a party whose leader cannot be resolved.
const UnknownLeader = "Unknown"

// EnrichedMember is a Member joined with its party name and attendance counts.
type EnrichedMember struct {
	*rosterdb.Member
	CPName         *string `json:"cp_name"`
	AttendedEvents int     `json:"attended_events"`
	TotalEvents    int     `json:"total_events"`
}

// AttendanceRate is attended/total, or 0 when the clan has no events.
func (m EnrichedMember) AttendanceRate() float64 {
	if m.TotalEvents <= 0 {
		return 0
	}
	return float64(m.AttendedEvents) / float64(m.TotalEvents)
}

// PartyName returns the member's party name or "" when solo.
func (m EnrichedMember) PartyName() string {
	if m.CPName == nil {
		return ""
	}
	return *m.CPName
}

// EnrichedParty is a Party with its members and resolved leader name.
type EnrichedParty struct {
	*rosterdb.Party
	LeaderName string             `json:"leader_name"`
	Members    []*rosterdb.Member `json:"members"`
}

// TotalPower sums the members' combat power.
func (p EnrichedParty) TotalPower() int64 {
	var total int64
	for _, m := range p.Members {
		total += m.CombatPower
	}
	return total
}

// AvgLevel is the rounded mean member level, 0 for an empty party.
func (p EnrichedParty) AvgLevel() int {
	if len(p.Members) == 0 {
		return 0
	}
	sum := 0
	for _, m := range p.Members {
		sum += m.Level
	}
	return int(math.Round(float64(sum) / float64(len(p.Members))))
}

// AddMemberRequest adds a member to a clan. PartyID is optional.
type AddMemberRequest struct {
	UserID      uuid.UUID     `json:"user_id"`
	InGameName  string        `json:"in_game_name"`
	Class       string        `json:"class"`
	ClassGroup  string        `json:"class_group"`
	Role        rosterdb.Role `json:"role"`
	Level       int           `json:"level"`
	CombatPower int64         `json:"combat_power"`
	PartyID     *uuid.UUID    `json:"party_id"`
}

// CreatePartyRequest creates a Constant Party led by an existing member.
type CreatePartyRequest struct {
	Name              string                     `json:"name"`
	LeaderID          uuid.UUID                  `json:"leader_id"`
	RecruitingClasses rosterdb.RecruitingClasses `json:"recruiting_classes"`
}

// CreateEventRequest schedules an event. Date is RFC 3339 or natural
// language resolved in Timezone.
type CreateEventRequest struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Date      string `json:"date"`
	Timezone  string `json:"timezone,omitempty"`
	Mandatory bool   `json:"mandatory"`
}

// GeneralStats are the headline dashboard numbers over active members.
type GeneralStats struct {
	TotalMembers int   `json:"totalMembers"`
	AvgLevel     int   `json:"avgLevel"`
	TotalPower   int64 `json:"totalPower"`
}

// ClassShare counts members in one class group.
type ClassShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// PartyPower is a party's total combat power.
type PartyPower struct {
	Name       string `json:"name"`
	TotalPower int64  `json:"totalPower"`
}

// RecruitmentNeed lists what a party is looking for.
type RecruitmentNeed struct {
	CPName            string                     `json:"cp_name"`
	RecruitingClasses rosterdb.RecruitingClasses `json:"recruiting_classes"`
}

// DashboardStats is the clan overview.
type DashboardStats struct {
	GeneralStats      GeneralStats      `json:"generalStats"`
	ClassDistribution []ClassShare      `json:"classDistribution"`
	CPPower           []PartyPower      `json:"cpPower"`
	RecruitmentNeeds  []RecruitmentNeed `json:"recruitmentNeeds"`
	GeneratedAt       time.Time         `json:"generatedAt"`
}
