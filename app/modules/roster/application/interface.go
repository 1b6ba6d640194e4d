package rosterservice

import (
	"context"
	"io"

	rosterdb "github.com/Black-And-White-Club/clan-roster/app/modules/roster/infrastructure/repositories"
	"github.com/google/uuid"
)

// Service defines the roster operations for a clan.
type Service interface {
	// --- Aggregation ---
	ListEnrichedMembers(ctx context.Context, clanID uuid.UUID) ([]*EnrichedMember, error)
	ListEnrichedParties(ctx context.Context, clanID uuid.UUID) ([]*EnrichedParty, error)
	GetDashboardStats(ctx context.Context, clanID uuid.UUID) (*DashboardStats, error)
	ExportRoster(ctx context.Context, clanID uuid.UUID, w io.Writer) error

	// --- Members ---
	AddMember(ctx context.Context, clanID uuid.UUID, req AddMemberRequest) (*rosterdb.Member, error)

	// RemoveMember succeeds whether or not the member exists.
	RemoveMember(ctx context.Context, clanID, memberID uuid.UUID) error

	// AssignMemberParty moves a member into partyID, or out of any party when nil.
	AssignMemberParty(ctx context.Context, clanID, memberID uuid.UUID, partyID *uuid.UUID) error

	// --- Parties ---
	CreateParty(ctx context.Context, clanID uuid.UUID, req CreatePartyRequest) (*rosterdb.Party, error)
	UpdatePartyNeeds(ctx context.Context, clanID, partyID uuid.UUID, classes rosterdb.RecruitingClasses) error

	// --- Events ---
	ListEvents(ctx context.Context, clanID uuid.UUID) ([]*rosterdb.Event, error)
	CreateEvent(ctx context.Context, clanID uuid.UUID, req CreateEventRequest) (*rosterdb.Event, error)
	MarkAttendance(ctx context.Context, clanID, eventID, memberID uuid.UUID) error
	ClearAttendance(ctx context.Context, clanID, eventID, memberID uuid.UUID) error
}
