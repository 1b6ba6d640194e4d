package rosterdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for roster persistence. Every lookup is
// scoped by clan so records of one clan never leak into another.
type Repository interface {
	// --- Members ---
	ListMembers(ctx context.Context, db bun.IDB, clanID uuid.UUID) ([]*Member, error)
	GetMember(ctx context.Context, db bun.IDB, clanID, memberID uuid.UUID) (*Member, error)

	// GetMemberByUserID returns the user's membership in any clan.
	GetMemberByUserID(ctx context.Context, db bun.IDB, userID uuid.UUID) (*Member, error)
	InsertMember(ctx context.Context, db bun.IDB, member *Member) error

	// DeleteMember returns whether a row was removed. A missing member is not an error.
	DeleteMember(ctx context.Context, db bun.IDB, clanID, memberID uuid.UUID) (bool, error)
	SetMemberParty(ctx context.Context, db bun.IDB, clanID, memberID uuid.UUID, partyID *uuid.UUID) error

	// --- Parties ---
	ListParties(ctx context.Context, db bun.IDB, clanID uuid.UUID) ([]*Party, error)
	GetParty(ctx context.Context, db bun.IDB, clanID, partyID uuid.UUID) (*Party, error)

	// LockParty reads the party with a row lock held until the transaction ends.
	LockParty(ctx context.Context, db bun.IDB, clanID, partyID uuid.UUID) (*Party, error)

	// GetPartyByLeader returns the party led by memberID.
	GetPartyByLeader(ctx context.Context, db bun.IDB, clanID, memberID uuid.UUID) (*Party, error)
	InsertParty(ctx context.Context, db bun.IDB, party *Party) error
	UpdateRecruitingClasses(ctx context.Context, db bun.IDB, clanID, partyID uuid.UUID, classes RecruitingClasses) error
	CountPartyMembers(ctx context.Context, db bun.IDB, partyID uuid.UUID) (int, error)

	// --- Events ---
	ListEvents(ctx context.Context, db bun.IDB, clanID uuid.UUID) ([]*Event, error)
	ListEventIDs(ctx context.Context, db bun.IDB, clanID uuid.UUID) ([]uuid.UUID, error)
	GetEvent(ctx context.Context, db bun.IDB, clanID, eventID uuid.UUID) (*Event, error)
	InsertEvent(ctx context.Context, db bun.IDB, event *Event) error

	// --- Attendance ---
	ListAttendance(ctx context.Context, db bun.IDB, memberIDs []uuid.UUID) ([]*Attendance, error)

	// InsertAttendance is idempotent per (event, member).
	InsertAttendance(ctx context.Context, db bun.IDB, a *Attendance) error
	DeleteAttendance(ctx context.Context, db bun.IDB, eventID, memberID uuid.UUID) error
}
