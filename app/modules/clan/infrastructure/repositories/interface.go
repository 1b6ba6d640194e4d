package clandb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for clan and user persistence.
type Repository interface {
	InsertClan(ctx context.Context, db bun.IDB, clan *Clan) error
	GetClan(ctx context.Context, db bun.IDB, clanID uuid.UUID) (*Clan, error)

	// GetClanByLeader returns the clan whose leader_id is userID.
	GetClanByLeader(ctx context.Context, db bun.IDB, userID uuid.UUID) (*Clan, error)

	// UpdateWebhookURL overwrites the clan's webhook; an empty url clears it.
	UpdateWebhookURL(ctx context.Context, db bun.IDB, clanID uuid.UUID, url string) error

	UpsertUser(ctx context.Context, db bun.IDB, user *User) error
	GetUser(ctx context.Context, db bun.IDB, userID uuid.UUID) (*User, error)

	// ListUsersByIDs returns the users among ids. Unknown ids are skipped.
	ListUsersByIDs(ctx context.Context, db bun.IDB, ids []uuid.UUID) ([]*User, error)
}
