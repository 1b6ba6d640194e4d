package clanservice

import (
	"context"

	clandb "github.com/Black-And-White-Club/clan-roster/app/modules/clan/infrastructure/repositories"
	"github.com/google/uuid"
)

// Service defines the clan bootstrap, settings and identity operations.
type Service interface {
	// CreateClan inserts the clan and its founding leader member atomically.
	CreateClan(ctx context.Context, req CreateClanRequest) (*clandb.Clan, error)

	GetSettings(ctx context.Context, clanID uuid.UUID) (*Settings, error)
	UpdateSettings(ctx context.Context, clanID uuid.UUID, webhookURL string) (*Settings, error)

	SyncUser(ctx context.Context, req SyncUserRequest) (*clandb.User, error)
	GetUserContext(ctx context.Context, userID uuid.UUID) (*UserContext, error)
}
