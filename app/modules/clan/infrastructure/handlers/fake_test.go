package clanhandlers

import (
	"context"

	clanservice "github.com/Black-And-White-Club/clan-roster/app/modules/clan/application"
	clandb "github.com/Black-And-White-Club/clan-roster/app/modules/clan/infrastructure/repositories"
	"github.com/google/uuid"
)

// FakeClanService is a programmable clanservice.Service.
type FakeClanService struct {
	trace []string

	CreateClanFunc     func(ctx context.Context, req clanservice.CreateClanRequest) (*clandb.Clan, error)
	GetSettingsFunc    func(ctx context.Context, clanID uuid.UUID) (*clanservice.Settings, error)
	UpdateSettingsFunc func(ctx context.Context, clanID uuid.UUID, webhookURL string) (*clanservice.Settings, error)
	SyncUserFunc       func(ctx context.Context, req clanservice.SyncUserRequest) (*clandb.User, error)
	GetUserContextFunc func(ctx context.Context, userID uuid.UUID) (*clanservice.UserContext, error)
}

func NewFakeClanService() *FakeClanService {
	return &FakeClanService{trace: []string{}}
}

func (f *FakeClanService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeClanService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeClanService) CreateClan(ctx context.Context, req clanservice.CreateClanRequest) (*clandb.Clan, error) {
	f.record("CreateClan")
	if f.CreateClanFunc != nil {
		return f.CreateClanFunc(ctx, req)
	}
	return &clandb.Clan{ID: uuid.New(), Name: req.Name}, nil
}

func (f *FakeClanService) GetSettings(ctx context.Context, clanID uuid.UUID) (*clanservice.Settings, error) {
	f.record("GetSettings")
	if f.GetSettingsFunc != nil {
		return f.GetSettingsFunc(ctx, clanID)
	}
	return &clanservice.Settings{}, nil
}

func (f *FakeClanService) UpdateSettings(ctx context.Context, clanID uuid.UUID, webhookURL string) (*clanservice.Settings, error) {
	f.record("UpdateSettings")
	if f.UpdateSettingsFunc != nil {
		return f.UpdateSettingsFunc(ctx, clanID, webhookURL)
	}
	return &clanservice.Settings{DiscordWebhookURL: webhookURL}, nil
}

func (f *FakeClanService) SyncUser(ctx context.Context, req clanservice.SyncUserRequest) (*clandb.User, error) {
	f.record("SyncUser")
	if f.SyncUserFunc != nil {
		return f.SyncUserFunc(ctx, req)
	}
	return &clandb.User{ID: req.ID, Username: req.Username}, nil
}

func (f *FakeClanService) GetUserContext(ctx context.Context, userID uuid.UUID) (*clanservice.UserContext, error) {
	f.record("GetUserContext")
	if f.GetUserContextFunc != nil {
		return f.GetUserContextFunc(ctx, userID)
	}
	return &clanservice.UserContext{User: &clandb.User{ID: userID}}, nil
}

var _ clanservice.Service = (*FakeClanService)(nil)
