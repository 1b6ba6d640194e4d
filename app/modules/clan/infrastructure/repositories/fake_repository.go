package clandb

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FakeRepository is a programmable clan repository for tests. Unset funcs return
// zero values, or ErrNotFound for single-row lookups.
type FakeRepository struct {
	mu    sync.Mutex
	trace []string

	InsertClanFn       func(ctx context.Context, db bun.IDB, clan *Clan) error
	GetClanFn          func(ctx context.Context, db bun.IDB, clanID uuid.UUID) (*Clan, error)
	GetClanByLeaderFn  func(ctx context.Context, db bun.IDB, userID uuid.UUID) (*Clan, error)
	UpdateWebhookURLFn func(ctx context.Context, db bun.IDB, clanID uuid.UUID, url string) error
	UpsertUserFn       func(ctx context.Context, db bun.IDB, user *User) error
	GetUserFn          func(ctx context.Context, db bun.IDB, userID uuid.UUID) (*User, error)
	ListUsersByIDsFn   func(ctx context.Context, db bun.IDB, ids []uuid.UUID) ([]*User, error)
}

func (f *FakeRepository) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

// Trace returns the repository calls made so far, in order.
func (f *FakeRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRepository) InsertClan(ctx context.Context, db bun.IDB, clan *Clan) error {
	f.record("InsertClan")
	if f.InsertClanFn != nil {
		return f.InsertClanFn(ctx, db, clan)
	}
	return nil
}

func (f *FakeRepository) GetClan(ctx context.Context, db bun.IDB, clanID uuid.UUID) (*Clan, error) {
	f.record("GetClan")
	if f.GetClanFn != nil {
		return f.GetClanFn(ctx, db, clanID)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) GetClanByLeader(ctx context.Context, db bun.IDB, userID uuid.UUID) (*Clan, error) {
	f.record("GetClanByLeader")
	if f.GetClanByLeaderFn != nil {
		return f.GetClanByLeaderFn(ctx, db, userID)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) UpdateWebhookURL(ctx context.Context, db bun.IDB, clanID uuid.UUID, url string) error {
	f.record("UpdateWebhookURL")
	if f.UpdateWebhookURLFn != nil {
		return f.UpdateWebhookURLFn(ctx, db, clanID, url)
	}
	return nil
}

func (f *FakeRepository) UpsertUser(ctx context.Context, db bun.IDB, user *User) error {
	f.record("UpsertUser")
	if f.UpsertUserFn != nil {
		return f.UpsertUserFn(ctx, db, user)
	}
	return nil
}

func (f *FakeRepository) GetUser(ctx context.Context, db bun.IDB, userID uuid.UUID) (*User, error) {
	f.record("GetUser")
	if f.GetUserFn != nil {
		return f.GetUserFn(ctx, db, userID)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) ListUsersByIDs(ctx context.Context, db bun.IDB, ids []uuid.UUID) ([]*User, error) {
	f.record("ListUsersByIDs")
	if f.ListUsersByIDsFn != nil {
		return f.ListUsersByIDsFn(ctx, db, ids)
	}
	return []*User{}, nil
}

var _ Repository = (*FakeRepository)(nil)
