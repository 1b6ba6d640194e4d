package recruitmentdb

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FakeRepository is a programmable application repository for tests. Unset funcs return
// zero values, or ErrNotFound for single-row lookups.
type FakeRepository struct {
	mu    sync.Mutex
	trace []string

	InsertApplicationFn       func(ctx context.Context, db bun.IDB, app *Application) error
	ListApplicationsFn        func(ctx context.Context, db bun.IDB, clanID uuid.UUID, status ApplicationStatus) ([]*Application, error)
	GetApplicationFn          func(ctx context.Context, db bun.IDB, clanID, appID uuid.UUID, forUpdate bool) (*Application, error)
	UpdateApplicationStatusFn func(ctx context.Context, db bun.IDB, clanID, appID uuid.UUID, status ApplicationStatus) error
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

func (f *FakeRepository) InsertApplication(ctx context.Context, db bun.IDB, app *Application) error {
	f.record("InsertApplication")
	if f.InsertApplicationFn != nil {
		return f.InsertApplicationFn(ctx, db, app)
	}
	return nil
}

func (f *FakeRepository) ListApplications(ctx context.Context, db bun.IDB, clanID uuid.UUID, status ApplicationStatus) ([]*Application, error) {
	f.record("ListApplications")
	if f.ListApplicationsFn != nil {
		return f.ListApplicationsFn(ctx, db, clanID, status)
	}
	return []*Application{}, nil
}

func (f *FakeRepository) GetApplication(ctx context.Context, db bun.IDB, clanID, appID uuid.UUID, forUpdate bool) (*Application, error) {
	f.record("GetApplication")
	if f.GetApplicationFn != nil {
		return f.GetApplicationFn(ctx, db, clanID, appID, forUpdate)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) UpdateApplicationStatus(ctx context.Context, db bun.IDB, clanID, appID uuid.UUID, status ApplicationStatus) error {
	f.record("UpdateApplicationStatus")
	if f.UpdateApplicationStatusFn != nil {
		return f.UpdateApplicationStatusFn(ctx, db, clanID, appID, status)
	}
	return nil
}

var _ Repository = (*FakeRepository)(nil)
