package recruitmentdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new application repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) InsertApplication(ctx context.Context, db bun.IDB, app *Application) error {
	db = r.resolveDB(db)
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now().UTC()
	}
	if _, err := db.NewInsert().Model(app).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert application: %w", err)
	}
	return nil
}

func (r *Impl) ListApplications(ctx context.Context, db bun.IDB, clanID uuid.UUID, status ApplicationStatus) ([]*Application, error) {
	db = r.resolveDB(db)
	apps := []*Application{}
	q := db.NewSelect().
		Model(&apps).
		Where("a.clan_id = ?", clanID)
	if status != "" {
		q = q.Where("a.status = ?", status)
	}
	if err := q.OrderExpr("a.created_at DESC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func (r *Impl) GetApplication(ctx context.Context, db bun.IDB, clanID, appID uuid.UUID, forUpdate bool) (*Application, error) {
	db = r.resolveDB(db)
	app := new(Application)
	q := db.NewSelect().
		Model(app).
		Where("a.id = ?", appID).
		Where("a.clan_id = ?", clanID)
	if forUpdate {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

func (r *Impl) UpdateApplicationStatus(ctx context.Context, db bun.IDB, clanID, appID uuid.UUID, status ApplicationStatus) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Application)(nil)).
		Set("status = ?", status).
		Where("id = ?", appID).
		Where("clan_id = ?", clanID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
