package clandb

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

// NewRepository creates a new clan repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) InsertClan(ctx context.Context, db bun.IDB, clan *Clan) error {
	db = r.resolveDB(db)
	if clan.CreatedAt.IsZero() {
		clan.CreatedAt = time.Now().UTC()
	}
	if _, err := db.NewInsert().Model(clan).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert clan: %w", err)
	}
	return nil
}

func (r *Impl) GetClan(ctx context.Context, db bun.IDB, clanID uuid.UUID) (*Clan, error) {
	db = r.resolveDB(db)
	clan := new(Clan)
	err := db.NewSelect().
		Model(clan).
		Where("c.id = ?", clanID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get clan: %w", err)
	}
	return clan, nil
}

func (r *Impl) GetClanByLeader(ctx context.Context, db bun.IDB, userID uuid.UUID) (*Clan, error) {
	db = r.resolveDB(db)
	clan := new(Clan)
	err := db.NewSelect().
		Model(clan).
		Where("c.leader_id = ?", userID).
		OrderExpr("c.created_at ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get clan by leader: %w", err)
	}
	return clan, nil
}

func (r *Impl) UpdateWebhookURL(ctx context.Context, db bun.IDB, clanID uuid.UUID, url string) error {
	db = r.resolveDB(db)
	var value any
	if url != "" {
		value = url
	}
	result, err := db.NewUpdate().
		Model((*Clan)(nil)).
		Set("discord_webhook_url = ?", value).
		Where("id = ?", clanID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update webhook url: %w", err)
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

func (r *Impl) UpsertUser(ctx context.Context, db bun.IDB, user *User) error {
	db = r.resolveDB(db)
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	_, err := db.NewInsert().
		Model(user).
		On("CONFLICT (id) DO UPDATE").
		Set("email = EXCLUDED.email").
		Set("username = EXCLUDED.username").
		Returning("created_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

func (r *Impl) GetUser(ctx context.Context, db bun.IDB, userID uuid.UUID) (*User, error) {
	db = r.resolveDB(db)
	user := new(User)
	err := db.NewSelect().
		Model(user).
		Where("u.id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *Impl) ListUsersByIDs(ctx context.Context, db bun.IDB, ids []uuid.UUID) ([]*User, error) {
	if len(ids) == 0 {
		return []*User{}, nil
	}
	db = r.resolveDB(db)
	var users []*User
	err := db.NewSelect().
		Model(&users).
		Where("u.id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
