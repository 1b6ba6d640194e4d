// Package database opens the Postgres connection and provides the
// transaction boundary used by every service.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Transactor runs fn atomically. fn receives the handle repositories must use;
// a nil handle means the store has no transaction object (memory mode) and
// repositories fall back to their own connection.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, db bun.IDB) error) error
}

// Open connects to Postgres with pgdriver and wraps the pool in bun.
func Open(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(dsn),
		pgdriver.WithTimeout(5*time.Second),
	))

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqldb.PingContext(pingCtx); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return bun.NewDB(sqldb, pgdialect.New()), nil
}

// BunTransactor commits on a nil return and rolls back otherwise, including on panic.
type BunTransactor struct {
	DB *bun.DB
}

// NewTransactor wraps db. A nil db yields a transactor that calls fn directly.
func NewTransactor(db *bun.DB) *BunTransactor {
	return &BunTransactor{DB: db}
}

func (t *BunTransactor) RunInTx(ctx context.Context, fn func(ctx context.Context, db bun.IDB) error) error {
	if t == nil || t.DB == nil {
		return fn(ctx, nil)
	}
	return t.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}

// RunInTx runs fn inside tx and returns its result. A nil tx runs fn with a
// nil handle.
func RunInTx[T any](ctx context.Context, tx Transactor, fn func(ctx context.Context, db bun.IDB) (T, error)) (T, error) {
	if tx == nil {
		return fn(ctx, nil)
	}
	var result T
	err := tx.RunInTx(ctx, func(ctx context.Context, db bun.IDB) error {
		var txErr error
		result, txErr = fn(ctx, db)
		return txErr
	})
	return result, err
}
