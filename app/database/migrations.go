package database

import (
	"context"
	"fmt"

	clanmigrations "github.com/Black-And-White-Club/clan-roster/app/modules/clan/infrastructure/repositories/migrations"
	recruitmentmigrations "github.com/Black-And-White-Club/clan-roster/app/modules/recruitment/infrastructure/repositories/migrations"
	rostermigrations "github.com/Black-And-White-Club/clan-roster/app/modules/roster/infrastructure/repositories/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// ModuleMigrator is one module's migrator. Each module tracks its migrations
// in its own table.
type ModuleMigrator struct {
	Name string
	*migrate.Migrator
}

// NewMigrators returns the module migrators in dependency order: later
// modules reference tables created by earlier ones.
func NewMigrators(db *bun.DB) []ModuleMigrator {
	mk := func(name string, ms *migrate.Migrations) ModuleMigrator {
		return ModuleMigrator{
			Name: name,
			Migrator: migrate.NewMigrator(db, ms,
				migrate.WithTableName(name+"_migrations"),
				migrate.WithLocksTableName(name+"_migration_locks"),
			),
		}
	}
	return []ModuleMigrator{
		mk("clan", clanmigrations.Migrations),
		mk("roster", rostermigrations.Migrations),
		mk("recruitment", recruitmentmigrations.Migrations),
	}
}

// MigrateAll initializes and applies every module's migrations.
func MigrateAll(ctx context.Context, db *bun.DB) error {
	for _, m := range NewMigrators(db) {
		if err := m.Init(ctx); err != nil {
			return fmt.Errorf("init %s migrations: %w", m.Name, err)
		}
		if _, err := m.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate %s: %w", m.Name, err)
		}
	}
	return nil
}
