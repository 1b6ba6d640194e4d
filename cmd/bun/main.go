package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Black-And-White-Club/clan-roster/app/database"
	"github.com/Black-And-White-Club/clan-roster/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "bun",
		Usage: "clan roster database tooling",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Commands: []*cli.Command{
			newMigrateCommand(),
			newRiverCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("postgres dsn is not configured")
	}
	return cfg, nil
}

// withMigrators opens the database for the duration of fn.
func withMigrators(fn func(c *cli.Context, migrators []database.ModuleMigrator) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		db, err := database.Open(c.Context, cfg.Postgres.DSN)
		if err != nil {
			return err
		}
		defer db.Close()
		return fn(c, database.NewMigrators(db))
	}
}

func findMigrator(migrators []database.ModuleMigrator, name string) (*migrate.Migrator, error) {
	for _, m := range migrators {
		if m.Name == name {
			return m.Migrator, nil
		}
	}
	return nil, fmt.Errorf("invalid module name: %q", name)
}

func newMigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "module schema migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: withMigrators(func(c *cli.Context, migrators []database.ModuleMigrator) error {
					for _, m := range migrators {
						if err := m.Init(c.Context); err != nil {
							return fmt.Errorf("init %s: %w", m.Name, err)
						}
						fmt.Printf("Initialized migrations for module: %s\n", m.Name)
					}
					return nil
				}),
			},
			{
				Name:  "migrate",
				Usage: "apply pending migrations",
				Action: withMigrators(func(c *cli.Context, migrators []database.ModuleMigrator) error {
					for _, m := range migrators {
						if err := m.Lock(c.Context); err != nil {
							return fmt.Errorf("lock %s: %w", m.Name, err)
						}
						group, err := m.Migrate(c.Context)
						_ = m.Unlock(c.Context)
						if err != nil {
							return fmt.Errorf("migrate %s: %w", m.Name, err)
						}
						if group.IsZero() {
							fmt.Printf("No new migrations for module: %s\n", m.Name)
						} else {
							fmt.Printf("Migrated module %s to %s\n", m.Name, group)
						}
					}
					return nil
				}),
			},
			{
				Name:  "rollback",
				Usage: "roll back the last migration group of every module",
				Action: withMigrators(func(c *cli.Context, migrators []database.ModuleMigrator) error {
					for i := len(migrators) - 1; i >= 0; i-- {
						m := migrators[i]
						group, err := m.Rollback(c.Context)
						if err != nil {
							return fmt.Errorf("rollback %s: %w", m.Name, err)
						}
						if group.IsZero() {
							fmt.Printf("Nothing to roll back for module: %s\n", m.Name)
						} else {
							fmt.Printf("Rolled back module %s from %s\n", m.Name, group)
						}
					}
					return nil
				}),
			},
			{
				Name:      "create_go",
				Usage:     "create a Go migration",
				ArgsUsage: "<module> <name...>",
				Action: withMigrators(func(c *cli.Context, migrators []database.ModuleMigrator) error {
					migrator, err := findMigrator(migrators, c.Args().First())
					if err != nil {
						return err
					}
					mf, err := migrator.CreateGoMigration(c.Context, strings.Join(c.Args().Tail(), "_"))
					if err != nil {
						return err
					}
					fmt.Printf("Created migration %s (%s)\n", mf.Name, mf.Path)
					return nil
				}),
			},
			{
				Name:      "create_sql",
				Usage:     "create up and down SQL migrations",
				ArgsUsage: "<module> <name...>",
				Action: withMigrators(func(c *cli.Context, migrators []database.ModuleMigrator) error {
					migrator, err := findMigrator(migrators, c.Args().First())
					if err != nil {
						return err
					}
					files, err := migrator.CreateSQLMigrations(c.Context, strings.Join(c.Args().Tail(), "_"))
					if err != nil {
						return err
					}
					for _, mf := range files {
						fmt.Printf("Created migration %s (%s)\n", mf.Name, mf.Path)
					}
					return nil
				}),
			},
			{
				Name:  "status",
				Usage: "print migration status",
				Action: withMigrators(func(c *cli.Context, migrators []database.ModuleMigrator) error {
					for _, m := range migrators {
						ms, err := m.MigrationsWithStatus(c.Context)
						if err != nil {
							return fmt.Errorf("status %s: %w", m.Name, err)
						}
						fmt.Printf("Module %s\n", m.Name)
						fmt.Printf("  Applied:   %s\n", ms.Applied())
						fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
					}
					return nil
				}),
			},
		},
	}
}

func newRiverCommand() *cli.Command {
	run := func(direction rivermigrate.Direction, opts *rivermigrate.MigrateOpts) cli.ActionFunc {
		return func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			return migrateRiver(c.Context, cfg.Postgres.DSN, direction, opts)
		}
	}
	return &cli.Command{
		Name:  "river",
		Usage: "River job queue schema",
		Subcommands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "apply River migrations",
				Action: run(rivermigrate.DirectionUp, nil),
			},
			{
				Name:   "down",
				Usage:  "roll back one River migration",
				Action: run(rivermigrate.DirectionDown, &rivermigrate.MigrateOpts{MaxSteps: 1}),
			},
		},
	}
}

func migrateRiver(ctx context.Context, dsn string, direction rivermigrate.Direction, opts *rivermigrate.MigrateOpts) error {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("failed to create River migrator: %w", err)
	}
	res, err := migrator.Migrate(ctx, direction, opts)
	if err != nil {
		return fmt.Errorf("river migrate %s: %w", direction, err)
	}
	if len(res.Versions) == 0 {
		fmt.Println("River schema is up to date")
	}
	for _, v := range res.Versions {
		fmt.Printf("River migration %s version %d\n", direction, v.Version)
	}
	return nil
}
