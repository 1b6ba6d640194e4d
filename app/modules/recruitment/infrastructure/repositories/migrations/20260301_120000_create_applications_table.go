package recruitmentmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating applications table...")

		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS applications (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				clan_id UUID NOT NULL REFERENCES clans(id) ON DELETE CASCADE,
				type TEXT NOT NULL CHECK (type IN ('solo', 'cp')),
				name TEXT NOT NULL,
				class TEXT NOT NULL,
				level INTEGER NOT NULL,
				combat_power BIGINT NOT NULL,
				discord TEXT NOT NULL,
				playtime TEXT NOT NULL,
				notes TEXT,
				status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'accepted', 'rejected')),
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_applications_clan_created ON applications(clan_id, created_at DESC);
		`)
		if err != nil {
			return fmt.Errorf("failed to create applications table: %w", err)
		}

		fmt.Println("Applications table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Rolling back applications table...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS applications CASCADE;`); err != nil {
			return fmt.Errorf("failed to drop applications table: %w", err)
		}
		return nil
	})
}
