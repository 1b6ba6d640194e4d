package rostermigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating members, parties, events and event_attendees tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS parties (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					clan_id UUID NOT NULL REFERENCES clans(id) ON DELETE CASCADE,
					name TEXT NOT NULL,
					leader_id UUID NOT NULL,
					recruiting_classes TEXT NOT NULL DEFAULT '',
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_parties_clan_id ON parties(clan_id);
				CREATE INDEX IF NOT EXISTS idx_parties_leader_id ON parties(leader_id);
			`); err != nil {
				return fmt.Errorf("failed to create parties table: %w", err)
			}

			// user_id is unique: a user holds at most one membership.
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS members (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					clan_id UUID NOT NULL REFERENCES clans(id) ON DELETE CASCADE,
					user_id UUID NOT NULL UNIQUE,
					in_game_name TEXT NOT NULL,
					class TEXT NOT NULL,
					class_group TEXT NOT NULL,
					role TEXT NOT NULL CHECK (role IN ('leader', 'officer', 'member')),
					level INTEGER NOT NULL DEFAULT 1,
					combat_power BIGINT NOT NULL DEFAULT 0,
					join_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					party_id UUID REFERENCES parties(id) ON DELETE SET NULL,
					status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'inactive'))
				);
				CREATE INDEX IF NOT EXISTS idx_members_clan_id ON members(clan_id);
				CREATE INDEX IF NOT EXISTS idx_members_party_id ON members(party_id);
			`); err != nil {
				return fmt.Errorf("failed to create members table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS events (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					clan_id UUID NOT NULL REFERENCES clans(id) ON DELETE CASCADE,
					name TEXT NOT NULL,
					type TEXT NOT NULL,
					date TIMESTAMPTZ NOT NULL,
					mandatory BOOLEAN NOT NULL DEFAULT FALSE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_events_clan_id_date ON events(clan_id, date DESC);
			`); err != nil {
				return fmt.Errorf("failed to create events table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS event_attendees (
					event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
					member_id UUID NOT NULL REFERENCES members(id) ON DELETE CASCADE,
					PRIMARY KEY (event_id, member_id)
				);
				CREATE INDEX IF NOT EXISTS idx_event_attendees_member_id ON event_attendees(member_id);
			`); err != nil {
				return fmt.Errorf("failed to create event_attendees table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Rolling back roster tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			for _, table := range []string{"event_attendees", "events", "members", "parties"} {
				if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE;"); err != nil {
					return fmt.Errorf("failed to drop %s table: %w", table, err)
				}
			}
			return nil
		})
	})
}
