package rosterdb

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

// NewRepository creates a new roster repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}

// --- Members ---

func (r *Impl) ListMembers(ctx context.Context, db bun.IDB, clanID uuid.UUID) ([]*Member, error) {
	db = r.resolveDB(db)
	members := []*Member{}
	err := db.NewSelect().
		Model(&members).
		Where("m.clan_id = ?", clanID).
		OrderExpr("m.join_date ASC, m.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

func (r *Impl) GetMember(ctx context.Context, db bun.IDB, clanID, memberID uuid.UUID) (*Member, error) {
	db = r.resolveDB(db)
	member := new(Member)
	err := db.NewSelect().
		Model(member).
		Where("m.id = ?", memberID).
		Where("m.clan_id = ?", clanID).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "member")
	}
	return member, nil
}

func (r *Impl) GetMemberByUserID(ctx context.Context, db bun.IDB, userID uuid.UUID) (*Member, error) {
	db = r.resolveDB(db)
	member := new(Member)
	err := db.NewSelect().
		Model(member).
		Where("m.user_id = ?", userID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "member by user id")
	}
	return member, nil
}

func (r *Impl) InsertMember(ctx context.Context, db bun.IDB, member *Member) error {
	db = r.resolveDB(db)
	if member.JoinDate.IsZero() {
		member.JoinDate = time.Now().UTC()
	}
	if _, err := db.NewInsert().Model(member).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to insert member: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

func (r *Impl) DeleteMember(ctx context.Context, db bun.IDB, clanID, memberID uuid.UUID) (bool, error) {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Member)(nil)).
		Where("id = ?", memberID).
		Where("clan_id = ?", clanID).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to delete member: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *Impl) SetMemberParty(ctx context.Context, db bun.IDB, clanID, memberID uuid.UUID, partyID *uuid.UUID) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Member)(nil)).
		Set("party_id = ?", partyID).
		Where("id = ?", memberID).
		Where("clan_id = ?", clanID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set member party: %w", err)
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

// --- Parties ---

func (r *Impl) ListParties(ctx context.Context, db bun.IDB, clanID uuid.UUID) ([]*Party, error) {
	db = r.resolveDB(db)
	parties := []*Party{}
	err := db.NewSelect().
		Model(&parties).
		Where("p.clan_id = ?", clanID).
		OrderExpr("p.created_at ASC, p.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	return parties, nil
}

func (r *Impl) GetParty(ctx context.Context, db bun.IDB, clanID, partyID uuid.UUID) (*Party, error) {
	db = r.resolveDB(db)
	party := new(Party)
	err := db.NewSelect().
		Model(party).
		Where("p.id = ?", partyID).
		Where("p.clan_id = ?", clanID).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "party")
	}
	return party, nil
}

func (r *Impl) LockParty(ctx context.Context, db bun.IDB, clanID, partyID uuid.UUID) (*Party, error) {
	db = r.resolveDB(db)
	party := new(Party)
	err := db.NewSelect().
		Model(party).
		Where("p.id = ?", partyID).
		Where("p.clan_id = ?", clanID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "party for update")
	}
	return party, nil
}

func (r *Impl) GetPartyByLeader(ctx context.Context, db bun.IDB, clanID, memberID uuid.UUID) (*Party, error) {
	db = r.resolveDB(db)
	party := new(Party)
	err := db.NewSelect().
		Model(party).
		Where("p.leader_id = ?", memberID).
		Where("p.clan_id = ?", clanID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "party by leader")
	}
	return party, nil
}

func (r *Impl) InsertParty(ctx context.Context, db bun.IDB, party *Party) error {
	db = r.resolveDB(db)
	if party.CreatedAt.IsZero() {
		party.CreatedAt = time.Now().UTC()
	}
	if party.RecruitingClasses == nil {
		party.RecruitingClasses = RecruitingClasses{}
	}
	if _, err := db.NewInsert().Model(party).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert party: %w", err)
	}
	return nil
}

func (r *Impl) UpdateRecruitingClasses(ctx context.Context, db bun.IDB, clanID, partyID uuid.UUID, classes RecruitingClasses) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Party)(nil)).
		Set("recruiting_classes = ?", classes).
		Where("id = ?", partyID).
		Where("clan_id = ?", clanID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update recruiting classes: %w", err)
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

func (r *Impl) CountPartyMembers(ctx context.Context, db bun.IDB, partyID uuid.UUID) (int, error) {
	db = r.resolveDB(db)
	count, err := db.NewSelect().
		Model((*Member)(nil)).
		Where("m.party_id = ?", partyID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count party members: %w", err)
	}
	return count, nil
}

// --- Events ---

func (r *Impl) ListEvents(ctx context.Context, db bun.IDB, clanID uuid.UUID) ([]*Event, error) {
	db = r.resolveDB(db)
	events := []*Event{}
	err := db.NewSelect().
		Model(&events).
		Where("e.clan_id = ?", clanID).
		OrderExpr("e.date DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (r *Impl) ListEventIDs(ctx context.Context, db bun.IDB, clanID uuid.UUID) ([]uuid.UUID, error) {
	db = r.resolveDB(db)
	ids := []uuid.UUID{}
	err := db.NewSelect().
		Model((*Event)(nil)).
		Column("e.id").
		Where("e.clan_id = ?", clanID).
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list event ids: %w", err)
	}
	return ids, nil
}

func (r *Impl) GetEvent(ctx context.Context, db bun.IDB, clanID, eventID uuid.UUID) (*Event, error) {
	db = r.resolveDB(db)
	event := new(Event)
	err := db.NewSelect().
		Model(event).
		Where("e.id = ?", eventID).
		Where("e.clan_id = ?", clanID).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "event")
	}
	return event, nil
}

func (r *Impl) InsertEvent(ctx context.Context, db bun.IDB, event *Event) error {
	db = r.resolveDB(db)
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	if _, err := db.NewInsert().Model(event).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// --- Attendance ---

func (r *Impl) ListAttendance(ctx context.Context, db bun.IDB, memberIDs []uuid.UUID) ([]*Attendance, error) {
	if len(memberIDs) == 0 {
		return []*Attendance{}, nil
	}
	db = r.resolveDB(db)
	rows := []*Attendance{}
	err := db.NewSelect().
		Model(&rows).
		Where("ea.member_id IN (?)", bun.In(memberIDs)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return rows, nil
}

func (r *Impl) InsertAttendance(ctx context.Context, db bun.IDB, a *Attendance) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(a).
		On("CONFLICT (event_id, member_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert attendance: %w", err)
	}
	return nil
}

func (r *Impl) DeleteAttendance(ctx context.Context, db bun.IDB, eventID, memberID uuid.UUID) error {
	db = r.resolveDB(db)
	_, err := db.NewDelete().
		Model((*Attendance)(nil)).
		Where("event_id = ?", eventID).
		Where("member_id = ?", memberID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	return nil
}
