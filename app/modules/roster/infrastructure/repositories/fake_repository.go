package rosterdb

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FakeRepository is a programmable roster repository for tests. Unset funcs return
// zero values, or ErrNotFound for single-row lookups.
type FakeRepository struct {
	mu    sync.Mutex
	trace []string

	ListMembersFn             func(ctx context.Context, db bun.IDB, clanID uuid.UUID) ([]*Member, error)
	GetMemberFn               func(ctx context.Context, db bun.IDB, clanID, memberID uuid.UUID) (*Member, error)
	GetMemberByUserIDFn       func(ctx context.Context, db bun.IDB, userID uuid.UUID) (*Member, error)
	InsertMemberFn            func(ctx context.Context, db bun.IDB, member *Member) error
	DeleteMemberFn            func(ctx context.Context, db bun.IDB, clanID, memberID uuid.UUID) (bool, error)
	SetMemberPartyFn          func(ctx context.Context, db bun.IDB, clanID, memberID uuid.UUID, partyID *uuid.UUID) error
	ListPartiesFn             func(ctx context.Context, db bun.IDB, clanID uuid.UUID) ([]*Party, error)
	GetPartyFn                func(ctx context.Context, db bun.IDB, clanID, partyID uuid.UUID) (*Party, error)
	LockPartyFn               func(ctx context.Context, db bun.IDB, clanID, partyID uuid.UUID) (*Party, error)
	GetPartyByLeaderFn        func(ctx context.Context, db bun.IDB, clanID, memberID uuid.UUID) (*Party, error)
	InsertPartyFn             func(ctx context.Context, db bun.IDB, party *Party) error
	UpdateRecruitingClassesFn func(ctx context.Context, db bun.IDB, clanID, partyID uuid.UUID, classes RecruitingClasses) error
	CountPartyMembersFn       func(ctx context.Context, db bun.IDB, partyID uuid.UUID) (int, error)
	ListEventsFn              func(ctx context.Context, db bun.IDB, clanID uuid.UUID) ([]*Event, error)
	ListEventIDsFn            func(ctx context.Context, db bun.IDB, clanID uuid.UUID) ([]uuid.UUID, error)
	GetEventFn                func(ctx context.Context, db bun.IDB, clanID, eventID uuid.UUID) (*Event, error)
	InsertEventFn             func(ctx context.Context, db bun.IDB, event *Event) error
	ListAttendanceFn          func(ctx context.Context, db bun.IDB, memberIDs []uuid.UUID) ([]*Attendance, error)
	InsertAttendanceFn        func(ctx context.Context, db bun.IDB, a *Attendance) error
	DeleteAttendanceFn        func(ctx context.Context, db bun.IDB, eventID, memberID uuid.UUID) error
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

func (f *FakeRepository) ListMembers(ctx context.Context, db bun.IDB, clanID uuid.UUID) ([]*Member, error) {
	f.record("ListMembers")
	if f.ListMembersFn != nil {
		return f.ListMembersFn(ctx, db, clanID)
	}
	return []*Member{}, nil
}

func (f *FakeRepository) GetMember(ctx context.Context, db bun.IDB, clanID, memberID uuid.UUID) (*Member, error) {
	f.record("GetMember")
	if f.GetMemberFn != nil {
		return f.GetMemberFn(ctx, db, clanID, memberID)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) GetMemberByUserID(ctx context.Context, db bun.IDB, userID uuid.UUID) (*Member, error) {
	f.record("GetMemberByUserID")
	if f.GetMemberByUserIDFn != nil {
		return f.GetMemberByUserIDFn(ctx, db, userID)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) InsertMember(ctx context.Context, db bun.IDB, member *Member) error {
	f.record("InsertMember")
	if f.InsertMemberFn != nil {
		return f.InsertMemberFn(ctx, db, member)
	}
	return nil
}

func (f *FakeRepository) DeleteMember(ctx context.Context, db bun.IDB, clanID, memberID uuid.UUID) (bool, error) {
	f.record("DeleteMember")
	if f.DeleteMemberFn != nil {
		return f.DeleteMemberFn(ctx, db, clanID, memberID)
	}
	return false, nil
}

func (f *FakeRepository) SetMemberParty(ctx context.Context, db bun.IDB, clanID, memberID uuid.UUID, partyID *uuid.UUID) error {
	f.record("SetMemberParty")
	if f.SetMemberPartyFn != nil {
		return f.SetMemberPartyFn(ctx, db, clanID, memberID, partyID)
	}
	return nil
}

func (f *FakeRepository) ListParties(ctx context.Context, db bun.IDB, clanID uuid.UUID) ([]*Party, error) {
	f.record("ListParties")
	if f.ListPartiesFn != nil {
		return f.ListPartiesFn(ctx, db, clanID)
	}
	return []*Party{}, nil
}

func (f *FakeRepository) GetParty(ctx context.Context, db bun.IDB, clanID, partyID uuid.UUID) (*Party, error) {
	f.record("GetParty")
	if f.GetPartyFn != nil {
		return f.GetPartyFn(ctx, db, clanID, partyID)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) LockParty(ctx context.Context, db bun.IDB, clanID, partyID uuid.UUID) (*Party, error) {
	f.record("LockParty")
	if f.LockPartyFn != nil {
		return f.LockPartyFn(ctx, db, clanID, partyID)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) GetPartyByLeader(ctx context.Context, db bun.IDB, clanID, memberID uuid.UUID) (*Party, error) {
	f.record("GetPartyByLeader")
	if f.GetPartyByLeaderFn != nil {
		return f.GetPartyByLeaderFn(ctx, db, clanID, memberID)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) InsertParty(ctx context.Context, db bun.IDB, party *Party) error {
	f.record("InsertParty")
	if f.InsertPartyFn != nil {
		return f.InsertPartyFn(ctx, db, party)
	}
	return nil
}

func (f *FakeRepository) UpdateRecruitingClasses(ctx context.Context, db bun.IDB, clanID, partyID uuid.UUID, classes RecruitingClasses) error {
	f.record("UpdateRecruitingClasses")
	if f.UpdateRecruitingClassesFn != nil {
		return f.UpdateRecruitingClassesFn(ctx, db, clanID, partyID, classes)
	}
	return nil
}

func (f *FakeRepository) CountPartyMembers(ctx context.Context, db bun.IDB, partyID uuid.UUID) (int, error) {
	f.record("CountPartyMembers")
	if f.CountPartyMembersFn != nil {
		return f.CountPartyMembersFn(ctx, db, partyID)
	}
	return 0, nil
}

func (f *FakeRepository) ListEvents(ctx context.Context, db bun.IDB, clanID uuid.UUID) ([]*Event, error) {
	f.record("ListEvents")
	if f.ListEventsFn != nil {
		return f.ListEventsFn(ctx, db, clanID)
	}
	return []*Event{}, nil
}

func (f *FakeRepository) ListEventIDs(ctx context.Context, db bun.IDB, clanID uuid.UUID) ([]uuid.UUID, error) {
	f.record("ListEventIDs")
	if f.ListEventIDsFn != nil {
		return f.ListEventIDsFn(ctx, db, clanID)
	}
	return []uuid.UUID{}, nil
}

func (f *FakeRepository) GetEvent(ctx context.Context, db bun.IDB, clanID, eventID uuid.UUID) (*Event, error) {
	f.record("GetEvent")
	if f.GetEventFn != nil {
		return f.GetEventFn(ctx, db, clanID, eventID)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) InsertEvent(ctx context.Context, db bun.IDB, event *Event) error {
	f.record("InsertEvent")
	if f.InsertEventFn != nil {
		return f.InsertEventFn(ctx, db, event)
	}
	return nil
}

func (f *FakeRepository) ListAttendance(ctx context.Context, db bun.IDB, memberIDs []uuid.UUID) ([]*Attendance, error) {
	f.record("ListAttendance")
	if f.ListAttendanceFn != nil {
		return f.ListAttendanceFn(ctx, db, memberIDs)
	}
	return []*Attendance{}, nil
}

func (f *FakeRepository) InsertAttendance(ctx context.Context, db bun.IDB, a *Attendance) error {
	f.record("InsertAttendance")
	if f.InsertAttendanceFn != nil {
		return f.InsertAttendanceFn(ctx, db, a)
	}
	return nil
}

func (f *FakeRepository) DeleteAttendance(ctx context.Context, db bun.IDB, eventID, memberID uuid.UUID) error {
	f.record("DeleteAttendance")
	if f.DeleteAttendanceFn != nil {
		return f.DeleteAttendanceFn(ctx, db, eventID, memberID)
	}
	return nil
}

var _ Repository = (*FakeRepository)(nil)
