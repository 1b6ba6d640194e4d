// Package memory is an in-process entity store. It satisfies every module
// repository and the transactor so the service can run without Postgres.
//
// Transactions are serialized by a store-wide lock and roll back by restoring
// a snapshot. Writes outside a transaction take the same lock, so a rollback
// never discards them. Reads outside a transaction may observe uncommitted
// writes.
package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"

	"github.com/Black-And-White-Club/clan-roster/app/database"
	clandb "github.com/Black-And-White-Club/clan-roster/app/modules/clan/infrastructure/repositories"
	recruitmentdb "github.com/Black-And-White-Club/clan-roster/app/modules/recruitment/infrastructure/repositories"
	rosterdb "github.com/Black-And-White-Club/clan-roster/app/modules/roster/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrDuplicate mirrors a unique constraint violation.
var ErrDuplicate = errors.New("duplicate key")

type data struct {
	clans        []clandb.Clan
	users        []clandb.User
	members      []rosterdb.Member
	parties      []rosterdb.Party
	events       []rosterdb.Event
	attendance   []rosterdb.Attendance
	applications []recruitmentdb.Application
}

func (d *data) clone() *data {
	return &data{
		clans:        slices.Clone(d.clans),
		users:        slices.Clone(d.users),
		members:      slices.Clone(d.members),
		parties:      slices.Clone(d.parties),
		events:       slices.Clone(d.events),
		attendance:   slices.Clone(d.attendance),
		applications: slices.Clone(d.applications),
	}
}

// Store keeps every record in slices, preserving insertion order.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	d    *data
}

// New returns an empty store.
func New() *Store {
	return &Store{d: &data{}}
}

type txKey struct{}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// lockWrite takes the write lock. Outside a transaction it also takes the
// transaction lock, so the write cannot land between a snapshot and its
// rollback.
func (s *Store) lockWrite(ctx context.Context) func() {
	outside := !s.inTx(ctx)
	if outside {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if outside {
			s.txMu.Unlock()
		}
	}
}

// RunInTx runs fn while holding the transaction lock. The state is restored
// if fn returns an error or panics. A call made with a context from an
// enclosing transaction joins it.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, db bun.IDB) error) (err error) {
	if s.inTx(ctx) {
		return fn(ctx, nil)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()
	ctx = context.WithValue(ctx, txKey{}, s)

	s.mu.RLock()
	snapshot := s.d.clone()
	s.mu.RUnlock()

	committed := false
	defer func() {
		if !committed {
			s.mu.Lock()
			s.d = snapshot
			s.mu.Unlock()
		}
	}()

	if err := fn(ctx, nil); err != nil {
		return err
	}
	committed = true
	return nil
}

func cloneMember(m rosterdb.Member) *rosterdb.Member {
	if m.PartyID != nil {
		id := *m.PartyID
		m.PartyID = &id
	}
	return &m
}

func cloneParty(p rosterdb.Party) *rosterdb.Party {
	p.RecruitingClasses = slices.Clone(p.RecruitingClasses)
	return &p
}

// --- clandb.Repository ---

func (s *Store) InsertClan(ctx context.Context, _ bun.IDB, clan *clandb.Clan) error {
	defer s.lockWrite(ctx)()
	for _, c := range s.d.clans {
		if c.ID == clan.ID {
			return ErrDuplicate
		}
	}
	s.d.clans = append(s.d.clans, *clan)
	return nil
}

func (s *Store) GetClan(_ context.Context, _ bun.IDB, clanID uuid.UUID) (*clandb.Clan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.d.clans {
		if c.ID == clanID {
			return &c, nil
		}
	}
	return nil, clandb.ErrNotFound
}

func (s *Store) GetClanByLeader(_ context.Context, _ bun.IDB, userID uuid.UUID) (*clandb.Clan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.d.clans {
		if c.LeaderID == userID {
			return &c, nil
		}
	}
	return nil, clandb.ErrNotFound
}

func (s *Store) UpdateWebhookURL(ctx context.Context, _ bun.IDB, clanID uuid.UUID, url string) error {
	defer s.lockWrite(ctx)()
	for i := range s.d.clans {
		if s.d.clans[i].ID == clanID {
			s.d.clans[i].DiscordWebhookURL = url
			return nil
		}
	}
	return clandb.ErrNotFound
}

func (s *Store) UpsertUser(ctx context.Context, _ bun.IDB, user *clandb.User) error {
	defer s.lockWrite(ctx)()
	for i := range s.d.users {
		if s.d.users[i].ID == user.ID {
			s.d.users[i].Email = user.Email
			s.d.users[i].Username = user.Username
			user.CreatedAt = s.d.users[i].CreatedAt
			return nil
		}
	}
	s.d.users = append(s.d.users, *user)
	return nil
}

func (s *Store) GetUser(_ context.Context, _ bun.IDB, userID uuid.UUID) (*clandb.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.d.users {
		if u.ID == userID {
			return &u, nil
		}
	}
	return nil, clandb.ErrNotFound
}

func (s *Store) ListUsersByIDs(_ context.Context, _ bun.IDB, ids []uuid.UUID) ([]*clandb.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*clandb.User{}
	for _, u := range s.d.users {
		if slices.Contains(ids, u.ID) {
			out = append(out, &u)
		}
	}
	return out, nil
}

// --- rosterdb.Repository ---

func (s *Store) ListMembers(_ context.Context, _ bun.IDB, clanID uuid.UUID) ([]*rosterdb.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*rosterdb.Member{}
	for _, m := range s.d.members {
		if m.ClanID == clanID {
			out = append(out, cloneMember(m))
		}
	}
	return out, nil
}

func (s *Store) GetMember(_ context.Context, _ bun.IDB, clanID, memberID uuid.UUID) (*rosterdb.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.d.members {
		if m.ID == memberID && m.ClanID == clanID {
			return cloneMember(m), nil
		}
	}
	return nil, rosterdb.ErrNotFound
}

func (s *Store) GetMemberByUserID(_ context.Context, _ bun.IDB, userID uuid.UUID) (*rosterdb.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.d.members {
		if m.UserID == userID {
			return cloneMember(m), nil
		}
	}
	return nil, rosterdb.ErrNotFound
}

func (s *Store) InsertMember(ctx context.Context, _ bun.IDB, member *rosterdb.Member) error {
	defer s.lockWrite(ctx)()
	for _, m := range s.d.members {
		if m.ID == member.ID || m.UserID == member.UserID {
			return rosterdb.ErrDuplicate
		}
	}
	s.d.members = append(s.d.members, *cloneMember(*member))
	return nil
}

func (s *Store) DeleteMember(ctx context.Context, _ bun.IDB, clanID, memberID uuid.UUID) (bool, error) {
	defer s.lockWrite(ctx)()
	before := len(s.d.members)
	s.d.members = slices.DeleteFunc(s.d.members, func(m rosterdb.Member) bool {
		return m.ID == memberID && m.ClanID == clanID
	})
	if len(s.d.members) == before {
		return false, nil
	}
	s.d.attendance = slices.DeleteFunc(s.d.attendance, func(a rosterdb.Attendance) bool {
		return a.MemberID == memberID
	})
	return true, nil
}

func (s *Store) SetMemberParty(ctx context.Context, _ bun.IDB, clanID, memberID uuid.UUID, partyID *uuid.UUID) error {
	defer s.lockWrite(ctx)()
	for i := range s.d.members {
		if s.d.members[i].ID == memberID && s.d.members[i].ClanID == clanID {
			if partyID == nil {
				s.d.members[i].PartyID = nil
			} else {
				id := *partyID
				s.d.members[i].PartyID = &id
			}
			return nil
		}
	}
	return rosterdb.ErrNotFound
}

func (s *Store) ListParties(_ context.Context, _ bun.IDB, clanID uuid.UUID) ([]*rosterdb.Party, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*rosterdb.Party{}
	for _, p := range s.d.parties {
		if p.ClanID == clanID {
			out = append(out, cloneParty(p))
		}
	}
	return out, nil
}

func (s *Store) GetParty(_ context.Context, _ bun.IDB, clanID, partyID uuid.UUID) (*rosterdb.Party, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.d.parties {
		if p.ID == partyID && p.ClanID == clanID {
			return cloneParty(p), nil
		}
	}
	return nil, rosterdb.ErrNotFound
}

// LockParty is GetParty: the transaction lock already serializes writers.
func (s *Store) LockParty(ctx context.Context, db bun.IDB, clanID, partyID uuid.UUID) (*rosterdb.Party, error) {
	return s.GetParty(ctx, db, clanID, partyID)
}

func (s *Store) GetPartyByLeader(_ context.Context, _ bun.IDB, clanID, memberID uuid.UUID) (*rosterdb.Party, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.d.parties {
		if p.LeaderID == memberID && p.ClanID == clanID {
			return cloneParty(p), nil
		}
	}
	return nil, rosterdb.ErrNotFound
}

func (s *Store) InsertParty(ctx context.Context, _ bun.IDB, party *rosterdb.Party) error {
	defer s.lockWrite(ctx)()
	for _, p := range s.d.parties {
		if p.ID == party.ID {
			return ErrDuplicate
		}
	}
	s.d.parties = append(s.d.parties, *cloneParty(*party))
	return nil
}

func (s *Store) UpdateRecruitingClasses(ctx context.Context, _ bun.IDB, clanID, partyID uuid.UUID, classes rosterdb.RecruitingClasses) error {
	defer s.lockWrite(ctx)()
	for i := range s.d.parties {
		if s.d.parties[i].ID == partyID && s.d.parties[i].ClanID == clanID {
			s.d.parties[i].RecruitingClasses = slices.Clone(classes)
			return nil
		}
	}
	return rosterdb.ErrNotFound
}

func (s *Store) CountPartyMembers(_ context.Context, _ bun.IDB, partyID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, m := range s.d.members {
		if m.PartyID != nil && *m.PartyID == partyID {
			n++
		}
	}
	return n, nil
}

func (s *Store) ListEvents(_ context.Context, _ bun.IDB, clanID uuid.UUID) ([]*rosterdb.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*rosterdb.Event{}
	for _, e := range s.d.events {
		if e.ClanID == clanID {
			out = append(out, &e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *Store) ListEventIDs(_ context.Context, _ bun.IDB, clanID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []uuid.UUID{}
	for _, e := range s.d.events {
		if e.ClanID == clanID {
			out = append(out, e.ID)
		}
	}
	return out, nil
}

func (s *Store) GetEvent(_ context.Context, _ bun.IDB, clanID, eventID uuid.UUID) (*rosterdb.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.d.events {
		if e.ID == eventID && e.ClanID == clanID {
			return &e, nil
		}
	}
	return nil, rosterdb.ErrNotFound
}

func (s *Store) InsertEvent(ctx context.Context, _ bun.IDB, event *rosterdb.Event) error {
	defer s.lockWrite(ctx)()
	for _, e := range s.d.events {
		if e.ID == event.ID {
			return ErrDuplicate
		}
	}
	s.d.events = append(s.d.events, *event)
	return nil
}

func (s *Store) ListAttendance(_ context.Context, _ bun.IDB, memberIDs []uuid.UUID) ([]*rosterdb.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*rosterdb.Attendance{}
	for _, a := range s.d.attendance {
		if slices.Contains(memberIDs, a.MemberID) {
			out = append(out, &a)
		}
	}
	return out, nil
}

func (s *Store) InsertAttendance(ctx context.Context, _ bun.IDB, a *rosterdb.Attendance) error {
	defer s.lockWrite(ctx)()
	for _, existing := range s.d.attendance {
		if existing.EventID == a.EventID && existing.MemberID == a.MemberID {
			return nil
		}
	}
	s.d.attendance = append(s.d.attendance, *a)
	return nil
}

func (s *Store) DeleteAttendance(ctx context.Context, _ bun.IDB, eventID, memberID uuid.UUID) error {
	defer s.lockWrite(ctx)()
	s.d.attendance = slices.DeleteFunc(s.d.attendance, func(a rosterdb.Attendance) bool {
		return a.EventID == eventID && a.MemberID == memberID
	})
	return nil
}

// --- recruitmentdb.Repository ---

func (s *Store) InsertApplication(ctx context.Context, _ bun.IDB, app *recruitmentdb.Application) error {
	defer s.lockWrite(ctx)()
	for _, a := range s.d.applications {
		if a.ID == app.ID {
			return ErrDuplicate
		}
	}
	s.d.applications = append(s.d.applications, *app)
	return nil
}

func (s *Store) ListApplications(_ context.Context, _ bun.IDB, clanID uuid.UUID, status recruitmentdb.ApplicationStatus) ([]*recruitmentdb.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*recruitmentdb.Application{}
	for _, a := range s.d.applications {
		if a.ClanID != clanID || (status != "" && a.Status != status) {
			continue
		}
		out = append(out, &a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) GetApplication(_ context.Context, _ bun.IDB, clanID, appID uuid.UUID, _ bool) (*recruitmentdb.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.d.applications {
		if a.ID == appID && a.ClanID == clanID {
			return &a, nil
		}
	}
	return nil, recruitmentdb.ErrNotFound
}

func (s *Store) UpdateApplicationStatus(ctx context.Context, _ bun.IDB, clanID, appID uuid.UUID, status recruitmentdb.ApplicationStatus) error {
	defer s.lockWrite(ctx)()
	for i := range s.d.applications {
		if s.d.applications[i].ID == appID && s.d.applications[i].ClanID == clanID {
			s.d.applications[i].Status = status
			return nil
		}
	}
	return recruitmentdb.ErrNotFound
}

var (
	_ database.Transactor      = (*Store)(nil)
	_ clandb.Repository        = (*Store)(nil)
	_ rosterdb.Repository      = (*Store)(nil)
	_ recruitmentdb.Repository = (*Store)(nil)
)
