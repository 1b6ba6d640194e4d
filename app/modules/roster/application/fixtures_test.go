package rosterservice

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Black-And-White-Club/clan-roster/app/database"
	clandb "github.com/Black-And-White-Club/clan-roster/app/modules/clan/infrastructure/repositories"
	rosterdb "github.com/Black-And-White-Club/clan-roster/app/modules/roster/infrastructure/repositories"
	"github.com/Black-And-White-Club/clan-roster/app/observability"
	"github.com/Black-And-White-Club/clan-roster/app/store/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

var fixedNow = time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)

func newService(repo rosterdb.Repository, users clandb.Repository, tx database.Transactor) *RosterService {
	s := NewRosterService(repo, users, tx, slog.New(slog.NewTextHandler(io.Discard, nil)), observability.NewNoop(), noop.NewTracerProvider().Tracer("test"))
	s.now = func() time.Time { return fixedNow }
	return s
}

// clanFixture seeds a clan in a memory store.
type clanFixture struct {
	t     *testing.T
	store *memory.Store
	svc   *RosterService
	clan  *clandb.Clan
	seq   int
}

func newClanFixture(t *testing.T) *clanFixture {
	t.Helper()
	store := memory.New()
	clan := &clandb.Clan{ID: uuid.New(), Name: "Valhalla", Server: "Giran", LeaderID: uuid.New(), CreatedAt: fixedNow}
	require.NoError(t, store.InsertClan(context.Background(), nil, clan))
	return &clanFixture{t: t, store: store, svc: newService(store, store, store), clan: clan}
}

func (f *clanFixture) member(partyID *uuid.UUID, mutate ...func(*rosterdb.Member)) *rosterdb.Member {
	f.t.Helper()
	f.seq++
	user := &clandb.User{ID: uuid.New(), Username: fmt.Sprintf("user%d", f.seq), CreatedAt: fixedNow}
	require.NoError(f.t, f.store.UpsertUser(context.Background(), nil, user))
	m := &rosterdb.Member{
		ID:          uuid.New(),
		ClanID:      f.clan.ID,
		UserID:      user.ID,
		InGameName:  fmt.Sprintf("Hero%d", f.seq),
		Class:       "Paladin",
		ClassGroup:  "Tank",
		Role:        rosterdb.RoleMember,
		Level:       80,
		CombatPower: int64(f.seq) * 1000,
		JoinDate:    fixedNow.Add(time.Duration(f.seq) * time.Hour),
		PartyID:     partyID,
		Status:      rosterdb.MemberStatusActive,
	}
	for _, fn := range mutate {
		fn(m)
	}
	require.NoError(f.t, f.store.InsertMember(context.Background(), nil, m))
	return m
}

func (f *clanFixture) party(name string, size int, needs ...string) *rosterdb.Party {
	f.t.Helper()
	p := &rosterdb.Party{ID: uuid.New(), ClanID: f.clan.ID, Name: name, RecruitingClasses: rosterdb.RecruitingClasses(needs).Normalize(), CreatedAt: fixedNow}
	for i := 0; i < size; i++ {
		m := f.member(&p.ID)
		if i == 0 {
			p.LeaderID = m.ID
		}
	}
	require.NoError(f.t, f.store.InsertParty(context.Background(), nil, p))
	return p
}

func (f *clanFixture) event(name string) *rosterdb.Event {
	f.t.Helper()
	e := &rosterdb.Event{ID: uuid.New(), ClanID: f.clan.ID, Name: name, Type: "Epic Boss", Date: fixedNow, CreatedAt: fixedNow}
	require.NoError(f.t, f.store.InsertEvent(context.Background(), nil, e))
	return e
}

func (f *clanFixture) attend(e *rosterdb.Event, m *rosterdb.Member) {
	f.t.Helper()
	require.NoError(f.t, f.store.InsertAttendance(context.Background(), nil, &rosterdb.Attendance{EventID: e.ID, MemberID: m.ID}))
}

func (f *clanFixture) partySize(partyID uuid.UUID) int {
	f.t.Helper()
	n, err := f.store.CountPartyMembers(context.Background(), nil, partyID)
	require.NoError(f.t, err)
	return n
}
