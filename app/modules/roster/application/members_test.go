package rosterservice

import (
	"context"
	"errors"
	"sync"
	"testing"

	clandb "github.com/Black-And-White-Club/clan-roster/app/modules/clan/infrastructure/repositories"
	rosterdb "github.com/Black-And-White-Club/clan-roster/app/modules/roster/infrastructure/repositories"
	"github.com/Black-And-White-Club/clan-roster/app/shared/domainerrors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func TestAssignMemberParty_Capacity(t *testing.T) {
	f := newClanFixture(t)
	full := f.party("Full House", rosterdb.PartyCapacity)
	almost := f.party("Almost", rosterdb.PartyCapacity-1)
	tenth := f.member(nil)
	ninth := f.member(nil)
	ctx := context.Background()

	err := f.svc.AssignMemberParty(ctx, f.clan.ID, tenth.ID, &full.ID)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
	assert.Equal(t, rosterdb.PartyCapacity, f.partySize(full.ID))

	require.NoError(t, f.svc.AssignMemberParty(ctx, f.clan.ID, ninth.ID, &almost.ID))
	assert.Equal(t, rosterdb.PartyCapacity, f.partySize(almost.ID))

	got, err := f.store.GetMember(ctx, nil, f.clan.ID, tenth.ID)
	require.NoError(t, err)
	assert.Nil(t, got.PartyID, "rejected member must stay solo")
}

func TestAssignMemberParty_ConcurrentAssignmentsNeverOverfill(t *testing.T) {
	f := newClanFixture(t)
	p := f.party("Contested", rosterdb.PartyCapacity-2)

	const contenders = 6
	var ids []uuid.UUID
	for i := 0; i < contenders; i++ {
		ids = append(ids, f.member(nil).ID)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		rejected int
	)
	for _, id := range ids {
		wg.Add(1)
		go func(memberID uuid.UUID) {
			defer wg.Done()
			err := f.svc.AssignMemberParty(context.Background(), f.clan.ID, memberID, &p.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case errors.Is(err, ErrCapacityExceeded):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 2, accepted)
	assert.Equal(t, contenders-2, rejected)
	assert.Equal(t, rosterdb.PartyCapacity, f.partySize(p.ID))
}

func TestAssignMemberParty(t *testing.T) {
	ctx := context.Background()

	t.Run("leader cannot leave their party", func(t *testing.T) {
		f := newClanFixture(t)
		p := f.party("Owls", 2)
		other := f.party("Hawks", 1)

		assert.ErrorIs(t, f.svc.AssignMemberParty(ctx, f.clan.ID, p.LeaderID, nil), ErrLeaderCannotLeave)
		assert.ErrorIs(t, f.svc.AssignMemberParty(ctx, f.clan.ID, p.LeaderID, &other.ID), ErrLeaderCannotLeave)
	})

	t.Run("same party is a no-op", func(t *testing.T) {
		f := newClanFixture(t)
		p := f.party("Owls", rosterdb.PartyCapacity)
		members, err := f.store.ListMembers(ctx, nil, f.clan.ID)
		require.NoError(t, err)

		// The party is full, but re-assigning an existing member must not trip the check.
		assert.NoError(t, f.svc.AssignMemberParty(ctx, f.clan.ID, members[1].ID, &p.ID))
	})

	t.Run("leave party", func(t *testing.T) {
		f := newClanFixture(t)
		p := f.party("Owls", 2)
		members, err := f.store.ListMembers(ctx, nil, f.clan.ID)
		require.NoError(t, err)

		require.NoError(t, f.svc.AssignMemberParty(ctx, f.clan.ID, members[1].ID, nil))
		assert.Equal(t, 1, f.partySize(p.ID))
	})

	t.Run("unknown party", func(t *testing.T) {
		f := newClanFixture(t)
		m := f.member(nil)
		missing := uuid.New()
		assert.ErrorIs(t, f.svc.AssignMemberParty(ctx, f.clan.ID, m.ID, &missing), ErrPartyNotFound)
	})

	t.Run("member of another clan", func(t *testing.T) {
		f := newClanFixture(t)
		m := f.member(nil)
		p := f.party("Owls", 1)
		err := f.svc.AssignMemberParty(ctx, uuid.New(), m.ID, &p.ID)
		assert.ErrorIs(t, err, ErrMemberNotFound)
		assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	})

	t.Run("count failure rolls back as store error", func(t *testing.T) {
		clanID, memberID, partyID := uuid.New(), uuid.New(), uuid.New()
		repo := &rosterdb.FakeRepository{
			GetMemberFn: func(ctx context.Context, db bun.IDB, c, m uuid.UUID) (*rosterdb.Member, error) {
				return &rosterdb.Member{ID: m, ClanID: c}, nil
			},
			LockPartyFn: func(ctx context.Context, db bun.IDB, c, p uuid.UUID) (*rosterdb.Party, error) {
				return &rosterdb.Party{ID: p, ClanID: c}, nil
			},
			CountPartyMembersFn: func(ctx context.Context, db bun.IDB, p uuid.UUID) (int, error) {
				return 0, errors.New("deadlock detected")
			},
		}
		svc := newService(repo, &clandb.FakeRepository{}, nil)

		err := svc.AssignMemberParty(ctx, clanID, memberID, &partyID)
		assert.ErrorIs(t, err, domainerrors.ErrStore)
		assert.Equal(t, []string{"GetMember", "GetPartyByLeader", "LockParty", "CountPartyMembers"}, repo.Trace())
	})
}

func TestAddMember(t *testing.T) {
	ctx := context.Background()
	valid := func() AddMemberRequest {
		return AddMemberRequest{
			UserID:      uuid.New(),
			InGameName:  " Elowen ",
			Class:       "Bishop",
			ClassGroup:  "Healer",
			Role:        rosterdb.RoleOfficer,
			Level:       76,
			CombatPower: 54000,
		}
	}

	t.Run("adds active member", func(t *testing.T) {
		f := newClanFixture(t)
		m, err := f.svc.AddMember(ctx, f.clan.ID, valid())
		require.NoError(t, err)
		assert.Equal(t, "Elowen", m.InGameName)
		assert.Equal(t, rosterdb.MemberStatusActive, m.Status)
		assert.Equal(t, fixedNow, m.JoinDate)
		assert.Nil(t, m.PartyID)
	})

	t.Run("defaults role and level", func(t *testing.T) {
		f := newClanFixture(t)
		req := valid()
		req.Role = ""
		req.Level = 0
		m, err := f.svc.AddMember(ctx, f.clan.ID, req)
		require.NoError(t, err)
		assert.Equal(t, rosterdb.RoleMember, m.Role)
		assert.Equal(t, 1, m.Level)
	})

	t.Run("leader role is not assignable", func(t *testing.T) {
		f := newClanFixture(t)
		req := valid()
		req.Role = rosterdb.RoleLeader
		_, err := f.svc.AddMember(ctx, f.clan.ID, req)
		assert.ErrorIs(t, err, domainerrors.ErrValidation)
	})

	t.Run("missing class group", func(t *testing.T) {
		f := newClanFixture(t)
		req := valid()
		req.ClassGroup = ""
		_, err := f.svc.AddMember(ctx, f.clan.ID, req)
		assert.ErrorIs(t, err, domainerrors.ErrValidation)
	})

	t.Run("user already a member", func(t *testing.T) {
		f := newClanFixture(t)
		existing := f.member(nil)
		req := valid()
		req.UserID = existing.UserID
		_, err := f.svc.AddMember(ctx, f.clan.ID, req)
		assert.ErrorIs(t, err, ErrAlreadyMember)
	})

	t.Run("into full party", func(t *testing.T) {
		f := newClanFixture(t)
		p := f.party("Full", rosterdb.PartyCapacity)
		req := valid()
		req.PartyID = &p.ID
		_, err := f.svc.AddMember(ctx, f.clan.ID, req)
		assert.ErrorIs(t, err, ErrCapacityExceeded)

		_, err = f.store.GetMemberByUserID(ctx, nil, req.UserID)
		assert.ErrorIs(t, err, rosterdb.ErrNotFound)
	})

	t.Run("into party with room", func(t *testing.T) {
		f := newClanFixture(t)
		p := f.party("Room", 3)
		req := valid()
		req.PartyID = &p.ID
		m, err := f.svc.AddMember(ctx, f.clan.ID, req)
		require.NoError(t, err)
		require.NotNil(t, m.PartyID)
		assert.Equal(t, 4, f.partySize(p.ID))
	})
}

func TestRemoveMember(t *testing.T) {
	ctx := context.Background()
	f := newClanFixture(t)
	keep := f.member(nil)
	gone := f.member(nil)
	e := f.event("Antharas")
	f.attend(e, gone)

	require.NoError(t, f.svc.RemoveMember(ctx, f.clan.ID, gone.ID))
	require.NoError(t, f.svc.RemoveMember(ctx, f.clan.ID, gone.ID), "second delete is a no-op")
	require.NoError(t, f.svc.RemoveMember(ctx, f.clan.ID, uuid.New()))
	require.NoError(t, f.svc.RemoveMember(ctx, uuid.New(), keep.ID), "other clan cannot delete")

	members, err := f.store.ListMembers(ctx, nil, f.clan.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, keep.ID, members[0].ID)

	rows, err := f.store.ListAttendance(ctx, nil, []uuid.UUID{gone.ID})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRemoveMember_PartyLeader(t *testing.T) {
	ctx := context.Background()
	f := newClanFixture(t)
	p := f.party("Alpha", 3)

	err := f.svc.RemoveMember(ctx, f.clan.ID, p.LeaderID)
	require.ErrorIs(t, err, ErrLeaderCannotLeave)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	leader, err := f.store.GetMember(ctx, nil, f.clan.ID, p.LeaderID)
	require.NoError(t, err, "leader row is kept")
	assert.Equal(t, p.ID, *leader.PartyID)

	parties, err := f.svc.ListEnrichedParties(ctx, f.clan.ID)
	require.NoError(t, err)
	require.Len(t, parties, 1)
	assert.NotEqual(t, "Unknown", parties[0].LeaderName)
}

func TestRemoveMember_ChecksLeadershipBeforeDelete(t *testing.T) {
	repo := &rosterdb.FakeRepository{}
	svc := newService(repo, &clandb.FakeRepository{}, nil)

	require.NoError(t, svc.RemoveMember(context.Background(), uuid.New(), uuid.New()))
	assert.Equal(t, []string{"GetPartyByLeader", "DeleteMember"}, repo.Trace())

	repo = &rosterdb.FakeRepository{
		GetPartyByLeaderFn: func(context.Context, bun.IDB, uuid.UUID, uuid.UUID) (*rosterdb.Party, error) {
			return &rosterdb.Party{ID: uuid.New()}, nil
		},
	}
	svc = newService(repo, &clandb.FakeRepository{}, nil)

	err := svc.RemoveMember(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrLeaderCannotLeave)
	assert.Equal(t, []string{"GetPartyByLeader"}, repo.Trace())
}

func TestAddMember_UniqueViolationIsConflict(t *testing.T) {
	repo := &rosterdb.FakeRepository{
		InsertMemberFn: func(context.Context, bun.IDB, *rosterdb.Member) error {
			return rosterdb.ErrDuplicate
		},
	}
	svc := newService(repo, &clandb.FakeRepository{}, nil)

	_, err := svc.AddMember(context.Background(), uuid.New(), AddMemberRequest{
		UserID:     uuid.New(),
		InGameName: "Latecomer",
		Class:      "Bishop",
		ClassGroup: "Healer",
	})
	require.ErrorIs(t, err, ErrAlreadyMember)
	assert.NotErrorIs(t, err, domainerrors.ErrStore)
}
