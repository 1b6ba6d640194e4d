package rosterservice

import (
	"bytes"
	"context"
	"testing"

	rosterdb "github.com/Black-And-White-Club/clan-roster/app/modules/roster/infrastructure/repositories"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGetDashboardStats(t *testing.T) {
	f := newClanFixture(t)
	owls := f.party("Owls", 2, "Bishop")
	f.party("Hawks", 1)
	f.member(nil, func(m *rosterdb.Member) {
		m.ClassGroup = "Healer"
		m.Level = 77
	})
	f.member(nil, func(m *rosterdb.Member) {
		m.Status = rosterdb.MemberStatusInactive
		m.ClassGroup = "Mage"
	})

	stats, err := f.svc.GetDashboardStats(context.Background(), f.clan.ID)
	require.NoError(t, err)

	// Active: seq 1..4 (cp 1000..4000), levels 80,80,80,77.
	want := GeneralStats{TotalMembers: 4, AvgLevel: 79, TotalPower: 10000}
	if diff := cmp.Diff(want, stats.GeneralStats); diff != "" {
		t.Errorf("general stats mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []ClassShare{{Name: "Tank", Value: 3}, {Name: "Healer", Value: 1}}, stats.ClassDistribution)
	assert.Equal(t, []PartyPower{{Name: "Owls", TotalPower: 3000}, {Name: "Hawks", TotalPower: 3000}}, stats.CPPower)
	require.Len(t, stats.RecruitmentNeeds, 1)
	assert.Equal(t, owls.Name, stats.RecruitmentNeeds[0].CPName)
	assert.Equal(t, fixedNow, stats.GeneratedAt)
}

func TestExportRoster(t *testing.T) {
	f := newClanFixture(t)
	f.party("Owls", 2, "Bishop", "Warlord")
	f.member(nil, func(m *rosterdb.Member) { m.InGameName = "Strongest"; m.CombatPower = 99000 })
	e := f.event("Baium")
	members, err := f.store.ListMembers(context.Background(), nil, f.clan.ID)
	require.NoError(t, err)
	f.attend(e, members[0])

	var buf bytes.Buffer
	require.NoError(t, f.svc.ExportRoster(context.Background(), f.clan.ID, &buf))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{membersSheet, partiesSheet}, wb.GetSheetList())

	rows, err := wb.GetRows(membersSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "In-Game Name", rows[0][0])
	assert.Equal(t, "Strongest", rows[1][0], "default sort puts the highest combat power first")
	assert.Equal(t, "Owls", rows[3][6])
	assert.Equal(t, "100", rows[3][11])

	rows, err = wb.GetRows(partiesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Owls", "user1", "2", "3000", "80", "Bishop, Warlord"}, rows[1])
}
