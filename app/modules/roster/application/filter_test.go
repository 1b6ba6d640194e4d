package rosterservice

import (
	"testing"

	rosterdb "github.com/Black-And-White-Club/clan-roster/app/modules/roster/infrastructure/repositories"
	"github.com/stretchr/testify/assert"
)

func enriched(name, class, group string, cp int64, party string, attended, total int) *EnrichedMember {
	m := &EnrichedMember{
		Member: &rosterdb.Member{
			InGameName:  name,
			Class:       class,
			ClassGroup:  group,
			CombatPower: cp,
		},
		AttendedEvents: attended,
		TotalEvents:    total,
	}
	if party != "" {
		m.CPName = &party
	}
	return m
}

func names(members []*EnrichedMember) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.InGameName
	}
	return out
}

func roster() []*EnrichedMember {
	return []*EnrichedMember{
		enriched("Aria", "Bishop", "Healer", 50000, "Owls", 4, 10),
		enriched("Borin", "Paladin", "Tank", 80000, "", 10, 10),
		enriched("Cael", "Sorcerer", "Mage", 80000, "Hawks", 2, 10),
		enriched("Dain", "Shillien Elder", "Healer", 30000, "", 0, 10),
	}
}

func TestMemberFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter MemberFilter
		want   []string
	}{
		{name: "zero filter", filter: MemberFilter{}, want: []string{"Aria", "Borin", "Cael", "Dain"}},
		{name: "query matches name", filter: MemberFilter{Query: "AR"}, want: []string{"Aria"}},
		{name: "query matches class", filter: MemberFilter{Query: "elder"}, want: []string{"Dain"}},
		{name: "class group", filter: MemberFilter{ClassGroup: "Healer"}, want: []string{"Aria", "Dain"}},
		{name: "class group All", filter: MemberFilter{ClassGroup: FilterAll}, want: []string{"Aria", "Borin", "Cael", "Dain"}},
		{name: "solo", filter: MemberFilter{Party: FilterSolo}, want: []string{"Borin", "Dain"}},
		{name: "in party", filter: MemberFilter{Party: FilterInParty}, want: []string{"Aria", "Cael"}},
		{name: "in cp alias", filter: MemberFilter{Party: "In CP"}, want: []string{"Aria", "Cael"}},
		{name: "exact party", filter: MemberFilter{Party: "Hawks"}, want: []string{"Cael"}},
		{name: "combined", filter: MemberFilter{ClassGroup: "Healer", Party: FilterSolo}, want: []string{"Dain"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(tt.filter.Apply(roster())))
		})
	}
}

func TestSortState(t *testing.T) {
	t.Run("default is combat power descending with stable ties", func(t *testing.T) {
		members := roster()
		DefaultSort().Sort(members)
		assert.Equal(t, []string{"Borin", "Cael", "Aria", "Dain"}, names(members))
	})

	t.Run("ascending keeps ties in input order", func(t *testing.T) {
		members := roster()
		SortState{Key: KeyCombatPower, Direction: Asc}.Sort(members)
		assert.Equal(t, []string{"Dain", "Aria", "Borin", "Cael"}, names(members))
	})

	t.Run("attendance sorts by rate", func(t *testing.T) {
		members := []*EnrichedMember{
			enriched("Few", "", "", 0, "", 3, 3),
			enriched("Many", "", "", 0, "", 5, 10),
			enriched("None", "", "", 0, "", 0, 0),
		}
		SortState{Key: KeyAttendance, Direction: Desc}.Sort(members)
		assert.Equal(t, []string{"Few", "Many", "None"}, names(members))
	})

	t.Run("unknown key leaves order", func(t *testing.T) {
		members := roster()
		SortState{Key: "favourite_color", Direction: Asc}.Sort(members)
		assert.Equal(t, []string{"Aria", "Borin", "Cael", "Dain"}, names(members))
	})

	t.Run("toggle", func(t *testing.T) {
		s := DefaultSort()
		s = s.Toggle(KeyCombatPower)
		assert.Equal(t, SortState{Key: KeyCombatPower, Direction: Asc}, s)
		s = s.Toggle(KeyCombatPower)
		assert.Equal(t, SortState{Key: KeyCombatPower, Direction: Desc}, s)
		s = s.Toggle(KeyCombatPower).Toggle(KeyLevel)
		assert.Equal(t, SortState{Key: KeyLevel, Direction: Desc}, s)
	})
}
