package rosterservice

import (
	"cmp"
	"slices"
	"strings"
)

// Party filter modes. Any other value matches an exact party name.
const (
	FilterAll     = "All"
	FilterSolo    = "Solo"
	FilterInParty = "In Party"
	filterInCP    = "In CP"
)

// MemberFilter narrows an enriched member list. Zero values match everything.
type MemberFilter struct {
	Query      string
	ClassGroup string
	Party      string
}

// Match reports whether m passes every constraint of f.
func (f MemberFilter) Match(m *EnrichedMember) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(m.InGameName), q) &&
			!strings.Contains(strings.ToLower(m.Class), q) {
			return false
		}
	}
	if f.ClassGroup != "" && f.ClassGroup != FilterAll && m.ClassGroup != f.ClassGroup {
		return false
	}
	switch f.Party {
	case "", FilterAll:
	case FilterSolo:
		return m.CPName == nil
	case FilterInParty, filterInCP:
		return m.CPName != nil
	default:
		return m.PartyName() == f.Party
	}
	return true
}

// Apply returns the members that match f, preserving order.
func (f MemberFilter) Apply(members []*EnrichedMember) []*EnrichedMember {
	out := make([]*EnrichedMember, 0, len(members))
	for _, m := range members {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	return out
}

// Direction is a sort order.
type Direction string

const (
	Desc Direction = "desc"
	Asc  Direction = "asc"
)

// Sort keys. KeyAttendance orders by the computed rate.
const (
	KeyInGameName  = "in_game_name"
	KeyClass       = "class"
	KeyClassGroup  = "class_group"
	KeyRole        = "role"
	KeyLevel       = "level"
	KeyCombatPower = "combat_power"
	KeyJoinDate    = "join_date"
	KeyStatus      = "status"
	KeyCPName      = "cp_name"
	KeyAttended    = "attended_events"
	KeyAttendance  = "attendance"
)

var comparators = map[string]func(a, b *EnrichedMember) int{
	KeyInGameName: func(a, b *EnrichedMember) int {
		return cmp.Compare(strings.ToLower(a.InGameName), strings.ToLower(b.InGameName))
	},
	KeyClass:       func(a, b *EnrichedMember) int { return cmp.Compare(a.Class, b.Class) },
	KeyClassGroup:  func(a, b *EnrichedMember) int { return cmp.Compare(a.ClassGroup, b.ClassGroup) },
	KeyRole:        func(a, b *EnrichedMember) int { return cmp.Compare(a.Role, b.Role) },
	KeyLevel:       func(a, b *EnrichedMember) int { return cmp.Compare(a.Level, b.Level) },
	KeyCombatPower: func(a, b *EnrichedMember) int { return cmp.Compare(a.CombatPower, b.CombatPower) },
	KeyJoinDate:    func(a, b *EnrichedMember) int { return a.JoinDate.Compare(b.JoinDate) },
	KeyStatus:      func(a, b *EnrichedMember) int { return cmp.Compare(a.Status, b.Status) },
	KeyCPName:      func(a, b *EnrichedMember) int { return cmp.Compare(a.PartyName(), b.PartyName()) },
	KeyAttended:    func(a, b *EnrichedMember) int { return cmp.Compare(a.AttendedEvents, b.AttendedEvents) },
	KeyAttendance:  func(a, b *EnrichedMember) int { return cmp.Compare(a.AttendanceRate(), b.AttendanceRate()) },
}

// ValidSortKey reports whether key can be sorted on.
func ValidSortKey(key string) bool {
	_, ok := comparators[key]
	return ok
}

// SortState is the current sort key and direction.
type SortState struct {
	Key       string
	Direction Direction
}

// DefaultSort orders by combat power, strongest first.
func DefaultSort() SortState {
	return SortState{Key: KeyCombatPower, Direction: Desc}
}

// Toggle returns the state after key is selected: the same key flips the
// direction, a new key starts descending.
func (s SortState) Toggle(key string) SortState {
	if key == s.Key {
		if s.Direction == Desc {
			return SortState{Key: key, Direction: Asc}
		}
		return SortState{Key: key, Direction: Desc}
	}
	return SortState{Key: key, Direction: Desc}
}

// Sort orders members in place. Ties keep their input order. Unknown keys
// leave the slice untouched.
func (s SortState) Sort(members []*EnrichedMember) {
	compare, ok := comparators[s.Key]
	if !ok {
		return
	}
	if s.Direction == Asc {
		slices.SortStableFunc(members, compare)
		return
	}
	slices.SortStableFunc(members, func(a, b *EnrichedMember) int { return compare(b, a) })
}
