// Package testutils holds seeded data generators and a Postgres container
// helper shared by repository and service tests.
package testutils

import (
	"time"

	clandb "github.com/Black-And-White-Club/clan-roster/app/modules/clan/infrastructure/repositories"
	recruitmentdb "github.com/Black-And-White-Club/clan-roster/app/modules/recruitment/infrastructure/repositories"
	rosterdb "github.com/Black-And-White-Club/clan-roster/app/modules/roster/infrastructure/repositories"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

var (
	classGroups = map[string][]string{
		"Tank":    {"Paladin", "Dark Avenger", "Temple Knight", "Shillien Knight"},
		"Healer":  {"Bishop", "Elven Elder", "Shillien Elder"},
		"Mage":    {"Sorcerer", "Necromancer", "Spellsinger", "Spellhowler"},
		"Archer":  {"Hawkeye", "Silver Ranger", "Phantom Ranger"},
		"Dagger":  {"Treasure Hunter", "Plainswalker", "Abyss Walker"},
		"Support": {"Warcryer", "Overlord", "Sword Singer", "Bladedancer"},
	}
	groupNames = []string{"Tank", "Healer", "Mage", "Archer", "Dagger", "Support"}
)

// TestDataGenerator creates reproducible roster data for tests.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a generator. Without a seed the current time is used.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}
	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed, for reproducing a failing run.
func (g *TestDataGenerator) Seed() int64 { return g.seed }

func (g *TestDataGenerator) User() *clandb.User {
	return &clandb.User{
		ID:        uuid.New(),
		Email:     g.faker.Email(),
		Username:  g.faker.Username(),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (g *TestDataGenerator) Clan(leaderID uuid.UUID) *clandb.Clan {
	return &clandb.Clan{
		ID:        uuid.New(),
		Name:      g.faker.Company(),
		Server:    g.faker.RandomString([]string{"Giran", "Aden", "Oren", "Goddard"}),
		LeaderID:  leaderID,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

// Class returns a random class and the group it belongs to.
func (g *TestDataGenerator) Class() (class, group string) {
	group = groupNames[g.faker.Number(0, len(groupNames)-1)]
	classes := classGroups[group]
	return classes[g.faker.Number(0, len(classes)-1)], group
}

func (g *TestDataGenerator) Member(clanID uuid.UUID) *rosterdb.Member {
	class, group := g.Class()
	return &rosterdb.Member{
		ID:          uuid.New(),
		ClanID:      clanID,
		UserID:      uuid.New(),
		InGameName:  g.faker.Gamertag(),
		Class:       class,
		ClassGroup:  group,
		Role:        rosterdb.RoleMember,
		Level:       g.faker.Number(40, 85),
		CombatPower: int64(g.faker.Number(100_000, 5_000_000)),
		JoinDate:    time.Now().UTC().Truncate(time.Microsecond),
		Status:      rosterdb.MemberStatusActive,
	}
}

// Members generates count members of one clan.
func (g *TestDataGenerator) Members(clanID uuid.UUID, count int) []*rosterdb.Member {
	out := make([]*rosterdb.Member, count)
	for i := range out {
		out[i] = g.Member(clanID)
	}
	return out
}

func (g *TestDataGenerator) Party(clanID, leaderID uuid.UUID) *rosterdb.Party {
	var needs rosterdb.RecruitingClasses
	for range g.faker.Number(0, 3) {
		class, _ := g.Class()
		needs = append(needs, class)
	}
	return &rosterdb.Party{
		ID:                uuid.New(),
		ClanID:            clanID,
		Name:              g.faker.Adjective() + " " + g.faker.Animal(),
		LeaderID:          leaderID,
		RecruitingClasses: needs,
		CreatedAt:         time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (g *TestDataGenerator) Event(clanID uuid.UUID, date time.Time) *rosterdb.Event {
	return &rosterdb.Event{
		ID:        uuid.New(),
		ClanID:    clanID,
		Name:      g.faker.RandomString([]string{"Siege", "Raid", "Epic Boss", "Olympiad"}) + " " + g.faker.Noun(),
		Type:      g.faker.RandomString([]string{"siege", "raid", "pvp", "meeting"}),
		Date:      date.UTC().Truncate(time.Minute),
		Mandatory: g.faker.Bool(),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (g *TestDataGenerator) Application(clanID uuid.UUID) *recruitmentdb.Application {
	class, _ := g.Class()
	appType := recruitmentdb.ApplicationTypeSolo
	if g.faker.Bool() {
		appType = recruitmentdb.ApplicationTypeCP
	}
	return &recruitmentdb.Application{
		ID:          uuid.New(),
		ClanID:      clanID,
		Type:        appType,
		Name:        g.faker.Gamertag(),
		Class:       class,
		Level:       g.faker.Number(40, 85),
		CombatPower: int64(g.faker.Number(100_000, 5_000_000)),
		Discord:     g.faker.Username(),
		Playtime:    g.faker.RandomString([]string{"evenings", "weekends", "daily 18-23 CET"}),
		Notes:       g.faker.Phrase(),
		Status:      recruitmentdb.StatusPending,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
}
