package clanservice

import (
	clandb "github.com/Black-And-White-Club/clan-roster/app/modules/clan/infrastructure/repositories"
	rosterdb "github.com/Black-And-White-Club/clan-roster/app/modules/roster/infrastructure/repositories"
	"github.com/google/uuid"
)

// CreateClanRequest carries the clan identity and the founder's in-game character.
type CreateClanRequest struct {
	Name       string    `json:"name"`
	Server     string    `json:"server"`
	LeaderID   uuid.UUID `json:"leader_id"`
	InGameName string    `json:"in_game_name"`
	Class      string    `json:"class"`
	ClassGroup string    `json:"class_group"`
}

// Settings are the clan's configurable integrations.
type Settings struct {
	DiscordWebhookURL string `json:"discord_webhook_url"`
}

// SyncUserRequest mirrors the identity provider's user record.
type SyncUserRequest struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
}

// UserContext is everything the client needs after sign-in. Clan and Member
// are nil when the user has neither founded nor joined a clan.
type UserContext struct {
	User   *clandb.User     `json:"user"`
	Clan   *clandb.Clan     `json:"clan"`
	Member *rosterdb.Member `json:"member"`
}
