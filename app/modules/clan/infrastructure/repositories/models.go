package clandb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Clan is the top-level tenant owning members, parties and events.
type Clan struct {
	bun.BaseModel     `bun:"table:clans,alias:c"`
	ID                uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name              string    `bun:"name,notnull" json:"name"`
	Server            string    `bun:"server,notnull" json:"server"`
	LeaderID          uuid.UUID `bun:"leader_id,notnull,type:uuid" json:"leader_id"` // User id
	DiscordWebhookURL string    `bun:"discord_webhook_url,nullzero" json:"discord_webhook_url,omitempty"`
	CreatedAt         time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// User is the external identity record. Its id comes from the identity provider.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	ID            uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Email         string    `bun:"email,notnull" json:"email"`
	Username      string    `bun:"username,notnull" json:"username"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
