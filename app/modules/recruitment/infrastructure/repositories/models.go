package recruitmentdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ApplicationType distinguishes a single player from a whole Constant Party applying.
type ApplicationType string

const (
	ApplicationTypeSolo ApplicationType = "solo"
	ApplicationTypeCP   ApplicationType = "cp"
)

// Label is the human-readable name used in notifications.
func (t ApplicationType) Label() string {
	if t == ApplicationTypeCP {
		return "Constant Party"
	}
	return "Solo Player"
}

// ApplicationStatus is the review state of an application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

// IsTerminal reports whether the status is a review decision.
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Valid reports whether s is one of the known statuses.
func (s ApplicationStatus) Valid() bool {
	return s == StatusPending || s.IsTerminal()
}

// Application is a recruitment submission awaiting an accept/reject decision.
type Application struct {
	bun.BaseModel `bun:"table:applications,alias:a"`
	ID            uuid.UUID         `bun:"id,pk,type:uuid" json:"id"`
	ClanID        uuid.UUID         `bun:"clan_id,notnull,type:uuid" json:"clan_id"`
	Type          ApplicationType   `bun:"type,notnull" json:"type"`
	Name          string            `bun:"name,notnull" json:"name"`
	Class         string            `bun:"class,notnull" json:"class"`
	Level         int               `bun:"level,notnull" json:"level"`
	CombatPower   int64             `bun:"combat_power,notnull" json:"combat_power"`
	Discord       string            `bun:"discord,notnull" json:"discord"`
	Playtime      string            `bun:"playtime,notnull" json:"playtime"`
	Notes         string            `bun:"notes,nullzero" json:"notes,omitempty"`
	Status        ApplicationStatus `bun:"status,notnull,default:'pending'" json:"status"`
	CreatedAt     time.Time         `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
