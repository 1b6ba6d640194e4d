package rosterdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// PartyCapacity is the fixed maximum number of members in a Constant Party.
const PartyCapacity = 9

// Role is a member's rank within the clan.
type Role string

const (
	RoleLeader  Role = "leader"
	RoleOfficer Role = "officer"
	RoleMember  Role = "member"
)

// MemberStatus marks whether a member is currently playing.
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "active"
	MemberStatusInactive MemberStatus = "inactive"
)

// Member is a user's membership record within one clan.
type Member struct {
	bun.BaseModel `bun:"table:members,alias:m"`
	ID            uuid.UUID    `bun:"id,pk,type:uuid" json:"id"`
	ClanID        uuid.UUID    `bun:"clan_id,notnull,type:uuid" json:"clan_id"`
	UserID        uuid.UUID    `bun:"user_id,notnull,type:uuid" json:"user_id"`
	InGameName    string       `bun:"in_game_name,notnull" json:"in_game_name"`
	Class         string       `bun:"class,notnull" json:"class"`
	ClassGroup    string       `bun:"class_group,notnull" json:"class_group"`
	Role          Role         `bun:"role,notnull" json:"role"`
	Level         int          `bun:"level,notnull,default:1" json:"level"`
	CombatPower   int64        `bun:"combat_power,notnull,default:0" json:"combat_power"`
	JoinDate      time.Time    `bun:"join_date,notnull,default:current_timestamp" json:"join_date"`
	PartyID       *uuid.UUID   `bun:"party_id,type:uuid" json:"party_id"`
	Status        MemberStatus `bun:"status,notnull,default:'active'" json:"status"`
}

// Party is a Constant Party: a fixed-capacity sub-group with one leader.
type Party struct {
	bun.BaseModel     `bun:"table:parties,alias:p"`
	ID                uuid.UUID         `bun:"id,pk,type:uuid" json:"id"`
	ClanID            uuid.UUID         `bun:"clan_id,notnull,type:uuid" json:"clan_id"`
	Name              string            `bun:"name,notnull" json:"name"`
	LeaderID          uuid.UUID         `bun:"leader_id,notnull,type:uuid" json:"leader_id"` // Member id
	RecruitingClasses RecruitingClasses `bun:"recruiting_classes,notnull,default:''" json:"recruiting_classes"`
	CreatedAt         time.Time         `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// Event is a scheduled clan activity that members attend.
type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`
	ID            uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	ClanID        uuid.UUID `bun:"clan_id,notnull,type:uuid" json:"clan_id"`
	Name          string    `bun:"name,notnull" json:"name"`
	Type          string    `bun:"type,notnull" json:"type"`
	Date          time.Time `bun:"date,notnull" json:"date"`
	Mandatory     bool      `bun:"mandatory,notnull,default:false" json:"mandatory"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// Attendance records that a member attended an event. At most one row exists per pair.
type Attendance struct {
	bun.BaseModel `bun:"table:event_attendees,alias:ea"`
	EventID       uuid.UUID `bun:"event_id,pk,type:uuid" json:"event_id"`
	MemberID      uuid.UUID `bun:"member_id,pk,type:uuid" json:"member_id"`
}
