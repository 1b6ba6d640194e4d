// Package notifier builds recruitment notifications and delivers them to a
// clan's Discord webhook, either in-process over a Watermill channel or as a
// River job.
package notifier

import (
	"fmt"
	"strconv"
	"time"

	recruitmentdb "github.com/Black-And-White-Club/clan-roster/app/modules/recruitment/infrastructure/repositories"
)

// embedColor is Discord blurple.
const embedColor = 0x5865F2

// NoNotes is shown when the applicant left no notes.
const NoNotes = "No additional notes provided."

// Notification is one new application to announce.
type Notification struct {
	WebhookURL  string                     `json:"webhook_url"`
	ClanName    string                     `json:"clan_name"`
	Application *recruitmentdb.Application `json:"application"`
}

// Payload is the Discord webhook body.
type Payload struct {
	Embeds []Embed `json:"embeds"`
}

type Embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Color       int          `json:"color"`
	Fields      []EmbedField `json:"fields"`
	Footer      EmbedFooter  `json:"footer"`
	Timestamp   string       `json:"timestamp"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type EmbedFooter struct {
	Text string `json:"text"`
}

// BuildPayload renders the application as a single embed.
func BuildPayload(n Notification, footer string) Payload {
	app := n.Application

	notes := app.Notes
	if notes == "" {
		notes = NoNotes
	}

	return Payload{Embeds: []Embed{{
		Title:       "🛡️ New Recruitment Application: " + app.Name,
		Description: fmt.Sprintf("A new **%s** has applied to join **%s**.", app.Type.Label(), n.ClanName),
		Color:       embedColor,
		Fields: []EmbedField{
			{Name: "Class / Comp", Value: app.Class, Inline: true},
			{Name: "Level", Value: strconv.Itoa(app.Level), Inline: true},
			{Name: "Combat Power", Value: strconv.FormatInt(app.CombatPower, 10), Inline: true},
			{Name: "Discord Contact", Value: app.Discord, Inline: true},
			{Name: "Playtime", Value: app.Playtime, Inline: true},
			{Name: "Notes", Value: notes, Inline: false},
		},
		Footer:    EmbedFooter{Text: footer},
		Timestamp: app.CreatedAt.UTC().Format(time.RFC3339),
	}}}
}
