package recruitmentservice

import (
	recruitmentdb "github.com/Black-And-White-Club/clan-roster/app/modules/recruitment/infrastructure/repositories"
)

// SubmitApplicationRequest is the public application form. Level and
// CombatPower are pointers so a missing field is told apart from zero.
type SubmitApplicationRequest struct {
	Type        recruitmentdb.ApplicationType `json:"type"`
	Name        string                        `json:"name"`
	Class       string                        `json:"class"`
	Level       *int                          `json:"level"`
	CombatPower *int64                        `json:"combat_power"`
	Discord     string                        `json:"discord"`
	Playtime    string                        `json:"playtime"`
	Notes       string                        `json:"notes,omitempty"`
}

// UpdateStatusRequest moves an application to a decision.
type UpdateStatusRequest struct {
	Status recruitmentdb.ApplicationStatus `json:"status"`

	// Override allows flipping a decided application to the other decision.
	Override bool `json:"override,omitempty"`
}
