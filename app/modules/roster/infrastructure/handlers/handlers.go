package rosterhandlers

import (
	"log/slog"

	rosterservice "github.com/Black-And-White-Club/clan-roster/app/modules/roster/application"
	"go.opentelemetry.io/otel/trace"
)

// RosterHandlers implements the Handlers interface.
type RosterHandlers struct {
	service rosterservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewRosterHandlers creates a new RosterHandlers instance.
func NewRosterHandlers(
	service rosterservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &RosterHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}
