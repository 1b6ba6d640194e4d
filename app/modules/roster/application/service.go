package rosterservice

import (
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/clan-roster/app/database"
	clandb "github.com/Black-And-White-Club/clan-roster/app/modules/clan/infrastructure/repositories"
	"github.com/Black-And-White-Club/clan-roster/app/modules/roster/eventtime"
	rosterdb "github.com/Black-And-White-Club/clan-roster/app/modules/roster/infrastructure/repositories"
	"github.com/Black-And-White-Club/clan-roster/app/observability"
	"go.opentelemetry.io/otel/trace"
)

// RosterService implements the Service interface.
type RosterService struct {
	repo      rosterdb.Repository
	users     clandb.Repository
	tx        database.Transactor
	dates     *eventtime.Parser
	logger    *slog.Logger
	telemetry observability.Telemetry
	now       func() time.Time
}

// NewRosterService creates a new RosterService.
func NewRosterService(
	repo rosterdb.Repository,
	users clandb.Repository,
	tx database.Transactor,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
) *RosterService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RosterService{
		repo:   repo,
		users:  users,
		tx:     tx,
		dates:  eventtime.NewParser(),
		logger: logger,
		telemetry: observability.Telemetry{
			Service: "RosterService",
			Logger:  logger,
			Metrics: metrics,
			Tracer:  tracer,
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}
