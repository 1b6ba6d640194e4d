package roster

import (
	"context"

	"github.com/Black-And-White-Club/clan-roster/app/database"
	clandb "github.com/Black-And-White-Club/clan-roster/app/modules/clan/infrastructure/repositories"
	rosterservice "github.com/Black-And-White-Club/clan-roster/app/modules/roster/application"
	rosterhandlers "github.com/Black-And-White-Club/clan-roster/app/modules/roster/infrastructure/handlers"
	rosterdb "github.com/Black-And-White-Club/clan-roster/app/modules/roster/infrastructure/repositories"
	rosterrouter "github.com/Black-And-White-Club/clan-roster/app/modules/roster/infrastructure/router"
	"github.com/Black-And-White-Club/clan-roster/app/observability"
	"github.com/go-chi/chi/v5"
)

// Module represents the roster module.
type Module struct {
	Service  rosterservice.Service
	Handlers rosterhandlers.Handlers
}

// NewRosterModule creates the roster service and mounts its routes on httpRouter.
func NewRosterModule(
	ctx context.Context,
	obs observability.Observability,
	repo rosterdb.Repository,
	users clandb.Repository,
	tx database.Transactor,
	httpRouter chi.Router,
) *Module {
	logger := obs.Logger
	logger.InfoContext(ctx, "roster.NewRosterModule initializing")

	service := rosterservice.NewRosterService(repo, users, tx, logger, obs.Metrics, obs.Tracer)
	handlers := rosterhandlers.NewRosterHandlers(service, logger, obs.Tracer)

	if httpRouter != nil {
		rosterrouter.Register(httpRouter, handlers)
	}

	return &Module{
		Service:  service,
		Handlers: handlers,
	}
}
