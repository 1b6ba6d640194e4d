package clan

import (
	"context"

	"github.com/Black-And-White-Club/clan-roster/app/database"
	clanservice "github.com/Black-And-White-Club/clan-roster/app/modules/clan/application"
	clanhandlers "github.com/Black-And-White-Club/clan-roster/app/modules/clan/infrastructure/handlers"
	clandb "github.com/Black-And-White-Club/clan-roster/app/modules/clan/infrastructure/repositories"
	clanrouter "github.com/Black-And-White-Club/clan-roster/app/modules/clan/infrastructure/router"
	rosterdb "github.com/Black-And-White-Club/clan-roster/app/modules/roster/infrastructure/repositories"
	"github.com/Black-And-White-Club/clan-roster/app/observability"
	"github.com/go-chi/chi/v5"
)

// Module represents the clan module.
type Module struct {
	Service  clanservice.Service
	Handlers clanhandlers.Handlers
}

// NewClanModule creates the clan service and mounts its routes on httpRouter.
func NewClanModule(
	ctx context.Context,
	obs observability.Observability,
	repo clandb.Repository,
	members rosterdb.Repository,
	tx database.Transactor,
	httpRouter chi.Router,
) *Module {
	logger := obs.Logger
	logger.InfoContext(ctx, "clan.NewClanModule initializing")

	service := clanservice.NewClanService(repo, members, tx, logger, obs.Metrics, obs.Tracer)
	handlers := clanhandlers.NewClanHandlers(service, logger, obs.Tracer)

	if httpRouter != nil {
		clanrouter.Register(httpRouter, handlers)
	}

	return &Module{
		Service:  service,
		Handlers: handlers,
	}
}
