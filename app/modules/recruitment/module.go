package recruitment

import (
	"context"
	"net/http"

	"github.com/Black-And-White-Club/clan-roster/app/database"
	clandb "github.com/Black-And-White-Club/clan-roster/app/modules/clan/infrastructure/repositories"
	recruitmentservice "github.com/Black-And-White-Club/clan-roster/app/modules/recruitment/application"
	recruitmenthandlers "github.com/Black-And-White-Club/clan-roster/app/modules/recruitment/infrastructure/handlers"
	recruitmentdb "github.com/Black-And-White-Club/clan-roster/app/modules/recruitment/infrastructure/repositories"
	recruitmentrouter "github.com/Black-And-White-Club/clan-roster/app/modules/recruitment/infrastructure/router"
	"github.com/Black-And-White-Club/clan-roster/app/observability"
	"github.com/go-chi/chi/v5"
)

// Module represents the recruitment module.
type Module struct {
	Service  recruitmentservice.Service
	Handlers recruitmenthandlers.Handlers
}

// NewRecruitmentModule creates the recruitment service and mounts its routes.
// dispatcher may be nil, which turns notifications off.
func NewRecruitmentModule(
	ctx context.Context,
	obs observability.Observability,
	repo recruitmentdb.Repository,
	clans clandb.Repository,
	tx database.Transactor,
	dispatcher recruitmentservice.Dispatcher,
	httpRouter chi.Router,
	submitLimit func(http.Handler) http.Handler,
) *Module {
	logger := obs.Logger
	logger.InfoContext(ctx, "recruitment.NewRecruitmentModule initializing")

	service := recruitmentservice.NewRecruitmentService(repo, clans, tx, dispatcher, logger, obs.Metrics, obs.Tracer)
	handlers := recruitmenthandlers.NewRecruitmentHandlers(service, logger, obs.Tracer)

	if httpRouter != nil {
		recruitmentrouter.Register(httpRouter, handlers, submitLimit)
	}

	return &Module{
		Service:  service,
		Handlers: handlers,
	}
}
