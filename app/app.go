// Package app assembles the store, modules, notification dispatch and HTTP
// router into a runnable service.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/clan-roster/app/database"
	"github.com/Black-And-White-Club/clan-roster/app/modules/clan"
	clandb "github.com/Black-And-White-Club/clan-roster/app/modules/clan/infrastructure/repositories"
	"github.com/Black-And-White-Club/clan-roster/app/modules/recruitment"
	"github.com/Black-And-White-Club/clan-roster/app/modules/recruitment/infrastructure/notifier"
	recruitmentdb "github.com/Black-And-White-Club/clan-roster/app/modules/recruitment/infrastructure/repositories"
	"github.com/Black-And-White-Club/clan-roster/app/modules/roster"
	rosterdb "github.com/Black-And-White-Club/clan-roster/app/modules/roster/infrastructure/repositories"
	"github.com/Black-And-White-Club/clan-roster/app/observability"
	"github.com/Black-And-White-Club/clan-roster/app/server"
	"github.com/Black-And-White-Club/clan-roster/app/store/memory"
	"github.com/Black-And-White-Club/clan-roster/config"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// App holds the wired service.
type App struct {
	Config     *config.Config
	Obs        observability.Observability
	Router     chi.Router
	Dispatcher notifier.Dispatcher

	Clan        *clan.Module
	Roster      *roster.Module
	Recruitment *recruitment.Module

	db *bun.DB
}

// stores is the persistence the modules are built on.
type stores struct {
	clans        clandb.Repository
	roster       rosterdb.Repository
	applications recruitmentdb.Repository
	tx           database.Transactor
	db           *bun.DB
}

func openStores(ctx context.Context, cfg *config.Config) (stores, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		s := memory.New()
		return stores{clans: s, roster: s, applications: s, tx: s}, nil
	}

	db, err := database.Open(ctx, cfg.Postgres.DSN)
	if err != nil {
		return stores{}, err
	}
	return stores{
		clans:        clandb.NewRepository(db),
		roster:       rosterdb.NewRepository(db),
		applications: recruitmentdb.NewRepository(db),
		tx:           database.NewTransactor(db),
		db:           db,
	}, nil
}

func newDispatcher(ctx context.Context, cfg *config.Config, obs observability.Observability) (notifier.Dispatcher, error) {
	deliverer := notifier.NewDeliverer(
		notifier.NewGateway(cfg.Notifications.Timeout),
		cfg.Notifications.Footer,
		obs.Logger,
		obs.Metrics,
	)
	if cfg.Notifications.Mode == config.NotificationModeRiver {
		return notifier.NewRiverDispatcher(ctx, cfg.Postgres.DSN, deliverer, obs.Logger)
	}
	return notifier.NewPubSubDispatcher(deliverer, obs.Logger), nil
}

// NewApp builds every component from cfg. Nothing is started.
func NewApp(ctx context.Context, cfg *config.Config, obs observability.Observability) (*App, error) {
	st, err := openStores(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	dispatcher, err := newDispatcher(ctx, cfg, obs)
	if err != nil {
		if st.db != nil {
			st.db.Close()
		}
		return nil, fmt.Errorf("failed to create notification dispatcher: %w", err)
	}

	router := server.NewRouter(cfg.HTTP, obs.Registry, obs.Logger)
	limiter := server.NewIPRateLimiter(cfg.HTTP.ApplyRateLimit, cfg.HTTP.ApplyBurst)

	a := &App{
		Config:     cfg,
		Obs:        obs,
		Router:     router,
		Dispatcher: dispatcher,
		db:         st.db,
	}
	a.Clan = clan.NewClanModule(ctx, obs, st.clans, st.roster, st.tx, router)
	a.Roster = roster.NewRosterModule(ctx, obs, st.roster, st.clans, st.tx, router)
	a.Recruitment = recruitment.NewRecruitmentModule(ctx, obs, st.applications, st.clans, st.tx, dispatcher, router, limiter.Middleware)

	obs.Logger.InfoContext(ctx, "Application initialized",
		slog.String("store", cfg.Store.Driver),
		slog.String("notifications", cfg.Notifications.Mode),
	)
	return a, nil
}

// Close releases the dispatcher and the database.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if err := a.Dispatcher.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("dispatcher: %w", err))
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	return errors.Join(errs...)
}
