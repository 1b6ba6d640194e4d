package recruitmentservice

import (
	"context"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/clan-roster/app/database"
	clandb "github.com/Black-And-White-Club/clan-roster/app/modules/clan/infrastructure/repositories"
	"github.com/Black-And-White-Club/clan-roster/app/modules/recruitment/infrastructure/notifier"
	recruitmentdb "github.com/Black-And-White-Club/clan-roster/app/modules/recruitment/infrastructure/repositories"
	"github.com/Black-And-White-Club/clan-roster/app/observability"
	"go.opentelemetry.io/otel/trace"
)

// Dispatcher is the part of notifier.Dispatcher the service uses.
type Dispatcher interface {
	Dispatch(ctx context.Context, n notifier.Notification) error
}

// RecruitmentService implements the Service interface.
type RecruitmentService struct {
	repo       recruitmentdb.Repository
	clans      clandb.Repository
	tx         database.Transactor
	dispatcher Dispatcher
	logger     *slog.Logger
	metrics    observability.NotificationMetrics
	telemetry  observability.Telemetry
	now        func() time.Time
}

// NewRecruitmentService creates a new RecruitmentService. A nil dispatcher
// disables notifications.
func NewRecruitmentService(
	repo recruitmentdb.Repository,
	clans clandb.Repository,
	tx database.Transactor,
	dispatcher Dispatcher,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
) *RecruitmentService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NewNoop()
	}
	return &RecruitmentService{
		repo:       repo,
		clans:      clans,
		tx:         tx,
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
		telemetry: observability.Telemetry{
			Service: "RecruitmentService",
			Logger:  logger,
			Metrics: metrics,
			Tracer:  tracer,
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}
