package notifier

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Black-And-White-Club/clan-roster/app/observability"
)

// Notification metric stages and outcomes.
const (
	StageDispatch = "dispatch"
	StageDeliver  = "deliver"

	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

// ErrIncomplete is returned for a notification without a webhook or application.
var ErrIncomplete = errors.New("notification has no webhook url or application")

// Deliverer renders a notification and sends it once. It is the consumer side
// shared by every dispatch mode.
type Deliverer struct {
	sender  Sender
	footer  string
	logger  *slog.Logger
	metrics observability.NotificationMetrics
}

func NewDeliverer(sender Sender, footer string, logger *slog.Logger, metrics observability.NotificationMetrics) *Deliverer {
	return &Deliverer{sender: sender, footer: footer, logger: logger, metrics: metrics}
}

// Deliver sends n and records the outcome. The error is for the caller's
// bookkeeping only; nothing retries it.
func (d *Deliverer) Deliver(ctx context.Context, n Notification) error {
	if n.WebhookURL == "" || n.Application == nil {
		d.metrics.RecordNotification(ctx, StageDeliver, OutcomeSkipped)
		return ErrIncomplete
	}

	if err := d.sender.Send(ctx, n.WebhookURL, BuildPayload(n, d.footer)); err != nil {
		d.metrics.RecordNotification(ctx, StageDeliver, OutcomeFailure)
		d.logger.WarnContext(ctx, "Recruitment notification failed",
			slog.String("application_id", n.Application.ID.String()),
			slog.String("clan_id", n.Application.ClanID.String()),
			slog.String("error", err.Error()),
		)
		return err
	}

	d.metrics.RecordNotification(ctx, StageDeliver, OutcomeSuccess)
	d.logger.InfoContext(ctx, "Recruitment notification delivered",
		slog.String("application_id", n.Application.ID.String()),
	)
	return nil
}
