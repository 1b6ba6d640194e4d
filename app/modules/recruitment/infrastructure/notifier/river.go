package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
)

// QueueName is the River queue notification jobs run on.
const QueueName = "notifications"

// NotificationArgs is the River job for one notification.
type NotificationArgs struct {
	Notification Notification `json:"notification"`
}

func (NotificationArgs) Kind() string { return "recruitment_notification" }

// InsertOpts allows exactly one attempt.
func (NotificationArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{Queue: QueueName, MaxAttempts: 1}
}

// NotificationWorker delivers a job and cancels it on failure.
type NotificationWorker struct {
	river.WorkerDefaults[NotificationArgs]
	deliverer *Deliverer
}

func NewNotificationWorker(deliverer *Deliverer) *NotificationWorker {
	return &NotificationWorker{deliverer: deliverer}
}

func (w *NotificationWorker) Work(ctx context.Context, job *river.Job[NotificationArgs]) error {
	if err := w.deliverer.Deliver(ctx, job.Args.Notification); err != nil {
		return river.JobCancel(err)
	}
	return nil
}

// RiverDispatcher inserts a durable job per notification. River owns the pgx
// pool it runs on.
type RiverDispatcher struct {
	pool   *pgxpool.Pool
	client *river.Client[pgx.Tx]
	logger *slog.Logger
}

func NewRiverDispatcher(ctx context.Context, dsn string, deliverer *Deliverer, logger *slog.Logger) (*RiverDispatcher, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewNotificationWorker(deliverer))

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			QueueName: {MaxWorkers: 10},
		},
		Workers: workers,
		Logger:  logger,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	return &RiverDispatcher{pool: pool, client: client, logger: logger}, nil
}

func (d *RiverDispatcher) Start(ctx context.Context) error {
	if err := d.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	return nil
}

func (d *RiverDispatcher) Dispatch(ctx context.Context, n Notification) error {
	res, err := d.client.Insert(ctx, NotificationArgs{Notification: n}, nil)
	if err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}
	d.logger.DebugContext(ctx, "Notification job enqueued", slog.Int64("job_id", res.Job.ID))
	return nil
}

// Close stops the client, letting running jobs finish, then closes the pool.
func (d *RiverDispatcher) Close(ctx context.Context) error {
	defer d.pool.Close()
	if err := d.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	return nil
}
