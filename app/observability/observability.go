package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Black-And-White-Club/clan-roster/app/shared/domainerrors"
	"github.com/Black-And-White-Club/clan-roster/config"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Observability bundles what every module needs to log, trace and count.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Metrics  Metrics
	Registry *prometheus.Registry
}

// Init builds the logger, tracer and prometheus registry from config.
func Init(cfg config.ObservabilityConfig) (Observability, error) {
	logger := NewLogger(os.Stdout, cfg)

	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	metrics, err := NewPrometheusMetrics(registry, strings.ReplaceAll(cfg.ServiceName, "-", "_"))
	if err != nil {
		return Observability{}, fmt.Errorf("failed to register metrics: %w", err)
	}

	return Observability{
		Logger:   logger,
		Tracer:   otel.Tracer(cfg.ServiceName),
		Metrics:  metrics,
		Registry: registry,
	}, nil
}

// NewLogger returns a JSON logger outside development and a text logger inside it.
func NewLogger(w io.Writer, cfg config.ObservabilityConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	var handler slog.Handler
	if cfg.Environment == "" || cfg.Environment == "development" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Telemetry is the per-service handle used by Run.
type Telemetry struct {
	Service string
	Logger  *slog.Logger
	Metrics OperationMetrics
	Tracer  trace.Tracer
}

// Run wraps a service operation with tracing, metrics, and panic recovery.
// Domain errors (validation, not found, conflict) pass through untouched and
// are logged as warnings; anything else is wrapped as domainerrors.ErrStore.
func Run[T any](
	ctx context.Context,
	t Telemetry,
	operation string,
	identifier string,
	op func(ctx context.Context) (T, error),
) (result T, err error) {
	logger := t.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var span trace.Span
	if t.Tracer != nil {
		ctx, span = t.Tracer.Start(ctx, t.Service+"."+operation, trace.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if t.Metrics != nil {
		t.Metrics.RecordOperationAttempt(ctx, operation, t.Service)
	}

	startTime := time.Now()
	defer func() {
		if t.Metrics != nil {
			t.Metrics.RecordOperationDuration(ctx, operation, t.Service, time.Since(startTime))
		}
	}()

	logger.DebugContext(ctx, "Operation triggered", slog.String("operation", operation), slog.String("identifier", identifier))

	defer func() {
		if r := recover(); r != nil {
			var zero T
			result = zero
			err = fmt.Errorf("%s: %w: panic: %v", operation, domainerrors.ErrStore, r)
			logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("operation", operation),
				slog.String("identifier", identifier),
				slog.Any("error", err),
			)
			if t.Metrics != nil {
				t.Metrics.RecordOperationFailure(ctx, operation, t.Service)
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, "panic")
		}
	}()

	result, err = op(ctx)

	if err != nil {
		if domainerrors.IsDomain(err) {
			logger.WarnContext(ctx, "Operation returned failure result",
				slog.String("operation", operation),
				slog.String("identifier", identifier),
				slog.String("reason", err.Error()),
			)
			if t.Metrics != nil {
				t.Metrics.RecordOperationSuccess(ctx, operation, t.Service)
			}
			return result, err
		}

		wrappedErr := fmt.Errorf("%s: %w: %w", operation, domainerrors.ErrStore, err)
		logger.ErrorContext(ctx, "Operation failed with error",
			slog.String("operation", operation),
			slog.String("identifier", identifier),
			slog.Any("error", wrappedErr),
		)
		if t.Metrics != nil {
			t.Metrics.RecordOperationFailure(ctx, operation, t.Service)
		}
		span.RecordError(wrappedErr)
		span.SetStatus(codes.Error, "operation failed")
		return result, wrappedErr
	}

	logger.InfoContext(ctx, "Operation completed successfully",
		slog.String("operation", operation),
		slog.String("identifier", identifier),
	)
	if t.Metrics != nil {
		t.Metrics.RecordOperationSuccess(ctx, operation, t.Service)
	}
	return result, nil
}
