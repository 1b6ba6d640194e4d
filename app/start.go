package app

import (
	"context"
	"fmt"

	"github.com/Black-And-White-Club/clan-roster/app/server"
)

// Run starts notification delivery and serves HTTP until ctx is cancelled.
// Queued notifications are drained before it returns.
func (a *App) Run(ctx context.Context) error {
	if err := a.Dispatcher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start notification dispatcher: %w", err)
	}

	serveErr := server.Serve(ctx, a.Config.HTTP.Address, a.Router, a.Config.HTTP.ShutdownTimeout, a.Obs.Logger)

	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.Config.HTTP.ShutdownTimeout)
	defer cancel()
	if err := a.Close(closeCtx); err != nil {
		a.Obs.Logger.Error("Shutdown incomplete", "error", err)
	}
	return serveErr
}
