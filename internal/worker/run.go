package worker

import (
	"context"
	"errors"
	"os/signal"

	"github.com/warpdl/scctl/pkg/logger"
)

// RunConsole runs r in the foreground until ctx is canceled or an
// interrupt signal arrives. Stopping that way is not an error.
func RunConsole(ctx context.Context, r Runner, l logger.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, shutdownSignals...)
	defer stop()

	l = logger.OrNop(l)
	l.Info("Running in console mode, press Ctrl+C to stop.")
	err := r.Start(ctx)
	if err != nil && errors.Is(err, ctx.Err()) {
		l.Info("Worker stopped.")
		return nil
	}
	return err
}
