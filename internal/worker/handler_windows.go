//go:build windows

package worker

import (
	"context"
	"errors"
	"time"

	"github.com/warpdl/scctl/pkg/logger"
	"golang.org/x/sys/windows/svc"
)

const acceptedCommands = svc.AcceptStop | svc.AcceptShutdown

// startGrace is how long Execute waits for an immediate Start failure
// before reporting Running.
const startGrace = 50 * time.Millisecond

// Handler implements svc.Handler around a Runner.
type Handler struct {
	name   string
	runner Runner
	log    logger.Logger
}

// NewHandler creates a service handler. A nil logger discards output.
func NewHandler(name string, runner Runner, l logger.Logger) *Handler {
	return &Handler{
		name:   name,
		runner: runner,
		log:    logger.OrNop(l),
	}
}

// Execute implements svc.Handler. Start arguments are ignored.
//
//	StartPending -> Running -> StopPending -> Stopped
func (h *Handler) Execute(_ []string, requests <-chan svc.ChangeRequest, status chan<- svc.Status) (bool, uint32) {
	status <- svc.Status{State: svc.StartPending}
	h.log.Info("Service '%s' starting.", h.name)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startErr := make(chan error, 1)
	go func() {
		startErr <- h.runner.Start(ctx)
	}()

	select {
	case err := <-startErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			h.log.ErrorFields(err, logger.Fields{"service": h.name}, "Service '%s' failed to start", h.name)
			status <- svc.Status{State: svc.Stopped}
			return false, 1
		}
	case <-time.After(startGrace):
	}

	status <- svc.Status{State: svc.Running, Accepts: acceptedCommands}
	h.log.Info("Service '%s' running.", h.name)

	for req := range requests {
		switch req.Cmd {
		case svc.Interrogate:
			status <- req.CurrentStatus
		case svc.Stop, svc.Shutdown:
			return h.stop(status, cancel)
		default:
			h.log.Warning("Unexpected control request #%d", req.Cmd)
		}
	}
	return false, 0
}

func (h *Handler) stop(status chan<- svc.Status, cancel context.CancelFunc) (bool, uint32) {
	h.log.Info("Service '%s' stopping.", h.name)
	status <- svc.Status{State: svc.StopPending}

	err := h.runner.Shutdown()
	cancel()
	if err != nil && !errors.Is(err, ErrNotRunning) {
		h.log.ErrorFields(err, logger.Fields{"service": h.name}, "Service '%s' shutdown failed", h.name)
		status <- svc.Status{State: svc.Stopped}
		return false, 1
	}

	h.log.Info("Service '%s' stopped.", h.name)
	status <- svc.Status{State: svc.Stopped}
	return false, 0
}

// AcceptedCommands returns the control requests the handler accepts.
func (h *Handler) AcceptedCommands() svc.Accepted {
	return acceptedCommands
}

var _ svc.Handler = (*Handler)(nil)
