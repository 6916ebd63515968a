// Package worker hosts the dummy service: a background loop that logs a
// heartbeat until it is stopped, either by the service control manager or
// by a console interrupt.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/warpdl/scctl/pkg/logger"
)

// Sentinel errors for the worker lifecycle.
var (
	// ErrAlreadyRunning is returned when Start is called on a running worker.
	ErrAlreadyRunning = errors.New("worker is already running")

	// ErrNotRunning is returned when Shutdown is called on a stopped worker.
	ErrNotRunning = errors.New("worker is not running")
)

const (
	// DefaultServiceName is the name the sample service is installed under.
	DefaultServiceName = "DummyService"

	// DefaultInterval is the delay between two heartbeats.
	DefaultInterval = time.Second
)

// Runner is the lifecycle driven by the service handler.
type Runner interface {
	// Start runs until ctx is canceled or Shutdown is called.
	Start(ctx context.Context) error

	// Shutdown stops a running Start.
	Shutdown() error

	// IsRunning reports whether Start is in progress.
	IsRunning() bool
}

// Worker logs "worker running at: <time>" every Interval.
type Worker struct {
	interval time.Duration
	log      logger.Logger
	now      func() time.Time

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a Worker. A non-positive interval means DefaultInterval.
func New(interval time.Duration, l logger.Logger) *Worker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Worker{
		interval: interval,
		log:      logger.OrNop(l),
		now:      time.Now,
	}
}

// Start logs a heartbeat immediately and then on every tick. It blocks
// until ctx is canceled or Shutdown is called and returns the context error.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return ErrAlreadyRunning
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	w.running = true
	done := w.done
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.cancel()
		close(done)
		w.mu.Unlock()
	}()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		w.beat()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *Worker) beat() {
	if w.log.Enabled(logger.LevelInfo) {
		w.log.Info("worker running at: %s", w.now().Format(time.RFC3339))
	}
}

// Shutdown cancels the loop and waits for Start to return.
func (w *Worker) Shutdown() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return ErrNotRunning
	}
	cancel, done := w.cancel, w.done
	w.mu.Unlock()

	cancel()
	<-done
	return nil
}

// IsRunning reports whether the loop is active.
func (w *Worker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

var _ Runner = (*Worker)(nil)
