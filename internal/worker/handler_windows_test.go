//go:build windows

package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/warpdl/scctl/pkg/logger"
	"golang.org/x/sys/windows/svc"
)

// MockRunner is a Runner that blocks in Start until its context ends.
type MockRunner struct {
	mu             sync.Mutex
	startCalled    bool
	shutdownCalled bool
	startErr       error
	shutdownErr    error
}

func (m *MockRunner) Start(ctx context.Context) error {
	m.mu.Lock()
	m.startCalled = true
	err := m.startErr
	m.mu.Unlock()
	if err != nil {
		return err
	}
	<-ctx.Done()
	return ctx.Err()
}

func (m *MockRunner) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shutdownCalled = true
	return m.shutdownErr
}

func (m *MockRunner) IsRunning() bool { return false }

func (m *MockRunner) called() (start, shutdown bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startCalled, m.shutdownCalled
}

type result struct {
	svcSpecific bool
	exitCode    uint32
}

// execute runs h.Execute, sends reqs and collects states until Stopped.
func execute(t *testing.T, h *Handler, reqs ...svc.ChangeRequest) ([]svc.State, result) {
	t.Helper()
	changes := make(chan svc.Status, 16)
	requests := make(chan svc.ChangeRequest, len(reqs))
	done := make(chan result, 1)

	go func() {
		ssec, code := h.Execute(nil, requests, changes)
		done <- result{ssec, code}
	}()
	go func() {
		time.Sleep(2 * startGrace)
		for _, r := range reqs {
			requests <- r
		}
	}()

	var states []svc.State
	timeout := time.After(2 * time.Second)
	for {
		select {
		case s := <-changes:
			states = append(states, s.State)
			if s.State == svc.Stopped {
				return states, <-done
			}
		case <-timeout:
			t.Fatalf("timeout, states so far %v", states)
		}
	}
}

func TestHandler_StateTransitions(t *testing.T) {
	mock := &MockRunner{}
	states, res := execute(t, NewHandler("DummyService", mock, nil), svc.ChangeRequest{Cmd: svc.Stop})

	want := []svc.State{svc.StartPending, svc.Running, svc.StopPending, svc.Stopped}
	if len(states) != len(want) {
		t.Fatalf("states = %v, want %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("state[%d] = %v, want %v", i, states[i], want[i])
		}
	}
	if res.exitCode != 0 {
		t.Errorf("exit code = %d", res.exitCode)
	}
	start, shutdown := mock.called()
	if !start || !shutdown {
		t.Errorf("start=%v shutdown=%v, want both called", start, shutdown)
	}
}

func TestHandler_Interrogate(t *testing.T) {
	running := svc.Status{State: svc.Running, Accepts: acceptedCommands}
	states, _ := execute(t, NewHandler("DummyService", &MockRunner{}, nil),
		svc.ChangeRequest{Cmd: svc.Interrogate, CurrentStatus: running},
		svc.ChangeRequest{Cmd: svc.Shutdown},
	)
	want := []svc.State{svc.StartPending, svc.Running, svc.Running, svc.StopPending, svc.Stopped}
	if len(states) != len(want) {
		t.Fatalf("states = %v, want %v", states, want)
	}
}

func TestHandler_StartError(t *testing.T) {
	log := logger.NewMockLogger()
	mock := &MockRunner{startErr: errors.New("start failed")}
	states, res := execute(t, NewHandler("DummyService", mock, log))

	if res.exitCode == 0 {
		t.Error("expected a non-zero exit code")
	}
	if len(states) != 2 || states[1] != svc.Stopped {
		t.Errorf("states = %v", states)
	}
	if len(log.Entries) != 1 || log.Entries[0].Fields["service"] != "DummyService" {
		t.Errorf("entries = %+v", log.Entries)
	}
}

func TestHandler_ShutdownError(t *testing.T) {
	mock := &MockRunner{shutdownErr: errors.New("shutdown failed")}
	_, res := execute(t, NewHandler("DummyService", mock, nil), svc.ChangeRequest{Cmd: svc.Stop})
	if res.exitCode == 0 {
		t.Error("expected a non-zero exit code")
	}
}

func TestHandler_ShutdownNotRunningIsClean(t *testing.T) {
	mock := &MockRunner{shutdownErr: ErrNotRunning}
	_, res := execute(t, NewHandler("DummyService", mock, nil), svc.ChangeRequest{Cmd: svc.Stop})
	if res.exitCode != 0 {
		t.Errorf("exit code = %d, want 0", res.exitCode)
	}
}

func TestHandler_WithWorker(t *testing.T) {
	w := New(10*time.Millisecond, nil)
	_, res := execute(t, NewHandler("DummyService", w, nil), svc.ChangeRequest{Cmd: svc.Stop})
	if res.exitCode != 0 {
		t.Errorf("exit code = %d", res.exitCode)
	}
	if w.IsRunning() {
		t.Error("worker still running after stop")
	}
}

func TestHandler_AcceptedCommands(t *testing.T) {
	h := NewHandler("DummyService", &MockRunner{}, nil)
	if got := h.AcceptedCommands(); got != svc.AcceptStop|svc.AcceptShutdown {
		t.Errorf("AcceptedCommands() = %v", got)
	}
}
