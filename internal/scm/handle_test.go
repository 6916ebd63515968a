package scm

import (
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
	"time"
)

func countingCloser(n *int, err error) Closer {
	return func(raw uintptr) error {
		*n++
		return err
	}
}

func TestManagerHandle_IsInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  uintptr
		want bool
	}{
		{"zero", 0, true},
		{"minus one", ^uintptr(0), true},
		{"valid", 0x40, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewManagerHandle(tt.raw, nil)
			defer h.Close()
			if got := h.IsInvalid(); got != tt.want {
				t.Errorf("IsInvalid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestServiceHandle_IsInvalid(t *testing.T) {
	if !NewServiceHandle(0, nil).IsInvalid() {
		t.Error("raw 0 should be invalid")
	}
	if !NewServiceHandle(^uintptr(0), nil).IsInvalid() {
		t.Error("raw -1 should be invalid")
	}
	h := NewServiceHandle(0x44, nil)
	if h.IsInvalid() {
		t.Error("raw 0x44 should be valid")
	}
	_ = h.Close()
}

func TestNilHandles(t *testing.T) {
	var m *ManagerHandle
	var s *ServiceHandle
	if !m.IsInvalid() || !s.IsInvalid() {
		t.Error("nil handles must be invalid")
	}
	if err := m.Close(); err != nil {
		t.Errorf("closing nil manager handle: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("closing nil service handle: %v", err)
	}
}

func TestHandle_CloseRunsCloserOnce(t *testing.T) {
	var n int
	h := NewServiceHandle(0x10, countingCloser(&n, nil))

	for i := 0; i < 3; i++ {
		if err := h.Close(); err != nil {
			t.Fatalf("Close #%d: %v", i+1, err)
		}
	}
	if n != 1 {
		t.Errorf("closer ran %d times, want 1", n)
	}
	if !h.IsInvalid() {
		t.Error("closed handle must report invalid")
	}
}

func TestHandle_CloseReportsCloserErrorOnce(t *testing.T) {
	want := errors.New("close failed")
	var n int
	h := NewManagerHandle(0x10, countingCloser(&n, want))

	if err := h.Close(); !errors.Is(err, want) {
		t.Fatalf("Close() = %v, want %v", err, want)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("second Close() = %v, want nil", err)
	}
}

func TestHandle_InvalidNeverCallsCloser(t *testing.T) {
	var n int
	_ = NewManagerHandle(0, countingCloser(&n, nil)).Close()
	_ = NewServiceHandle(^uintptr(0), countingCloser(&n, nil)).Close()
	if n != 0 {
		t.Errorf("closer ran %d times for invalid handles", n)
	}
}

func TestHandle_ReleasedOnPanic(t *testing.T) {
	var n int
	func() {
		defer func() { _ = recover() }()
		h := NewServiceHandle(0x20, countingCloser(&n, nil))
		defer h.Close()
		panic("boom")
	}()
	if n != 1 {
		t.Errorf("closer ran %d times after panic, want 1", n)
	}
}

func atomicCloser(n *atomic.Int32) Closer {
	return func(raw uintptr) error {
		n.Add(1)
		return nil
	}
}

// collectUntil runs the garbage collector until cond holds or a second passes.
func collectUntil(cond func() bool) bool {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		runtime.GC()
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestHandle_CleanupReleasesUnreachable(t *testing.T) {
	tests := []struct {
		name string
		drop func(c Closer)
	}{
		{"manager", func(c Closer) { _ = NewManagerHandle(0x30, c) }},
		{"service", func(c Closer) { _ = NewServiceHandle(0x34, c) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n atomic.Int32
			tt.drop(atomicCloser(&n))

			if !collectUntil(func() bool { return n.Load() == 1 }) {
				t.Fatalf("closer ran %d times for an unreachable handle, want 1", n.Load())
			}
		})
	}
}

func TestHandle_CloseCancelsCleanup(t *testing.T) {
	var n atomic.Int32
	func() {
		h := NewServiceHandle(0x38, atomicCloser(&n))
		if err := h.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}()

	collectUntil(func() bool { return n.Load() > 1 })
	if got := n.Load(); got != 1 {
		t.Errorf("closer ran %d times after Close and GC, want 1", got)
	}
}
