package scm

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// invalidRaw is the all-bits-set sentinel (-1).
const invalidRaw = ^uintptr(0)

// Closer releases a raw handle value.
type Closer func(raw uintptr) error

func validRaw(raw uintptr) bool {
	return raw != 0 && raw != invalidRaw
}

// handleState owns a raw value. It must not point back at the
// ManagerHandle/ServiceHandle wrapping it so that cleanups can run.
type handleState struct {
	raw    uintptr
	closer Closer
	once   sync.Once
	closed atomic.Bool
}

func (s *handleState) invalid() bool {
	return !validRaw(s.raw) || s.closed.Load()
}

// release closes the raw value once; later calls return nil.
func (s *handleState) release() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		if validRaw(s.raw) && s.closer != nil {
			err = s.closer(s.raw)
		}
	})
	return err
}

func releaseState(s *handleState) {
	_ = s.release()
}

// ManagerHandle is an open connection to the service control manager.
// The zero value and nil are invalid. Release it with Close.
type ManagerHandle struct {
	state   *handleState
	cleanup runtime.Cleanup
	tracked bool
}

// NewManagerHandle wraps raw. Only bindings call this.
// closer runs at most once, on Close or when the handle becomes unreachable.
func NewManagerHandle(raw uintptr, closer Closer) *ManagerHandle {
	h := &ManagerHandle{state: &handleState{raw: raw, closer: closer}}
	if validRaw(raw) {
		h.cleanup = runtime.AddCleanup(h, releaseState, h.state)
		h.tracked = true
	}
	return h
}

// IsInvalid reports whether h holds no usable connection.
func (h *ManagerHandle) IsInvalid() bool {
	return h == nil || h.state == nil || h.state.invalid()
}

// Close releases the connection. Service handles opened through it stay valid.
func (h *ManagerHandle) Close() error {
	if h == nil || h.state == nil {
		return nil
	}
	if h.tracked {
		h.cleanup.Stop()
		h.tracked = false
	}
	return h.state.release()
}

func (h *ManagerHandle) value() uintptr {
	return h.state.raw
}

// ServiceHandle is an open reference to one service entry.
// The zero value and nil are invalid. Release it with Close.
type ServiceHandle struct {
	state   *handleState
	cleanup runtime.Cleanup
	tracked bool
}

// NewServiceHandle wraps raw. Only bindings call this.
func NewServiceHandle(raw uintptr, closer Closer) *ServiceHandle {
	h := &ServiceHandle{state: &handleState{raw: raw, closer: closer}}
	if validRaw(raw) {
		h.cleanup = runtime.AddCleanup(h, releaseState, h.state)
		h.tracked = true
	}
	return h
}

// IsInvalid reports whether h holds no usable service reference.
func (h *ServiceHandle) IsInvalid() bool {
	return h == nil || h.state == nil || h.state.invalid()
}

// Close releases the service reference.
func (h *ServiceHandle) Close() error {
	if h == nil || h.state == nil {
		return nil
	}
	if h.tracked {
		h.cleanup.Stop()
		h.tracked = false
	}
	return h.state.release()
}

func (h *ServiceHandle) value() uintptr {
	return h.state.raw
}
