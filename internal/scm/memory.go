package scm

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Entry is a service registered in a MemoryBinding.
type Entry struct {
	Params          CreateParams
	Description     string
	MarkedForDelete bool
	OpenHandles     int
}

type memHandle struct {
	service string // lower-cased key; empty for manager handles
	access  uint32
}

// MemoryBinding is an in-memory service control manager.
//
// It records every call, tracks open handles and follows the platform's
// deletion rule: a deleted entry stays registered, marked for deletion,
// until its last handle is closed. It is safe for concurrent use.
type MemoryBinding struct {
	// DenyAccess makes OpenManager fail with ErrorAccessDenied for any
	// access beyond ManagerConnect, as for an unprivileged process.
	DenyAccess bool

	mu       sync.Mutex
	entries  map[string]*Entry
	handles  map[uintptr]memHandle
	next     uintptr
	calls    []string
	failures map[string]uint32
}

// NewMemoryBinding returns an empty registry.
func NewMemoryBinding() *MemoryBinding {
	return &MemoryBinding{
		entries:  make(map[string]*Entry),
		handles:  make(map[uintptr]memHandle),
		next:     0x100,
		failures: make(map[string]uint32),
	}
}

// FailOn makes every later call to op fail with code.
// op is the native call name, e.g. "CreateService".
func (b *MemoryBinding) FailOn(op string, code uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[op] = code
}

// ClearFailures removes all injected failures.
func (b *MemoryBinding) ClearFailures() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = make(map[string]uint32)
}

// Calls returns the native call names in the order they were made,
// including CloseServiceHandle.
func (b *MemoryBinding) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

// OpenHandles is the number of handles not yet closed.
func (b *MemoryBinding) OpenHandles() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handles)
}

// Entry returns a copy of the named entry.
func (b *MemoryBinding) Entry(name string) (Entry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[key(name)]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Services lists registered service names in sorted order.
func (b *MemoryBinding) Services() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, 0, len(b.entries))
	for _, e := range b.entries {
		names = append(names, e.Params.Name)
	}
	sort.Strings(names)
	return names
}

// Install registers an entry directly, bypassing the call log.
func (b *MemoryBinding) Install(p CreateParams) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[key(p.Name)] = &Entry{Params: p}
}

func key(name string) string {
	return strings.ToLower(name)
}

// begin records op and returns the injected failure for it, if any.
// b.mu must be held.
func (b *MemoryBinding) begin(op string) *PlatformError {
	b.calls = append(b.calls, op)
	if code, ok := b.failures[op]; ok {
		return NewPlatformError(op, code, "")
	}
	return nil
}

func (b *MemoryBinding) allocate(h memHandle) uintptr {
	raw := b.next
	b.next += 4
	b.handles[raw] = h
	if h.service != "" {
		b.entries[h.service].OpenHandles++
	}
	return raw
}

func (b *MemoryBinding) closeHandle(raw uintptr) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, "CloseServiceHandle")
	h, ok := b.handles[raw]
	if !ok {
		return NewPlatformError("CloseServiceHandle", ErrorInvalidHandle, "")
	}
	delete(b.handles, raw)
	if h.service == "" {
		return nil
	}
	if e, ok := b.entries[h.service]; ok {
		e.OpenHandles--
		if e.MarkedForDelete && e.OpenHandles == 0 {
			delete(b.entries, h.service)
		}
	}
	return nil
}

// lookup returns the handle record for a valid service handle. b.mu must be held.
func (b *MemoryBinding) lookup(s *ServiceHandle) (memHandle, bool) {
	if s.IsInvalid() {
		return memHandle{}, false
	}
	h, ok := b.handles[s.value()]
	return h, ok && h.service != ""
}

func (b *MemoryBinding) OpenManager(machine, database string, access uint32) (*ManagerHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	const op = "OpenSCManager"
	if pe := b.begin(op); pe != nil {
		return NewManagerHandle(0, nil), pe
	}
	if machine != "" {
		return NewManagerHandle(0, nil), NewPlatformError(op, ErrorCallNotImplemented, "remote machines are not supported")
	}
	if b.DenyAccess && access&^ManagerConnect != 0 {
		return NewManagerHandle(0, nil), NewPlatformError(op, ErrorAccessDenied, "")
	}
	raw := b.allocate(memHandle{access: access | ManagerConnect})
	return NewManagerHandle(raw, b.closeHandle), nil
}

func (b *MemoryBinding) CreateServiceEntry(m *ManagerHandle, p CreateParams) (*ServiceHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	const op = "CreateService"
	msg := fmt.Sprintf("CreateService failed for '%s'", p.Name)
	if m.IsInvalid() {
		return invalidService(op)
	}
	if pe := b.begin(op); pe != nil {
		pe.Message = msg
		return NewServiceHandle(0, nil), pe
	}
	mh, ok := b.handles[m.value()]
	if !ok || mh.service != "" {
		return NewServiceHandle(0, nil), NewPlatformError(op, ErrorInvalidHandle, msg)
	}
	if mh.access&ManagerCreateService == 0 {
		return NewServiceHandle(0, nil), NewPlatformError(op, ErrorAccessDenied, msg)
	}
	if p.Name == "" || strings.ContainsAny(p.Name, `/\`) || len(p.Name) > 256 {
		return NewServiceHandle(0, nil), NewPlatformError(op, ErrorInvalidName, msg)
	}
	if p.BinaryPath == "" {
		return NewServiceHandle(0, nil), NewPlatformError(op, ErrorInvalidParameter, msg)
	}
	switch p.StartType {
	case StartAuto, StartDemand, StartDisabled:
	default:
		return NewServiceHandle(0, nil), NewPlatformError(op, ErrorInvalidParameter, msg)
	}
	k := key(p.Name)
	if e, ok := b.entries[k]; ok {
		if e.MarkedForDelete {
			return NewServiceHandle(0, nil), NewPlatformError(op, ErrorServiceMarkedForDelete, msg)
		}
		return NewServiceHandle(0, nil), NewPlatformError(op, ErrorServiceExists, msg)
	}
	display := key(p.DisplayName)
	for _, e := range b.entries {
		if display != "" && (key(e.Params.DisplayName) == display || key(e.Params.Name) == display) {
			return NewServiceHandle(0, nil), NewPlatformError(op, ErrorDuplicateServiceName, msg)
		}
	}
	b.entries[k] = &Entry{Params: p}
	raw := b.allocate(memHandle{service: k, access: p.Access})
	return NewServiceHandle(raw, b.closeHandle), nil
}

func (b *MemoryBinding) OpenServiceEntry(m *ManagerHandle, name string, access uint32) (*ServiceHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	const op = "OpenService"
	msg := fmt.Sprintf("OpenService failed for '%s'", name)
	if m.IsInvalid() {
		return invalidService(op)
	}
	if pe := b.begin(op); pe != nil {
		pe.Message = msg
		return NewServiceHandle(0, nil), pe
	}
	if _, ok := b.handles[m.value()]; !ok {
		return NewServiceHandle(0, nil), NewPlatformError(op, ErrorInvalidHandle, msg)
	}
	k := key(name)
	if _, ok := b.entries[k]; !ok {
		return NewServiceHandle(0, nil), NewPlatformError(op, ErrorServiceDoesNotExist, msg)
	}
	raw := b.allocate(memHandle{service: k, access: access})
	return NewServiceHandle(raw, b.closeHandle), nil
}

func (b *MemoryBinding) SetServiceDescription(s *ServiceHandle, description string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	const op = "ChangeServiceConfig2"
	if s.IsInvalid() {
		return NewPlatformError(op, ErrorInvalidHandle, "")
	}
	if pe := b.begin(op); pe != nil {
		return pe
	}
	h, ok := b.lookup(s)
	if !ok {
		return NewPlatformError(op, ErrorInvalidHandle, "")
	}
	if h.access&ServiceChangeConfig == 0 {
		return NewPlatformError(op, ErrorAccessDenied, "")
	}
	e, ok := b.entries[h.service]
	if !ok {
		return NewPlatformError(op, ErrorServiceDoesNotExist, "")
	}
	if e.MarkedForDelete {
		return NewPlatformError(op, ErrorServiceMarkedForDelete, "")
	}
	e.Description = description
	return nil
}

func (b *MemoryBinding) DeleteServiceEntry(s *ServiceHandle) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	const op = "DeleteService"
	if s.IsInvalid() {
		return NewPlatformError(op, ErrorInvalidHandle, "")
	}
	if pe := b.begin(op); pe != nil {
		return pe
	}
	h, ok := b.lookup(s)
	if !ok {
		return NewPlatformError(op, ErrorInvalidHandle, "")
	}
	if h.access&ServiceDelete == 0 {
		return NewPlatformError(op, ErrorAccessDenied, "")
	}
	e, ok := b.entries[h.service]
	if !ok {
		return NewPlatformError(op, ErrorServiceDoesNotExist, "")
	}
	if e.MarkedForDelete {
		return NewPlatformError(op, ErrorServiceMarkedForDelete, "")
	}
	e.MarkedForDelete = true
	return nil
}
