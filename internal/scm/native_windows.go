//go:build windows

package scm

import (
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"
)

// NativeBinding calls the Windows service control manager.
type NativeBinding struct{}

// NewNativeBinding returns the binding for the local platform.
func NewNativeBinding() *NativeBinding {
	return &NativeBinding{}
}

func closeNative(raw uintptr) error {
	return windows.CloseServiceHandle(windows.Handle(raw))
}

// optionalPtr converts s to a UTF-16 pointer, or nil when s is empty.
func optionalPtr(s string) (*uint16, error) {
	if s == "" {
		return nil, nil
	}
	return windows.UTF16PtrFromString(s)
}

func optionalPtrs(values ...string) ([]*uint16, error) {
	ptrs := make([]*uint16, len(values))
	for i, v := range values {
		p, err := optionalPtr(v)
		if err != nil {
			return nil, err
		}
		ptrs[i] = p
	}
	return ptrs, nil
}

// dependencyBlock encodes s as a double-NUL-terminated UTF-16 block.
func dependencyBlock(s string) (*uint16, error) {
	if s == "" {
		return nil, nil
	}
	b, err := windows.UTF16FromString(s)
	if err != nil {
		return nil, err
	}
	b = append(b, 0)
	return &b[0], nil
}

func badArgument(op, message string) *PlatformError {
	return NewPlatformError(op, ErrorInvalidParameter, message)
}

func (NativeBinding) OpenManager(machine, database string, access uint32) (*ManagerHandle, error) {
	const op = "OpenSCManager"
	machinePtr, err := optionalPtr(machine)
	if err != nil {
		return NewManagerHandle(0, nil), badArgument(op, "machine name")
	}
	databasePtr, err := optionalPtr(database)
	if err != nil {
		return NewManagerHandle(0, nil), badArgument(op, "database name")
	}
	h, err := windows.OpenSCManager(machinePtr, databasePtr, access)
	if err != nil {
		return NewManagerHandle(0, nil), errorFrom(op, "", err)
	}
	return NewManagerHandle(uintptr(h), closeNative), nil
}

func (NativeBinding) CreateServiceEntry(m *ManagerHandle, p CreateParams) (*ServiceHandle, error) {
	const op = "CreateService"
	if m.IsInvalid() {
		return invalidService(op)
	}
	msg := fmt.Sprintf("CreateService failed for '%s'", p.Name)

	ptrs, err := optionalPtrs(p.Name, p.DisplayName, p.BinaryPath, p.LoadOrderGroup, p.StartName, p.Password)
	if err != nil {
		return NewServiceHandle(0, nil), badArgument(op, msg)
	}
	deps, err := dependencyBlock(p.Dependencies)
	if err != nil {
		return NewServiceHandle(0, nil), badArgument(op, msg)
	}

	h, err := windows.CreateService(
		windows.Handle(m.value()),
		ptrs[0],
		ptrs[1],
		p.Access,
		p.ServiceType,
		p.StartType,
		p.ErrorControl,
		ptrs[2],
		ptrs[3],
		nil,
		deps,
		ptrs[4],
		ptrs[5],
	)
	runtime.KeepAlive(m)
	if err != nil {
		return NewServiceHandle(0, nil), errorFrom(op, msg, err)
	}
	return NewServiceHandle(uintptr(h), closeNative), nil
}

func (NativeBinding) OpenServiceEntry(m *ManagerHandle, name string, access uint32) (*ServiceHandle, error) {
	const op = "OpenService"
	if m.IsInvalid() {
		return invalidService(op)
	}
	msg := fmt.Sprintf("OpenService failed for '%s'", name)
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return NewServiceHandle(0, nil), badArgument(op, msg)
	}
	h, err := windows.OpenService(windows.Handle(m.value()), namePtr, access)
	runtime.KeepAlive(m)
	if err != nil {
		return NewServiceHandle(0, nil), errorFrom(op, msg, err)
	}
	return NewServiceHandle(uintptr(h), closeNative), nil
}

func (NativeBinding) SetServiceDescription(s *ServiceHandle, description string) error {
	const op = "ChangeServiceConfig2"
	if s.IsInvalid() {
		return NewPlatformError(op, ErrorInvalidHandle, "")
	}
	text, err := windows.UTF16PtrFromString(description)
	if err != nil {
		return badArgument(op, "description")
	}
	d := windows.SERVICE_DESCRIPTION{Description: text}
	err = windows.ChangeServiceConfig2(windows.Handle(s.value()), ConfigDescription, (*byte)(unsafe.Pointer(&d)))
	// The cleanup must not close the raw handle while the call uses it.
	runtime.KeepAlive(s)
	if err != nil {
		return errorFrom(op, "", err)
	}
	return nil
}

func (NativeBinding) DeleteServiceEntry(s *ServiceHandle) error {
	const op = "DeleteService"
	if s.IsInvalid() {
		return NewPlatformError(op, ErrorInvalidHandle, "")
	}
	err := windows.DeleteService(windows.Handle(s.value()))
	runtime.KeepAlive(s)
	if err != nil {
		return errorFrom(op, "", err)
	}
	return nil
}
