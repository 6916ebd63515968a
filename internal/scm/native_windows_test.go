//go:build windows

package scm

import (
	"fmt"
	"os"
	"runtime"
	"testing"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

// skipIfNotCI skips the test if not running in a CI environment.
// SCM tests require elevated privileges and are only run in CI.
func skipIfNotCI(t *testing.T) {
	t.Helper()
	if os.Getenv("CI") == "" && os.Getenv("GITHUB_ACTIONS") == "" {
		t.Skip("skipping SCM test: not in CI environment")
	}
}

func openNative(t *testing.T, access uint32) *ManagerHandle {
	t.Helper()
	m, err := NewNativeBinding().OpenManager("", "", access)
	if err != nil {
		if IsAccessDenied(err) {
			t.Skip("skipping: no SCM access rights")
		}
		t.Fatalf("OpenManager: %v", err)
	}
	return m
}

func TestNativeBinding_OpenService_NotFound(t *testing.T) {
	skipIfNotCI(t)

	m := openNative(t, ManagerConnect)
	defer m.Close()

	s, err := NewNativeBinding().OpenServiceEntry(m, "nonexistent_scctl_test_service_12345", ServiceAllAccess)
	if !IsNotExist(err) {
		t.Fatalf("expected ERROR_SERVICE_DOES_NOT_EXIST, got %v", err)
	}
	if !s.IsInvalid() {
		t.Error("failed open must return an invalid handle")
	}
}

// TestNativeBinding_OpenService_Existing opens EventLog, a service present
// on every Windows installation.
func TestNativeBinding_OpenService_Existing(t *testing.T) {
	skipIfNotCI(t)

	m := openNative(t, ManagerConnect)
	defer m.Close()

	s, err := NewNativeBinding().OpenServiceEntry(m, "EventLog", 0x0004)
	if err != nil {
		if IsAccessDenied(err) {
			t.Skip("skipping: no service access rights")
		}
		t.Fatalf("OpenServiceEntry(EventLog): %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestNativeBinding_RejectsInvalidHandles(t *testing.T) {
	b := NewNativeBinding()
	if _, err := b.OpenServiceEntry(NewManagerHandle(0, nil), "EventLog", ServiceAllAccess); CodeOf(err) != ErrorInvalidHandle {
		t.Errorf("OpenServiceEntry = %v", err)
	}
	if err := b.DeleteServiceEntry(nil); CodeOf(err) != ErrorInvalidHandle {
		t.Errorf("DeleteServiceEntry = %v", err)
	}
}

func TestDependencyBlock_DoubleTerminated(t *testing.T) {
	p, err := dependencyBlock("Tcpip")
	if err != nil {
		t.Fatalf("dependencyBlock: %v", err)
	}
	if p == nil {
		t.Fatal("expected a block")
	}
	if p, _ := dependencyBlock(""); p != nil {
		t.Error("empty dependencies must map to NULL")
	}
}

func TestNativeBinding_CreateExisting(t *testing.T) {
	skipIfNotCI(t)

	m := openNative(t, ManagerCreateService)
	defer m.Close()

	exe, err := os.Executable()
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewNativeBinding().CreateServiceEntry(m, CreateParams{
		Name:         "EventLog",
		DisplayName:  "EventLog",
		Access:       ServiceAllAccess,
		ServiceType:  ServiceWin32OwnProcess,
		StartType:    StartDemand,
		ErrorControl: ErrorControlNormal,
		BinaryPath:   exe,
	})
	defer s.Close()
	if IsAccessDenied(err) {
		t.Skip("skipping: no rights to create services")
	}
	if !IsExist(err) {
		t.Fatalf("expected ERROR_SERVICE_EXISTS, got %v", err)
	}
	if !s.IsInvalid() {
		t.Error("failed create must return an invalid handle")
	}
}

// queryDescription reads the description back through QueryServiceConfig2.
func queryDescription(t *testing.T, s *ServiceHandle) string {
	t.Helper()
	buf := make([]byte, 4096)
	var needed uint32
	err := windows.QueryServiceConfig2(windows.Handle(s.value()), windows.SERVICE_CONFIG_DESCRIPTION, &buf[0], uint32(len(buf)), &needed)
	runtime.KeepAlive(s)
	if err != nil {
		t.Fatalf("QueryServiceConfig2: %v", err)
	}
	d := (*windows.SERVICE_DESCRIPTION)(unsafe.Pointer(&buf[0]))
	return windows.UTF16PtrToString(d.Description)
}

func TestNativeBinding_CreateDescribeDelete(t *testing.T) {
	skipIfNotCI(t)

	b := NewNativeBinding()
	m := openNative(t, ManagerCreateService)
	defer m.Close()

	exe, err := os.Executable()
	if err != nil {
		t.Fatal(err)
	}
	name := fmt.Sprintf("scctl_test_%d", time.Now().UnixNano())
	s, err := b.CreateServiceEntry(m, CreateParams{
		Name:         name,
		DisplayName:  name,
		Access:       ServiceAllAccess,
		ServiceType:  ServiceWin32OwnProcess,
		StartType:    StartDemand,
		ErrorControl: ErrorControlNormal,
		BinaryPath:   exe,
		Dependencies: "RpcSs",
		StartName:    LocalSystem,
	})
	if IsAccessDenied(err) {
		t.Skip("skipping: no rights to create services")
	}
	if err != nil {
		t.Fatalf("CreateServiceEntry: %v", err)
	}
	deleted := false
	defer func() {
		if !deleted {
			_ = b.DeleteServiceEntry(s)
		}
		_ = s.Close()
	}()

	const description = "scctl test service"
	if err := b.SetServiceDescription(s, description); err != nil {
		t.Fatalf("SetServiceDescription: %v", err)
	}
	if got := queryDescription(t, s); got != description {
		t.Errorf("description = %q, want %q", got, description)
	}

	if err := b.DeleteServiceEntry(s); err != nil {
		t.Fatalf("DeleteServiceEntry: %v", err)
	}
	deleted = true
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	again, err := b.OpenServiceEntry(m, name, ServiceAllAccess)
	defer again.Close()
	if err == nil {
		t.Fatal("service still opens after delete")
	}
	if c := CodeOf(err); c != ErrorServiceDoesNotExist && c != ErrorServiceMarkedForDelete {
		t.Errorf("OpenServiceEntry after delete = %v", err)
	}
}

// TestNativeBinding_CallWithDroppedManager opens services through manager
// handles that are never used again, with collections forced in between.
func TestNativeBinding_CallWithDroppedManager(t *testing.T) {
	skipIfNotCI(t)

	b := NewNativeBinding()
	for i := 0; i < 50; i++ {
		s, err := b.OpenServiceEntry(openNative(t, ManagerConnect), "EventLog", 0x0004)
		runtime.GC()
		if err != nil {
			if IsAccessDenied(err) {
				t.Skip("skipping: no service access rights")
			}
			t.Fatalf("iteration %d: %v", i, err)
		}
		_ = s.Close()
	}
}
