//go:build !windows

package scm

import "testing"

func TestNativeBinding_Unsupported(t *testing.T) {
	b := NewNativeBinding()
	m, err := b.OpenManager("", "", ManagerCreateService)
	if CodeOf(err) != ErrorCallNotImplemented {
		t.Fatalf("OpenManager = %v, want ERROR_CALL_NOT_IMPLEMENTED", err)
	}
	if !m.IsInvalid() {
		t.Error("expected invalid manager handle")
	}
	if _, err := b.OpenServiceEntry(m, "x", ServiceAllAccess); CodeOf(err) != ErrorInvalidHandle {
		t.Errorf("OpenServiceEntry = %v, want ERROR_INVALID_HANDLE", err)
	}
}
