//go:build !windows

package scm

// NativeBinding reports every call as unsupported outside Windows.
type NativeBinding struct{}

// NewNativeBinding returns the binding for the local platform.
func NewNativeBinding() *NativeBinding {
	return &NativeBinding{}
}

func unsupported(op string) *PlatformError {
	return NewPlatformError(op, ErrorCallNotImplemented, op+" is only available on Windows")
}

func (NativeBinding) OpenManager(machine, database string, access uint32) (*ManagerHandle, error) {
	return NewManagerHandle(0, nil), unsupported("OpenSCManager")
}

func (NativeBinding) CreateServiceEntry(m *ManagerHandle, p CreateParams) (*ServiceHandle, error) {
	if m.IsInvalid() {
		return invalidService("CreateService")
	}
	return NewServiceHandle(0, nil), unsupported("CreateService")
}

func (NativeBinding) OpenServiceEntry(m *ManagerHandle, name string, access uint32) (*ServiceHandle, error) {
	if m.IsInvalid() {
		return invalidService("OpenService")
	}
	return NewServiceHandle(0, nil), unsupported("OpenService")
}

func (NativeBinding) SetServiceDescription(s *ServiceHandle, description string) error {
	return unsupported("ChangeServiceConfig2")
}

func (NativeBinding) DeleteServiceEntry(s *ServiceHandle) error {
	return unsupported("DeleteService")
}
