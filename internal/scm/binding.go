package scm

// CreateParams are the arguments of CreateServiceEntry.
// Empty strings are passed to the platform as NULL.
type CreateParams struct {
	Name           string
	DisplayName    string
	Access         uint32
	ServiceType    uint32
	StartType      uint32
	ErrorControl   uint32
	BinaryPath     string
	LoadOrderGroup string
	// Dependencies is forwarded verbatim; its format is platform defined.
	Dependencies string
	StartName    string
	Password     string
}

// Binding is the set of native service control calls.
//
// Every call returns a *PlatformError on failure. Handle-returning calls
// return a non-nil handle in every case; it is invalid when err is set.
// A call given an invalid handle fails with ErrorInvalidHandle without
// reaching the platform.
type Binding interface {
	// OpenManager connects to the service control manager. Empty machine
	// targets the local host; empty database targets the active database.
	OpenManager(machine, database string, access uint32) (*ManagerHandle, error)

	// CreateServiceEntry registers a new service.
	CreateServiceEntry(m *ManagerHandle, p CreateParams) (*ServiceHandle, error)

	// OpenServiceEntry opens an installed service by name.
	OpenServiceEntry(m *ManagerHandle, name string, access uint32) (*ServiceHandle, error)

	// SetServiceDescription replaces the description of the service.
	SetServiceDescription(s *ServiceHandle, description string) error

	// DeleteServiceEntry marks the service for deletion. The platform removes
	// it once the last handle to it is closed.
	DeleteServiceEntry(s *ServiceHandle) error
}

var (
	_ Binding = (*NativeBinding)(nil)
	_ Binding = (*MemoryBinding)(nil)
)

func invalidService(op string) (*ServiceHandle, error) {
	return NewServiceHandle(0, nil), NewPlatformError(op, ErrorInvalidHandle, "")
}
