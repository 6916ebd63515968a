package cmd

import (
	"os"

	"github.com/spf13/afero"
	"github.com/warpdl/scctl/internal/scm"
	"github.com/warpdl/scctl/pkg/logger"
	"github.com/zalando/go-keyring"
)

// Dependency injection variables for testing.
// These let tests run the commands without touching the service control
// manager, the OS keyring or the real filesystem.
var (
	isAdminFunc = isAdmin
	newBinding  = func() scm.Binding { return scm.NewNativeBinding() }
	appFs       = afero.NewOsFs()
	keyringGet  = keyring.Get

	executablePath      = os.Executable
	registerEventSource = logger.RegisterEventSource
	removeEventSource   = logger.RemoveEventSource
)
