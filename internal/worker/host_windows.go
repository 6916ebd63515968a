//go:build windows

package worker

import (
	"context"

	"github.com/warpdl/scctl/pkg/logger"
	"golang.org/x/sys/windows/svc"
)

// Run hosts r under the service control manager when the process was
// started as a service, and in the console otherwise.
func Run(ctx context.Context, name string, r Runner, l logger.Logger) error {
	isService, err := svc.IsWindowsService()
	if err != nil {
		return err
	}
	if !isService {
		return RunConsole(ctx, r, l)
	}
	// svc.Run blocks until the service stops
	return svc.Run(name, NewHandler(name, r, l))
}

// IsService reports whether the process runs under the service control manager.
func IsService() bool {
	ok, err := svc.IsWindowsService()
	return err == nil && ok
}
