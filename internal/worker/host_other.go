//go:build !windows

package worker

import (
	"context"

	"github.com/warpdl/scctl/pkg/logger"
)

// Run hosts r in the console. There is no service control manager here.
func Run(ctx context.Context, name string, r Runner, l logger.Logger) error {
	return RunConsole(ctx, r, l)
}

// IsService always reports false.
func IsService() bool {
	return false
}
