package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/urfave/cli"
	"github.com/warpdl/scctl/cmd/common"
	"github.com/warpdl/scctl/internal/scm"
	"github.com/warpdl/scctl/internal/service"
	"github.com/warpdl/scctl/internal/worker"
)

// DummyBinary is the sample service executable expected next to scctl.
const DummyBinary = "dummysvc.exe"

var demoFlags = []cli.Flag{
	cli.DurationFlag{
		Name:  "wait",
		Value: DemoWait,
		Usage: "how long the service stays installed",
	},
}

func demo(ctx *cli.Context) error {
	if !isAdminFunc() {
		return ErrRequiresAdmin
	}
	exe, err := executablePath()
	if err != nil {
		return fmt.Errorf("failed to locate scctl executable: %w", err)
	}
	name := worker.DefaultServiceName
	ctrl := service.NewController(newBinding(), appFs, appLogger)

	appLogger.Info("Deleting any existing '%s' (fails if it is not installed).", name)
	ctrl.DeleteService(name)

	appLogger.Info("Creating '%s'.", name)
	created := ctrl.CreateService(service.Descriptor{
		Name:        name,
		BinaryPath:  filepath.Join(filepath.Dir(exe), DummyBinary),
		Description: "Sample dummy service",
		StartType:   "auto",
		Account:     scm.LocalSystem,
	})
	if !created {
		appLogger.Error("Creating the service failed, aborting.")
		return ErrOperationFailed
	}

	common.Wait(ctx.App.Writer, "Waiting", ctx.Duration("wait"))

	appLogger.Info("Deleting '%s'.", name)
	if !ctrl.DeleteService(name) {
		appLogger.Error("Deleting the service failed.")
		return ErrOperationFailed
	}
	appLogger.Info("Service deleted.")
	return nil
}
