package cmd

import (
	"fmt"
	"strings"

	"github.com/urfave/cli"
	"github.com/warpdl/scctl/cmd/common"
	"github.com/warpdl/scctl/internal/scm"
	"github.com/warpdl/scctl/internal/service"
)

var createFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "name, n",
		Usage: "service name, also used as display name",
	},
	cli.StringFlag{
		Name:  "path, p",
		Usage: "absolute path of the service executable",
	},
	cli.StringFlag{
		Name:  "description",
		Usage: "description shown in the services console",
	},
	cli.StringFlag{
		Name:  "start-type, s",
		Usage: "auto, demand or disabled (default: auto)",
	},
	cli.StringFlag{
		Name:  "account",
		Usage: "account the service runs as (default: LocalSystem)",
	},
	cli.StringFlag{
		Name:  "dependencies",
		Usage: "services this one depends on, passed through unchanged",
	},
	cli.StringFlag{
		Name:  "file, f",
		Usage: "load the service definition from a YAML file",
	},
	cli.StringFlag{
		Name:  "password-keyring",
		Usage: "read the account password from the OS keyring under this service name",
	},
	cli.BoolFlag{
		Name:   "dry-run",
		Usage:  "validate and run against an in-memory service manager",
		EnvVar: "SCCTL_DRY_RUN",
	},
	cli.BoolFlag{
		Name:   "event-source",
		Usage:  "register the service name as an event log source",
		EnvVar: "SCCTL_EVENT_SOURCE",
	},
}

// descriptorFromContext merges the descriptor file, if any, with the flags.
// Flags given explicitly win over file values.
func descriptorFromContext(ctx *cli.Context) (service.Descriptor, error) {
	var d service.Descriptor
	if file := ctx.String("file"); file != "" {
		var err error
		d, err = service.LoadDescriptor(appFs, file)
		if err != nil {
			return d, err
		}
	}
	overrides := []struct {
		flag string
		dst  *string
	}{
		{"name", &d.Name},
		{"path", &d.BinaryPath},
		{"description", &d.Description},
		{"start-type", &d.StartType},
		{"account", &d.Account},
		{"dependencies", &d.Dependencies},
	}
	for _, o := range overrides {
		if ctx.IsSet(o.flag) {
			*o.dst = ctx.String(o.flag)
		}
	}
	if d.Name == "" {
		d.Name = ctx.Args().First()
	}
	return d, nil
}

func create(ctx *cli.Context) error {
	d, err := descriptorFromContext(ctx)
	if err != nil {
		return err
	}
	if strings.TrimSpace(d.Name) == "" {
		return common.PrintErrWithCmdHelp(ctx, ErrNoServiceName)
	}
	if src := ctx.String("password-keyring"); src != "" {
		account := d.WithDefaults().Account
		d.Password, err = keyringGet(src, account)
		if err != nil {
			return fmt.Errorf("no password for %s in keyring %q: %w", account, src, err)
		}
	}

	binding := newBinding()
	dryRun := ctx.Bool("dry-run")
	if dryRun {
		appLogger.Info("Dry run: the service control manager is not modified.")
		binding = scm.NewMemoryBinding()
	}
	if !service.NewController(binding, appFs, appLogger).CreateService(d) {
		return ErrOperationFailed
	}
	if ctx.Bool("event-source") && !dryRun {
		if err := registerEventSource(d.Name); err != nil {
			appLogger.Warning("Could not register event source '%s': %v", d.Name, err)
		} else {
			appLogger.Info("Event source '%s' registered.", d.Name)
		}
	}
	return nil
}
