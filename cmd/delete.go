package cmd

import (
	"strings"

	"github.com/urfave/cli"
	"github.com/warpdl/scctl/cmd/common"
	"github.com/warpdl/scctl/internal/service"
)

var deleteFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "name, n",
		Usage: "service name (alternative to the positional argument)",
	},
	cli.BoolFlag{
		Name:   "event-source",
		Usage:  "also remove the event log source named after the service",
		EnvVar: "SCCTL_EVENT_SOURCE",
	},
}

func deleteCmd(ctx *cli.Context) error {
	name := ctx.String("name")
	if name == "" {
		name = ctx.Args().First()
	}
	if strings.TrimSpace(name) == "" {
		return common.PrintErrWithCmdHelp(ctx, ErrNoServiceName)
	} else if name == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}

	if !service.NewController(newBinding(), appFs, appLogger).DeleteService(name) {
		return ErrOperationFailed
	}
	if ctx.Bool("event-source") {
		if err := removeEventSource(name); err != nil {
			appLogger.Warning("Could not remove event source '%s': %v", name, err)
		}
	}
	return nil
}
