// Command dummysvc is a sample service that logs a heartbeat until it is
// stopped. It runs under the service control manager when started as a
// service and in the console otherwise.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli"
	"github.com/warpdl/scctl/internal/worker"
	"github.com/warpdl/scctl/pkg/logger"
)

var version string

func main() {
	app := cli.App{
		Name:    "dummysvc",
		Usage:   "sample service for scctl",
		Version: version,
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "name",
				Value: worker.DefaultServiceName,
				Usage: "service name, also the event log source",
			},
			cli.DurationFlag{
				Name:  "interval",
				Value: worker.DefaultInterval,
				Usage: "delay between heartbeats",
			},
			cli.StringFlag{
				Name:   "log-level",
				Value:  "info",
				EnvVar: "SCCTL_LOG_LEVEL",
			},
		},
		Action:   run,
		HideHelp: true,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Printf("dummysvc: %s\n", err.Error())
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	name := ctx.String("name")
	var log logger.Logger = logger.NewLogrusLogger(os.Stderr, logger.ParseLevel(ctx.String("log-level")))
	if worker.IsService() {
		// The source may not be registered; console output still works.
		if el, err := logger.NewEventLogger(name); err == nil {
			log = logger.NewMultiLogger(log, el)
		}
	}
	defer log.Close()

	interval := ctx.Duration("interval")
	if interval <= 0 {
		interval = time.Second
	}
	return worker.Run(context.Background(), name, worker.New(interval, log), log)
}
