package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
	"github.com/warpdl/scctl/pkg/logger"
)

var globalFlags = []cli.Flag{
	cli.StringFlag{
		Name:   "log-level",
		Value:  "info",
		Usage:  "minimum level logged: debug, info, warning or error",
		EnvVar: "SCCTL_LOG_LEVEL",
	},
	cli.StringFlag{
		Name:   "log-file",
		Usage:  "also append log entries to this file",
		EnvVar: "SCCTL_LOG_FILE",
	},
}

var (
	// logOutput receives console log entries; replaced in tests.
	logOutput io.Writer = os.Stderr

	// appLogger is set up by setupLogger before any command runs.
	appLogger logger.Logger = logger.NewNopLogger()
)

// newLogger builds the console logger and, when file is set, a file logger
// writing the same entries.
func newLogger(level, file string, out io.Writer) (logger.Logger, error) {
	lvl := logger.ParseLevel(level)
	console := logger.NewLogrusLogger(out, lvl)
	if file == "" {
		return console, nil
	}
	fl, err := logger.NewFileLogger(file, lvl)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", file, err)
	}
	return logger.NewMultiLogger(console, fl), nil
}

func setupLogger(ctx *cli.Context) error {
	l, err := newLogger(ctx.String("log-level"), ctx.String("log-file"), logOutput)
	if err != nil {
		return err
	}
	appLogger = l
	return nil
}

func closeLogger(ctx *cli.Context) error {
	err := appLogger.Close()
	appLogger = logger.NewNopLogger()
	return err
}
