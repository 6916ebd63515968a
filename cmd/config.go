package cmd

import "time"

// DemoWait is how long the demo keeps the sample service installed.
const DemoWait = 2 * time.Second

const DESCRIPTION = `
scctl installs and removes Windows services through the
service control manager. Every failure is logged together
with the platform error code.
`

const (
	CreateDescription = `The create command registers a new service. The binary
path must be absolute and point at an existing file. Values
may be loaded from a YAML descriptor with --file; flags given
on the command line take precedence.

Example:
        scctl create --name DummyService --path C:\svc\dummysvc.exe
        scctl create --file dummy.yaml --start-type demand

`
	DeleteDescription = `The delete command marks a service for deletion. The
service control manager removes it once every handle to it
is closed.

Example:
        scctl delete DummyService

`
	DemoDescription = `The demo command installs the bundled dummy service,
waits a moment and removes it again. It must be run from an
elevated prompt with dummysvc.exe next to scctl.exe.

Example:
        scctl demo

`
)

const HELP_TEMPL = `Usage: {{if .UsageText}}{{.UsageText}}{{else}}{{.HelpName}} {{if .VisibleFlags}}[global options]{{end}}{{if .Commands}} command [command options]{{end}} {{if .ArgsUsage}}{{.ArgsUsage}}{{else}}[arguments...]{{end}}{{end}}
{{.Description}}{{if .VisibleCommands}}
Commands:{{range .VisibleCategories}}{{if .Name}}

{{.Name}}:{{range .VisibleCommands}}
  {{join .Names ", "}}{{"\t"}}{{.Usage}}{{end}}{{else}}{{range .VisibleCommands}}
{{"\t"}}{{index .Names 0}}{{"\t:\t"}}{{.Usage}}{{end}}{{end}}{{end}}{{end}}{{if .VisibleFlags}}

Global Flags:{{range .VisibleFlags}}
  {{.}}{{end}}{{end}}

Use "{{.HelpName}} help <command>" for more information about any command.

`

const CMD_HELP_TEMPL = `{{if .Description}}{{.Description}}{{else}}{{.HelpName}} - {{.Usage}}

{{end}}Usage:
        {{.HelpName}} {{if .UsageText}}{{.UsageText}}{{else}}[arguments...]{{end}}{{if .VisibleFlags}}

Supported Flags:{{range .VisibleFlags}}
  {{.}}{{end}}{{end}}

`
