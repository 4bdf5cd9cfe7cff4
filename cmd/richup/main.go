package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Server   ServerCmd        `cmd:"" help:"Run the game server"`
	Simulate SimulateCmd      `cmd:"" help:"Play bots-only games headlessly"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("richup"),
		kong.Description("Host-authoritative property trading game server"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
