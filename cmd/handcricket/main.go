package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play hand cricket in the terminal"`
	Serve    ServeCmd         `cmd:"" help:"Run the gesture gateway server"`
	Simulate SimulateCmd      `cmd:"" help:"Run headless match simulations"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("handcricket"),
		kong.Description("Gesture-driven hand cricket"),
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
