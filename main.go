package main

import (
	"github.com/alecthomas/kong"
)

var version = "dev"

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("contacts"),
		kong.Description("Manage contacts held by a remote contact service."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
