package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/rendergate/cmd/rendergate/commands"
	"git.home.luguber.info/inful/rendergate/internal/foundation/errors"
	"git.home.luguber.info/inful/rendergate/internal/version"
)

func main() {
	var cli commands.CLI
	global := &commands.Global{Out: os.Stdout}

	ctx := kong.Parse(&cli,
		kong.Name("rendergate"),
		kong.Description("Decide whether pipeline stage artifacts must be rendered to Markdown."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	if err := ctx.Run(global, &cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
