package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsroute/cmd/docsroute/commands"
	derrors "git.home.luguber.info/inful/docsroute/internal/foundation/errors"
	"git.home.luguber.info/inful/docsroute/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var cli commands.CLI
	global := &commands.Global{Out: os.Stdout}

	parser, err := kong.New(&cli,
		kong.Name("docsroute"),
		kong.Description("Routing, versioning and SEO metadata for the documentation site."),
		kong.UsageOnError(),
		kong.Bind(global),
		kong.Vars{"version": version.String()},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		parser.FatalIfErrorf(err)
	}

	if err := ctx.Run(global, &cli); err != nil {
		adapter := derrors.NewCLIErrorAdapter(cli.Verbose, global.Logger)
		adapter.Log(err)
		fmt.Fprintln(os.Stderr, adapter.FormatError(err))
		return adapter.ExitCodeFor(err)
	}
	return 0
}
