package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/finbridge/marginbridge/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	known := make(map[string]bool)
	for _, c := range cmd.Commands {
		commander.Register(c, "")
		known[c.Name()] = true
	}
	for _, c := range []subcommands.Command{
		commander.HelpCommand(),
		commander.FlagsCommand(),
		commander.CommandsCommand(),
	} {
		commander.Register(c, "")
		known[c.Name()] = true
	}

	// Shell completion, including the COMP_INSTALL=1 self-install. Must run
	// before flag.Parse, it exits the process when the shell is asking.
	complete.Complete(path.Base(os.Args[0]), cmd.Completer())

	flag.Parse()

	// Unknown subcommands fall through to external mba-<name> binaries.
	if sub := flag.Arg(0); sub != "" && !known[sub] {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}
