package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/finbridge/marginbridge/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// explainCmd is the subcommand for the AI margin analyst.
type explainCmd struct{}

func (*explainCmd) Name() string { return "explain" }

func (*explainCmd) Synopsis() string {
	return "start an interactive session with the AI margin analyst"
}

func (*explainCmd) Usage() string {
	return `mba explain [<question>]

  Starts an interactive session with an AI analyst that can read the dataset,
  run the attribution and explain the method behind the figures. Requires a
  configured Gemini API key.

`
}

func (*explainCmd) SetFlags(_ *flag.FlagSet) {}

func (c *explainCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	// The experts locate the dataset the way extensions do.
	os.Setenv(EnvPnLFile, *pnlFile)

	analyst := agent.NewAnalyst()
	methodologist := agent.NewMethodologist()
	a := agent.New(os.Stdout, os.Stdin, analyst, methodologist)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
