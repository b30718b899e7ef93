package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the dataset file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `mba fmt

  Validates and formats the dataset file. This command reads all lines,
  validates them, sorts components by identifier and writes them back in a
  canonical JSONL form with the profit figure spelled out.

Usage Examples:
# Rewrites the default dataset file in place.
$ mba fmt

`
}

func (*fmtCmd) SetFlags(_ *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := DecodePnL()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load dataset: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := EncodePnL(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing dataset: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("✅ Successfully formatted '%s'.\n", *pnlFile)
	return subcommands.ExitSuccess
}
