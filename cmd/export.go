package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/finbridge/marginbridge"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the dataset as CSV" }
func (*exportCmd) Usage() string {
	return `mba export [-o <file>]

  Writes the dataset as a CSV with one row per component, sorted by
  identifier, with the profit figures spelled out.

`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "-", "File to write, '-' for stdout")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := DecodePnL()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		return subcommands.ExitFailure
	}

	var w io.Writer = os.Stdout
	if c.output != "-" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}

	if err := marginbridge.ExportCSV(w, p); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting CSV: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.output != "-" {
		fmt.Printf("✅ Exported %d components to '%s'.\n", p.Len(), c.output)
	}
	return subcommands.ExitSuccess
}
