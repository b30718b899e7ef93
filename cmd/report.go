package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/finbridge/marginbridge"
	"github.com/finbridge/marginbridge/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	summary bool
	drivers bool
	asJSON  bool
	query   string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "attribute the margin change to its components" }
func (*reportCmd) Usage() string {
	return `mba report [-summary | -drivers | -json | -q <path>]

  Decomposes the period-over-period change of the aggregate profit margin
  into one performance and one mix effect per component, in basis points.

  By default the full report is printed as markdown. -summary leaves the
  component table out, -drivers ranks components by contribution, -json
  dumps the raw attribution and -q extracts a single value from it with a
  JSONPath expression.

Usage Examples:
# Who moved the margin this period?
$ mba report -drivers

# Headline number only, for scripts.
$ mba report -q $.summary.totalBps

`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.summary, "summary", false, "Print the headline figures without the component table")
	f.BoolVar(&c.drivers, "drivers", false, "Rank components by the size of their contribution")
	f.BoolVar(&c.asJSON, "json", false, "Print the raw attribution as JSON")
	f.StringVar(&c.query, "q", "", "JSONPath expression to extract a single value from the attribution")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := DecodePnL()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		return subcommands.ExitFailure
	}

	a, err := marginbridge.NewAttribution(p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	switch {
	case c.query != "":
		v, err := a.Query(c.query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := json.NewEncoder(os.Stdout).Encode(v); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
			return subcommands.ExitFailure
		}
	case c.asJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(a); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding attribution: %v\n", err)
			return subcommands.ExitFailure
		}
	case c.drivers:
		printMarkdown(renderer.DriversMarkdown(renderer.NewAttribution(a)))
	case c.summary:
		printMarkdown(renderer.RenderAttributionSummary(renderer.NewAttribution(a)))
	default:
		printMarkdown(renderer.RenderAttribution(renderer.NewAttribution(a)))
	}

	return subcommands.ExitSuccess
}
