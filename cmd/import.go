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

type importCmd struct {
	input    string
	currency string
	name     string
	prior    string
	current  string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a CSV export into the dataset" }
func (*importCmd) Usage() string {
	return `mba import [-i <file>] [-currency <code>] [-name <portfolio>] [-prior <label>] [-current <label>]

  Reads a CSV with the columns component, prior_revenue, current_revenue and
  either the profit or the cost columns of both periods, and writes the
  dataset file from it. An existing dataset file is overwritten.

Usage Examples:
# Convert the spreadsheet export and label the periods.
$ mba import -i book.csv -prior 2024 -current 2025

`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "-", "CSV file to read, '-' for stdin")
	f.StringVar(&c.currency, "currency", "", "Currency of the figures, 3-letter code")
	f.StringVar(&c.name, "name", "", "Display name of the portfolio")
	f.StringVar(&c.prior, "prior", "", "Display label of the prior period")
	f.StringVar(&c.current, "current", "", "Display label of the current period")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var r io.Reader = os.Stdin
	if c.input != "-" {
		file, err := os.Open(c.input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		r = file
	}

	currency := c.currency
	if currency == "" {
		currency = *defaultCurrency
	}

	p, err := marginbridge.ImportCSV(r, currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing CSV: %v\n", err)
		return subcommands.ExitFailure
	}
	p.SetName(c.name)
	p.SetLabels(c.prior, c.current)

	if err := EncodePnL(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing dataset: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("✅ Imported %d components into '%s'.\n", p.Len(), *pnlFile)
	return subcommands.ExitSuccess
}
