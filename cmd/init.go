package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/finbridge/marginbridge"
	"github.com/google/subcommands"
)

type initCmd struct {
	name     string
	currency string
	prior    string
	current  string
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create a new P&L dataset file" }
func (*initCmd) Usage() string {
	return `mba init [-name <portfolio>] [-currency <code>] [-prior <label>] [-current <label>]

  Creates the dataset file with a single header line carrying the portfolio
  metadata. Refuses to touch an existing file.

Usage Examples:
# Start a dataset comparing fiscal 2024 to fiscal 2025.
$ mba init -prior 2024 -current 2025

`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Display name of the portfolio")
	f.StringVar(&c.currency, "currency", "", "Reporting currency, 3-letter code")
	f.StringVar(&c.prior, "prior", "", "Display label of the prior period")
	f.StringVar(&c.current, "current", "", "Display label of the current period")
}

func (c *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, err := os.Stat(*pnlFile); err == nil {
		fmt.Fprintf(os.Stderr, "Error: dataset file %q already exists.\n", *pnlFile)
		return subcommands.ExitFailure
	}

	currency := c.currency
	if currency == "" {
		currency = *defaultCurrency
	}

	p := marginbridge.NewPortfolio()
	p.SetName(c.name)
	p.SetCurrency(currency)
	p.SetLabels(c.prior, c.current)

	if err := EncodePnL(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating dataset: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("✅ Created dataset '%s'.\n", *pnlFile)
	return subcommands.ExitSuccess
}
