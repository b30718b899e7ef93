package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/finbridge/marginbridge"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type addCmd struct {
	component string

	priorRevenue string
	priorProfit  string
	priorCost    string

	currentRevenue string
	currentProfit  string
	currentCost    string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "append a component's P&L figures to the dataset" }
func (*addCmd) Usage() string {
	return `mba add -c <component> -pr <revenue> (-pp <profit> | -pc <cost>) -cr <revenue> (-cp <profit> | -cc <cost>)

  Appends one component line to the dataset. Each period needs its revenue
  and either its profit or its cost, profit is derived exactly from cost.

Usage Examples:
# The taco line sold 15000 for a 12450 cost in the prior period.
$ mba add -c Tacos -pr 15000 -pc 12450 -cr 20000 -cc 16600

`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.component, "c", "", "Component identifier, unique within the dataset (required)")
	f.StringVar(&c.priorRevenue, "pr", "", "Prior period revenue (required)")
	f.StringVar(&c.priorProfit, "pp", "", "Prior period profit")
	f.StringVar(&c.priorCost, "pc", "", "Prior period cost")
	f.StringVar(&c.currentRevenue, "cr", "", "Current period revenue (required)")
	f.StringVar(&c.currentProfit, "cp", "", "Current period profit")
	f.StringVar(&c.currentCost, "cc", "", "Current period cost")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.component == "" {
		fmt.Fprintln(os.Stderr, "Error: the -c flag is required.")
		return subcommands.ExitUsageError
	}

	// The dataset currency rules the figures. A missing file is a fresh
	// dataset, 'mba add' creates it on first append.
	p, err := DecodePnL()
	if errors.Is(err, fs.ErrNotExist) {
		p = marginbridge.NewPortfolio()
		p.SetCurrency(*defaultCurrency)
		err = nil
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		return subcommands.ExitFailure
	}

	prior, err := parsePnL(c.priorRevenue, c.priorProfit, c.priorCost, marginbridge.Prior, p.Currency())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	current, err := parsePnL(c.currentRevenue, c.currentProfit, c.currentCost, marginbridge.Current, p.Currency())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	component, err := marginbridge.NewComponent(c.component, prior, current)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	// Appending to the in-memory portfolio catches duplicates and invalid
	// figures before the file is touched.
	if err := p.Append(component); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	return EncodeComponent(component)
}

// parsePnL builds one period's figures from the raw flag values.
func parsePnL(revenue, profit, cost string, period marginbridge.Period, currency string) (marginbridge.PnL, error) {
	if revenue == "" {
		return marginbridge.PnL{}, fmt.Errorf("missing %s revenue", period)
	}
	r, err := decimal.NewFromString(revenue)
	if err != nil {
		return marginbridge.PnL{}, fmt.Errorf("invalid %s revenue %q: %w", period, revenue, err)
	}

	switch {
	case profit != "" && cost != "":
		return marginbridge.PnL{}, fmt.Errorf("%s period: give either a profit or a cost, not both", period)
	case profit != "":
		v, err := decimal.NewFromString(profit)
		if err != nil {
			return marginbridge.PnL{}, fmt.Errorf("invalid %s profit %q: %w", period, profit, err)
		}
		return marginbridge.PnLFromProfit(marginbridge.M(r, currency), marginbridge.M(v, currency)), nil
	case cost != "":
		v, err := decimal.NewFromString(cost)
		if err != nil {
			return marginbridge.PnL{}, fmt.Errorf("invalid %s cost %q: %w", period, cost, err)
		}
		return marginbridge.PnLFromCost(marginbridge.M(r, currency), marginbridge.M(v, currency)), nil
	default:
		return marginbridge.PnL{}, fmt.Errorf("missing %s profit or cost", period)
	}
}
