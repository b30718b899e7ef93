// Package cmd implements the CLI application to analyse a portfolio's margin.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/finbridge/marginbridge"
	"github.com/google/subcommands"
)

// Commands lists the built-in subcommands in registration order.
// A main package ranges over it to register them, and falls back to
// RunExtension for anything it does not know.
var Commands = []subcommands.Command{
	&initCmd{},
	&addCmd{},
	&checkCmd{},
	&reportCmd{},
	&fmtCmd{},
	&importCmd{},
	&exportCmd{},
	&topicCmd{},
	&explainCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var pnlFile = flag.String("pnl-file", "pnl.jsonl", "Path to the P&L dataset file (JSONL format)")
var defaultCurrency = flag.String("default-currency", "", "Currency code assumed when the dataset or the import does not declare one")
var Verbose = flag.Bool("v", false, "Print extra diagnostics on stderr")

// DecodePnL reads the P&L dataset from the application's default file.
func DecodePnL() (*marginbridge.Portfolio, error) {
	f, err := os.Open(*pnlFile)
	if err != nil {
		return nil, fmt.Errorf("opening dataset file %q: %w", *pnlFile, err)
	}
	defer f.Close()

	p, err := marginbridge.DecodePortfolio(f)
	if err != nil {
		return nil, fmt.Errorf("decoding dataset file %q: %w", *pnlFile, err)
	}
	return p, nil
}

// EncodePnL writes the whole dataset back to the application's default file
// in canonical form.
func EncodePnL(p *marginbridge.Portfolio) error {
	f, err := os.OpenFile(*pnlFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("opening dataset file %q for writing: %w", *pnlFile, err)
	}
	defer f.Close()

	return marginbridge.EncodePortfolio(f, p)
}

// EncodeComponent appends a single component line to the app default dataset
// file, creating the file if needed. Manual formatting of the other lines is
// preserved, 'mba fmt' canonicalizes the whole file.
func EncodeComponent(c marginbridge.Component) subcommands.ExitStatus {
	filename := *pnlFile
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening dataset file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := marginbridge.EncodeComponent(f, c); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to dataset file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended '%s' to %s\n", c.ID(), filename)
	return subcommands.ExitSuccess
}
