package cmd

import (
	"context"
	"flag"
	"testing"

	"github.com/google/subcommands"
)

func TestCheckConsistentDataset(t *testing.T) {
	path := writeDataset(t, tacoDataset)
	overridePnLFile(t, path)

	cmd := &checkCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)

	var status subcommands.ExitStatus
	got := captureStdout(t, func() {
		status = cmd.Execute(context.Background(), f)
	})

	if status != subcommands.ExitSuccess {
		t.Fatalf("Execute() = %v, want ExitSuccess", status)
	}

	want := `portfolio: Taco Stand
currency: USD
components: 3
periods: 2024 -> 2025
margin: 20.43% -> 18.14% (-228.57 bps)
effects: performance -157.14 bps, mix -71.43 bps
weights: ok
tie-out: ok
✅ Dataset is consistent.
`
	if got != want {
		t.Errorf("check output mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestCheckVerboseListsDrivers(t *testing.T) {
	path := writeDataset(t, tacoDataset)
	overridePnLFile(t, path)

	verbose := true
	oldVerbose := Verbose
	Verbose = &verbose
	t.Cleanup(func() { Verbose = oldVerbose })

	cmd := &checkCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)

	var status subcommands.ExitStatus
	got := captureStdout(t, func() {
		status = cmd.Execute(context.Background(), f)
	})

	if status != subcommands.ExitSuccess {
		t.Fatalf("Execute() = %v, want ExitSuccess", status)
	}

	// Largest contribution first, each with the effect that drove it.
	want := `portfolio: Taco Stand
currency: USD
components: 3
periods: 2024 -> 2025
margin: 20.43% -> 18.14% (-228.57 bps)
effects: performance -157.14 bps, mix -71.43 bps
weights: ok
tie-out: ok
drivers:
  Drinks: -242.86 bps (performance)
  Sides: +30.61 bps (performance)
  Tacos: -16.33 bps (mix)
✅ Dataset is consistent.
`
	if got != want {
		t.Errorf("verbose check output mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestCheckInvalidDataset(t *testing.T) {
	// Zero prior revenue must be rejected with the offending component named.
	path := writeDataset(t, `{"component":"Drinks","prior":{"revenue":0,"profit":100},"current":{"revenue":5000,"profit":750}}
`)
	overridePnLFile(t, path)

	cmd := &checkCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)

	var status subcommands.ExitStatus
	captureStdout(t, func() {
		status = cmd.Execute(context.Background(), f)
	})
	if status != subcommands.ExitFailure {
		t.Errorf("Execute() = %v, want ExitFailure", status)
	}
}
