package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
)

func TestInitWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pnl.jsonl")
	overridePnLFile(t, path)

	cmd := &initCmd{name: "Taco Stand", prior: "2024", current: "2025"}
	f := flag.NewFlagSet("test", flag.ContinueOnError)

	var status subcommands.ExitStatus
	captureStdout(t, func() {
		status = cmd.Execute(context.Background(), f)
	})
	if status != subcommands.ExitSuccess {
		t.Fatalf("Execute() = %v, want ExitSuccess", status)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read dataset: %v", err)
	}
	want := `{"portfolio":"Taco Stand","currency":"USD","periods":{"prior":"2024","current":"2025"}}
`
	if string(got) != want {
		t.Errorf("header mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestInitRefusesExistingDataset(t *testing.T) {
	path := writeDataset(t, tacoDataset)
	overridePnLFile(t, path)

	cmd := &initCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)

	if status := cmd.Execute(context.Background(), f); status != subcommands.ExitFailure {
		t.Errorf("Execute() = %v, want ExitFailure", status)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read dataset: %v", err)
	}
	if string(got) != tacoDataset {
		t.Errorf("init modified an existing dataset:\n%s", got)
	}
}
