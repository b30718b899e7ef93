package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

func runReport(t *testing.T, args ...string) string {
	t.Helper()
	cmd := &reportCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	for i := 0; i+1 < len(args); i += 2 {
		if err := f.Set(args[i], args[i+1]); err != nil {
			t.Fatalf("Failed to set flag %q: %v", args[i], err)
		}
	}

	var status subcommands.ExitStatus
	output := captureStdout(t, func() {
		status = cmd.Execute(context.Background(), f)
	})
	if status != subcommands.ExitSuccess {
		t.Fatalf("Execute() = %v, want ExitSuccess", status)
	}
	return output
}

func TestReportDefaultMarkdown(t *testing.T) {
	overridePnLFile(t, writeDataset(t, tacoDataset))

	got := runReport(t)

	for _, want := range []string{
		"# Margin Attribution: Taco Stand",
		"*2024 vs 2025*",
		"| **Margin Change** | **-228.57 bps** |",
		"| Drinks | 32.00% | 15.00% | 14.29% | 14.29% | -242.86 bps | - | -242.86 bps |",
		"| **Total** | **20.43%** | **18.14%** | | | **-157.14 bps** | **-71.43 bps** | **-228.57 bps** |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in report:\n%s", want, got)
		}
	}
}

func TestReportSummaryOmitsTable(t *testing.T) {
	overridePnLFile(t, writeDataset(t, tacoDataset))

	got := runReport(t, "summary", "true")

	if !strings.Contains(got, "| **Margin Change** | **-228.57 bps** |") {
		t.Errorf("missing headline in summary:\n%s", got)
	}
	if strings.Contains(got, "## Components") {
		t.Errorf("summary must not carry the component table:\n%s", got)
	}
}

func TestReportDrivers(t *testing.T) {
	overridePnLFile(t, writeDataset(t, tacoDataset))

	got := runReport(t, "drivers", "true")

	if !strings.Contains(got, "# Margin Drivers: Taco Stand") {
		t.Errorf("missing title in drivers report:\n%s", got)
	}
	// Largest mover first.
	if strings.Index(got, "Drinks") > strings.Index(got, "Sides") {
		t.Errorf("Drinks should rank before Sides in:\n%s", got)
	}
}

func TestReportQuery(t *testing.T) {
	overridePnLFile(t, writeDataset(t, tacoDataset))

	// The headline number, raw enough for shell arithmetic.
	if got, want := runReport(t, "q", "$.summary.totalBps"), "-228.57142857142873\n"; got != want {
		t.Errorf("query totalBps = %q, want %q", got, want)
	}
	// Components keep their dataset order.
	if got, want := runReport(t, "q", "$.rows[0].component"), "\"Drinks\"\n"; got != want {
		t.Errorf("query rows[0].component = %q, want %q", got, want)
	}
}

func TestReportJSON(t *testing.T) {
	overridePnLFile(t, writeDataset(t, tacoDataset))

	got := runReport(t, "json", "true")

	var report struct {
		Name string `json:"name"`
		Rows []struct {
			Component string  `json:"component"`
			TotalBps  float64 `json:"totalBps"`
		} `json:"rows"`
		Summary struct {
			ChangeBps float64 `json:"changeBps"`
			TotalBps  float64 `json:"totalBps"`
		} `json:"summary"`
	}
	if err := json.Unmarshal([]byte(got), &report); err != nil {
		t.Fatalf("report -json is not valid JSON: %v\n%s", err, got)
	}
	if report.Name != "Taco Stand" {
		t.Errorf("name = %q, want %q", report.Name, "Taco Stand")
	}
	if len(report.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(report.Rows))
	}
	if report.Rows[0].Component != "Drinks" {
		t.Errorf("rows[0].component = %q, want %q", report.Rows[0].Component, "Drinks")
	}
	if diff := report.Summary.TotalBps - report.Summary.ChangeBps; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("summary does not tie out: total %v vs change %v", report.Summary.TotalBps, report.Summary.ChangeBps)
	}
}

func TestReportMissingDataset(t *testing.T) {
	overridePnLFile(t, "does-not-exist.jsonl")

	cmd := &reportCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	if status := cmd.Execute(context.Background(), f); status != subcommands.ExitFailure {
		t.Errorf("Execute() = %v, want ExitFailure", status)
	}
}
