package marginbridge

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// this file contains functions to handle the CSV interchange format.
// It should remain human readable, single file, and easy to produce from any
// spreadsheet: one header row naming the columns, one row per component.
//
// component, prior_revenue and current_revenue are required. Each period
// additionally needs its cost column (prior_cost, current_cost) or its
// profit column (prior_profit, current_profit); when both are present they
// must agree. Export always writes the profit form.

// ImportCSV reads components from the CSV interchange format into a fresh
// portfolio denominated in the given currency ("" means DefaultCurrency).
// CSV carries no portfolio metadata; name and period labels are left to the
// caller.
func ImportCSV(r io.Reader, currency string) (*Portfolio, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv needs a header row and at least one component: %w", ErrInvalidInput)
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"component", "prior_revenue", "current_revenue"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("csv is missing the %q column: %w", required, ErrInvalidInput)
		}
	}

	p := NewPortfolio()
	p.SetCurrency(currency)

	for i, row := range records[1:] {
		line := i + 2 // 1-based, after the header row

		id := strings.TrimSpace(row[col["component"]])
		prior, err := readFigures(row, col, "prior")
		if err != nil {
			return nil, fmt.Errorf("line %d: component %q: %w", line, id, err)
		}
		current, err := readFigures(row, col, "current")
		if err != nil {
			return nil, fmt.Errorf("line %d: component %q: %w", line, id, err)
		}

		priorPnL, err := resolvePnL(prior, p.Currency())
		if err != nil {
			return nil, fmt.Errorf("line %d: component %q: prior period: %w", line, id, err)
		}
		currentPnL, err := resolvePnL(current, p.Currency())
		if err != nil {
			return nil, fmt.Errorf("line %d: component %q: current period: %w", line, id, err)
		}

		c, err := NewComponent(id, priorPnL, currentPnL)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if err := p.Append(c); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}

	return p, nil
}

// readFigures collects one period's cells ("prior" or "current") into the
// same wire struct the JSONL decoder uses, so both formats resolve profit
// and cost identically.
func readFigures(row []string, col map[string]int, period string) (figuresLine, error) {
	revenue, err := readCell(row, col, period+"_revenue")
	if err != nil {
		return figuresLine{}, err
	}
	if revenue == nil {
		return figuresLine{}, fmt.Errorf("missing %s_revenue value: %w", period, ErrInvalidInput)
	}
	cost, err := readCell(row, col, period+"_cost")
	if err != nil {
		return figuresLine{}, err
	}
	profit, err := readCell(row, col, period+"_profit")
	if err != nil {
		return figuresLine{}, err
	}
	return figuresLine{Revenue: *revenue, Cost: cost, Profit: profit}, nil
}

// readCell parses the named cell of the row. A missing column or a blank
// cell returns nil, not an error; the caller decides what is required.
func readCell(row []string, col map[string]int, name string) (*decimal.Decimal, error) {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return nil, nil
	}
	s := strings.TrimSpace(row[i])
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q in column %q: %w", s, name, ErrInvalidInput)
	}
	return &d, nil
}

// ExportCSV writes the portfolio to the CSV interchange format, components
// sorted by identifier, profit form.
func ExportCSV(w io.Writer, p *Portfolio) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"component", "prior_revenue", "prior_profit", "current_revenue", "current_profit"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	p.Sort()
	for c := range p.Components() {
		record := []string{
			c.ID(),
			c.Revenue(Prior).value.String(),
			c.Profit(Prior).value.String(),
			c.Revenue(Current).value.String(),
			c.Profit(Current).value.String(),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write component %q: %w", c.ID(), err)
		}
	}
	writer.Flush()
	return writer.Error()
}
