package marginbridge

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// figuresLine is a specialized struct to read one period's raw figures.
// Profit and cost are both optional on the wire: one of them must be
// present, and when both are they must agree.
type figuresLine struct {
	Revenue decimal.Decimal  `json:"revenue"`
	Cost    *decimal.Decimal `json:"cost,omitempty"`
	Profit  *decimal.Decimal `json:"profit,omitempty"`
}

// componentLine is a specialized struct for decoding one dataset record.
type componentLine struct {
	Component string      `json:"component"`
	Prior     figuresLine `json:"prior"`
	Current   figuresLine `json:"current"`
}

// headerLine is a specialized struct for decoding the dataset header.
type headerLine struct {
	Portfolio string        `json:"portfolio,omitempty"`
	Currency  string        `json:"currency,omitempty"`
	Periods   *periodLabels `json:"periods,omitempty"`
}

type periodLabels struct {
	Prior   string `json:"prior"`
	Current string `json:"current"`
}

// resolvePnL turns wire figures into a PnL, computing profit from cost when
// needed. The caller adds the component identifier to errors.
func resolvePnL(f figuresLine, currency string) (PnL, error) {
	revenue := M(f.Revenue, currency)
	switch {
	case f.Profit == nil && f.Cost == nil:
		return PnL{}, fmt.Errorf("missing profit or cost figure: %w", ErrInvalidInput)
	case f.Profit != nil && f.Cost != nil:
		profit := M(*f.Profit, currency)
		if !revenue.Sub(M(*f.Cost, currency)).Equal(profit) {
			return PnL{}, fmt.Errorf("cost and profit figures disagree: %w", ErrInvalidInput)
		}
		return PnLFromProfit(revenue, profit), nil
	case f.Profit != nil:
		return PnLFromProfit(revenue, M(*f.Profit, currency)), nil
	default:
		return PnLFromCost(revenue, M(*f.Cost, currency)), nil
	}
}

// DecodePortfolio decodes a dataset from a stream of JSONL data: an optional
// header line (first line only) followed by one line per component.
func DecodePortfolio(r io.Reader) (*Portfolio, error) {
	p := NewPortfolio()
	scanner := bufio.NewScanner(r)

	line := 0
	seenHeader := false
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		// The presence of the "component" key tells records and header apart.
		var identifier struct {
			Component *string `json:"component"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("line %d: not a valid dataset line (%v): %w", line, err, ErrInvalidInput)
		}

		if identifier.Component == nil {
			if seenHeader || p.Len() > 0 {
				return nil, fmt.Errorf("line %d: header must be the first line of the dataset: %w", line, ErrInvalidInput)
			}
			seenHeader = true
			var header headerLine
			if err := json.Unmarshal(lineBytes, &header); err != nil {
				return nil, fmt.Errorf("line %d: invalid header (%v): %w", line, err, ErrInvalidInput)
			}
			p.SetName(header.Portfolio)
			p.SetCurrency(header.Currency)
			if header.Periods != nil {
				p.SetLabels(header.Periods.Prior, header.Periods.Current)
			}
			continue
		}

		var record componentLine
		if err := json.Unmarshal(lineBytes, &record); err != nil {
			return nil, fmt.Errorf("line %d: invalid component (%v): %w", line, err, ErrInvalidInput)
		}
		prior, err := resolvePnL(record.Prior, p.Currency())
		if err != nil {
			return nil, fmt.Errorf("line %d: component %q: prior period: %w", line, record.Component, err)
		}
		current, err := resolvePnL(record.Current, p.Currency())
		if err != nil {
			return nil, fmt.Errorf("line %d: component %q: current period: %w", line, record.Component, err)
		}
		c, err := NewComponent(record.Component, prior, current)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if err := p.Append(c); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	return p, nil
}

// EncodeHeader writes the dataset header line for the portfolio metadata.
// Default period labels are left out.
func EncodeHeader(w io.Writer, p *Portfolio) error {
	var header jsonObjectWriter
	header.Optional("portfolio", p.Name())
	header.Append("currency", p.Currency())
	if p.Label(Prior) != Prior.String() || p.Label(Current) != Current.String() {
		var periods jsonObjectWriter
		periods.Append("prior", p.Label(Prior))
		periods.Append("current", p.Label(Current))
		header.Append("periods", &periods)
	}
	data, err := header.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode header: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	return nil
}

// EncodeComponent writes one component as a canonical JSONL line: fixed key
// order, profit form (never cost), decimals without quotes.
func EncodeComponent(w io.Writer, c Component) error {
	var line jsonObjectWriter
	line.Append("component", c.ID())
	for _, p := range []Period{Prior, Current} {
		var figures jsonObjectWriter
		figures.Append("revenue", c.Revenue(p).value)
		figures.Append("profit", c.Profit(p).value)
		line.Append(p.String(), &figures)
	}
	data, err := line.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode component %q: %w", c.ID(), err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write component %q: %w", c.ID(), err)
	}
	return nil
}

// EncodePortfolio persists the dataset in canonical form: header first, then
// components sorted by identifier. Decoding the result yields an equal
// portfolio; encoding is idempotent.
func EncodePortfolio(w io.Writer, p *Portfolio) error {
	if err := EncodeHeader(w, p); err != nil {
		return err
	}
	p.Sort()
	for c := range p.Components() {
		if err := EncodeComponent(w, c); err != nil {
			return err
		}
	}
	return nil
}
