package marginbridge

import (
	"fmt"
	"strings"
)

// Period designates one of the two sides of an attribution.
type Period int

const (
	// Prior is the reference period the portfolio is compared against.
	Prior Period = iota
	// Current is the period under review.
	Current
)

// String returns the default display label of the period.
func (p Period) String() string {
	if p == Prior {
		return "prior"
	}
	return "current"
}

// PnL holds the raw figures of one component over one period.
type PnL struct {
	Revenue Money
	Profit  Money
}

// PnLFromProfit builds the figures from revenue and profit.
func PnLFromProfit(revenue, profit Money) PnL {
	return PnL{Revenue: revenue, Profit: profit}
}

// PnLFromCost builds the figures from revenue and cost of sales.
// The subtraction is exact, no float is involved.
func PnLFromCost(revenue, cost Money) PnL {
	return PnL{Revenue: revenue, Profit: revenue.Sub(cost)}
}

// Component is one slice of the portfolio (a product line, a channel, a
// region) with its raw figures on both periods. Components are immutable
// once created; everything else (margins, weights, effects) is derived.
type Component struct {
	id  string
	pnl [2]PnL
}

// NewComponent validates the raw figures and builds an immutable component.
func NewComponent(id string, prior, current PnL) (Component, error) {
	c := Component{id: id, pnl: [2]PnL{prior, current}}
	if err := c.Validate(); err != nil {
		return Component{}, err
	}
	return c, nil
}

// ID returns the component identifier, unique within its portfolio.
func (c Component) ID() string { return c.id }

// Revenue returns the component revenue on the given period.
func (c Component) Revenue(p Period) Money { return c.pnl[p].Revenue }

// Profit returns the component profit on the given period. It may be negative.
func (c Component) Profit(p Period) Money { return c.pnl[p].Profit }

// Margin returns profit over revenue on the given period, as a plain ratio.
// Revenue is guaranteed non-zero by Validate.
func (c Component) Margin(p Period) float64 {
	return c.pnl[p].Profit.Ratio(c.pnl[p].Revenue)
}

// Equal reports whether both components carry the same identifier and figures.
func (c Component) Equal(d Component) bool {
	return c.id == d.id &&
		c.pnl[Prior].Revenue.Equal(d.pnl[Prior].Revenue) &&
		c.pnl[Prior].Profit.Equal(d.pnl[Prior].Profit) &&
		c.pnl[Current].Revenue.Equal(d.pnl[Current].Revenue) &&
		c.pnl[Current].Profit.Equal(d.pnl[Current].Profit)
}

// Validate checks the component invariants: a non-blank identifier and a
// strictly positive revenue on both periods. A zero revenue makes the margin
// a division by zero and is reported as such.
func (c Component) Validate() error {
	if strings.TrimSpace(c.id) == "" {
		return fmt.Errorf("component has no identifier: %w", ErrInvalidInput)
	}
	for _, p := range []Period{Prior, Current} {
		revenue := c.pnl[p].Revenue
		if revenue.IsZero() {
			return fmt.Errorf("component %q: %s revenue: %w", c.id, p, ErrZeroRevenue)
		}
		if revenue.IsNegative() {
			return fmt.Errorf("component %q: %s revenue is negative: %w", c.id, p, ErrInvalidInput)
		}
	}
	return nil
}
