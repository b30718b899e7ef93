package marginbridge

import (
	"fmt"
	"iter"
	"sort"
)

// DefaultCurrency is used when a dataset does not declare one.
const DefaultCurrency = "USD"

// Portfolio represents the collection of components under analysis, with the
// display metadata shared by all of them: a name, a currency and the two
// period labels. Insertion order is preserved for display; it never affects
// the numbers.
type Portfolio struct {
	name       string
	currency   string
	labels     [2]string
	components []Component
	index      map[string]int // components index by identifier
}

// NewPortfolio creates an empty portfolio with default metadata.
func NewPortfolio() *Portfolio {
	return &Portfolio{
		currency:   DefaultCurrency,
		labels:     [2]string{Prior.String(), Current.String()},
		components: make([]Component, 0),
		index:      make(map[string]int),
	}
}

// Name returns the portfolio display name, possibly empty.
func (p *Portfolio) Name() string { return p.name }

// SetName sets the portfolio display name.
func (p *Portfolio) SetName(name string) { p.name = name }

// Currency returns the ISO code all amounts are denominated in.
func (p *Portfolio) Currency() string { return p.currency }

// SetCurrency sets the portfolio currency.
func (p *Portfolio) SetCurrency(code string) {
	if code != "" {
		p.currency = code
	}
}

// Label returns the display label of a period (e.g. "2024", "FY25").
func (p *Portfolio) Label(period Period) string { return p.labels[period] }

// SetLabels sets the display labels of both periods. Blank labels keep the
// previous value.
func (p *Portfolio) SetLabels(prior, current string) {
	if prior != "" {
		p.labels[Prior] = prior
	}
	if current != "" {
		p.labels[Current] = current
	}
}

// Len returns the number of components.
func (p *Portfolio) Len() int { return len(p.components) }

// Get returns the component with the given identifier.
func (p *Portfolio) Get(id string) (Component, bool) {
	i, ok := p.index[id]
	if !ok {
		return Component{}, false
	}
	return p.components[i], true
}

// Append validates components and adds them to the portfolio.
// A duplicate identifier is rejected: each slice of the portfolio must
// appear exactly once or weights would double count its revenue.
func (p *Portfolio) Append(components ...Component) error {
	for _, c := range components {
		if err := c.Validate(); err != nil {
			return err
		}
		if _, exists := p.index[c.id]; exists {
			return fmt.Errorf("component %q: duplicate identifier: %w", c.id, ErrInvalidInput)
		}
		p.index[c.id] = len(p.components)
		p.components = append(p.components, c)
	}
	return nil
}

// Components iterates over components in portfolio order.
func (p *Portfolio) Components() iter.Seq[Component] {
	return func(yield func(Component) bool) {
		for _, c := range p.components {
			if !yield(c) {
				return
			}
		}
	}
}

// Sort reorders components by identifier, the canonical dataset order.
// The sort is stable so equal keys cannot occur (identifiers are unique).
func (p *Portfolio) Sort() {
	sort.SliceStable(p.components, func(i, j int) bool {
		return p.components[i].id < p.components[j].id
	})
	for i, c := range p.components {
		p.index[c.id] = i
	}
}

// TotalRevenue returns the exact sum of component revenues on the period.
func (p *Portfolio) TotalRevenue(period Period) Money {
	total := M(0, p.currency)
	for _, c := range p.components {
		total = total.Add(c.Revenue(period))
	}
	return total
}

// TotalProfit returns the exact sum of component profits on the period.
func (p *Portfolio) TotalProfit(period Period) Money {
	total := M(0, p.currency)
	for _, c := range p.components {
		total = total.Add(c.Profit(period))
	}
	return total
}

// Equal reports whether both portfolios carry the same metadata and the same
// components in the same order.
func (p *Portfolio) Equal(q *Portfolio) bool {
	if p.name != q.name || p.currency != q.currency || p.labels != q.labels || len(p.components) != len(q.components) {
		return false
	}
	for i := range p.components {
		if !p.components[i].Equal(q.components[i]) {
			return false
		}
	}
	return true
}
