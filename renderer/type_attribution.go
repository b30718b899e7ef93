package renderer

import (
	"github.com/finbridge/marginbridge"
)

// Attribution is a struct to represent the attribution data for rendering.
// It is a flat view of marginbridge.Attribution: everything the templates
// touch is a field here, so a test can rebuild the exact view from JSON.
type Attribution struct {
	Name         string `json:"name,omitempty"`
	PriorLabel   string `json:"priorLabel"`
	CurrentLabel string `json:"currentLabel"`

	RevenuePrior   marginbridge.Money `json:"revenuePrior"`
	RevenueCurrent marginbridge.Money `json:"revenueCurrent"`
	ProfitPrior    marginbridge.Money `json:"profitPrior"`
	ProfitCurrent  marginbridge.Money `json:"profitCurrent"`

	MarginPrior   marginbridge.Percent     `json:"marginPrior"`
	MarginCurrent marginbridge.Percent     `json:"marginCurrent"`
	Change        marginbridge.BasisPoints `json:"changeBps"`
	Performance   marginbridge.BasisPoints `json:"performanceBps"`
	Mix           marginbridge.BasisPoints `json:"mixBps"`
	Total         marginbridge.BasisPoints `json:"totalBps"`

	// Rows keep the portfolio order; Drivers hold the same rows sorted by
	// absolute contribution, largest first.
	Rows    []AttributionRow `json:"rows"`
	Drivers []AttributionRow `json:"drivers,omitempty"`
}

// AttributionRow holds the data for a single component line in a report.
type AttributionRow struct {
	Component string `json:"component"`

	MarginPrior   marginbridge.Percent `json:"marginPrior"`
	MarginCurrent marginbridge.Percent `json:"marginCurrent"`
	WeightPrior   marginbridge.Percent `json:"weightPrior"`
	WeightCurrent marginbridge.Percent `json:"weightCurrent"`

	Performance marginbridge.BasisPoints `json:"performanceBps"`
	Mix         marginbridge.BasisPoints `json:"mixBps"`
	Total       marginbridge.BasisPoints `json:"totalBps"`

	// Driver names the effect that dominates this row, "performance" or "mix".
	Driver string `json:"driver"`
}

// NewAttribution creates a new renderer.Attribution from a
// marginbridge.Attribution.
func NewAttribution(ma *marginbridge.Attribution) *Attribution {
	a := &Attribution{
		Name:         ma.Name,
		PriorLabel:   ma.PriorLabel,
		CurrentLabel: ma.CurrentLabel,

		RevenuePrior:   ma.RevenuePrior,
		RevenueCurrent: ma.RevenueCurrent,
		ProfitPrior:    ma.ProfitPrior,
		ProfitCurrent:  ma.ProfitCurrent,

		MarginPrior:   ma.Summary.MarginPrior,
		MarginCurrent: ma.Summary.MarginCurrent,
		Change:        ma.Summary.Change,
		Performance:   ma.Summary.Performance,
		Mix:           ma.Summary.Mix,
		Total:         ma.Summary.Total,
	}

	row := func(r marginbridge.Row) AttributionRow {
		return AttributionRow{
			Component:     r.Component,
			MarginPrior:   r.MarginPrior,
			MarginCurrent: r.MarginCurrent,
			WeightPrior:   r.WeightPrior,
			WeightCurrent: r.WeightCurrent,
			Performance:   r.Performance,
			Mix:           r.Mix,
			Total:         r.Total,
			Driver:        r.DominantEffect(),
		}
	}
	for _, r := range ma.Rows {
		a.Rows = append(a.Rows, row(r))
	}
	for _, r := range ma.Drivers() {
		a.Drivers = append(a.Drivers, row(r))
	}
	return a
}
