package marginbridge

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Attribution decomposes the period-over-period change of the portfolio
// aggregate margin into one additive row per component. It is a pure value:
// build it, read it, discard it.
type Attribution struct {
	// Name of the portfolio under review, possibly empty.
	Name string `json:"name,omitempty"`
	// Display labels of both periods.
	PriorLabel   string `json:"priorLabel"`
	CurrentLabel string `json:"currentLabel"`
	// Reporting currency of the money aggregates below.
	Currency string `json:"currency"`

	RevenuePrior   Money `json:"revenuePrior"`
	RevenueCurrent Money `json:"revenueCurrent"`
	ProfitPrior    Money `json:"profitPrior"`
	ProfitCurrent  Money `json:"profitCurrent"`

	// Rows hold one decomposition per component, in portfolio order.
	Rows []Row `json:"rows"`
	// Summary reduces the effect columns and carries the tie-out residual.
	Summary Summary `json:"summary"`
}

// Row is the decomposition of one component.
//
// Performance is the component's own margin movement weighted by its prior
// revenue share. Mix is its revenue-share movement weighted by how its
// current margin compares to the whole portfolio. Their sum is the
// component's full contribution to the aggregate margin change.
type Row struct {
	Component string `json:"component"`

	MarginPrior   Percent `json:"marginPrior"`
	MarginCurrent Percent `json:"marginCurrent"`
	WeightPrior   Percent `json:"weightPrior"`
	WeightCurrent Percent `json:"weightCurrent"`

	DeltaMargin BasisPoints `json:"deltaMarginBps"`
	DeltaWeight BasisPoints `json:"deltaWeightBps"`

	Performance BasisPoints `json:"performanceBps"`
	Mix         BasisPoints `json:"mixBps"`
	Total       BasisPoints `json:"totalBps"`
}

// DominantEffect names the larger of the two effects, the one that drove the
// component's contribution.
func (r Row) DominantEffect() string {
	if math.Abs(float64(r.Mix)) > math.Abs(float64(r.Performance)) {
		return "mix"
	}
	return "performance"
}

// Summary is the portfolio-level reduction of an attribution.
type Summary struct {
	MarginPrior   Percent `json:"marginPrior"`
	MarginCurrent Percent `json:"marginCurrent"`

	// Change is the observed aggregate margin movement.
	Change BasisPoints `json:"changeBps"`

	// Column sums. Total must reproduce Change, that is the whole point.
	Performance BasisPoints `json:"performanceBps"`
	Mix         BasisPoints `json:"mixBps"`
	Total       BasisPoints `json:"totalBps"`

	// Residual is Total - Change in bps, kept for inspection. It is
	// guaranteed within Tolerance, NewAttribution fails otherwise.
	Residual float64 `json:"residualBps"`
}

// NewAttribution runs the decomposition over the portfolio.
//
// The computation is single-pass per stage: exact money totals first, then
// the derived fields and effects of each row (independent of each other
// given the totals), then one compensated reduction per effect column, and
// finally the reconciliation guard. Any invalid figure aborts the whole
// computation, there is no partial result.
func NewAttribution(p *Portfolio) (*Attribution, error) {
	if p == nil || p.Len() == 0 {
		return nil, fmt.Errorf("empty portfolio, nothing to attribute: %w", ErrInvalidInput)
	}

	a := &Attribution{
		Name:           p.Name(),
		PriorLabel:     p.Label(Prior),
		CurrentLabel:   p.Label(Current),
		Currency:       p.Currency(),
		RevenuePrior:   p.TotalRevenue(Prior),
		RevenueCurrent: p.TotalRevenue(Current),
		ProfitPrior:    p.TotalProfit(Prior),
		ProfitCurrent:  p.TotalProfit(Current),
		Rows:           make([]Row, 0, p.Len()),
	}

	// Aggregate margins. Component revenues are strictly positive so the
	// revenue totals cannot be zero.
	marginPrior := a.ProfitPrior.Ratio(a.RevenuePrior)
	marginCurrent := a.ProfitCurrent.Ratio(a.RevenueCurrent)
	if !isFinite(marginPrior, marginCurrent) {
		return nil, fmt.Errorf("aggregate margin: %w", ErrNotFinite)
	}

	for c := range p.Components() {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		m0, m1 := c.Margin(Prior), c.Margin(Current)
		w0 := c.Revenue(Prior).Ratio(a.RevenuePrior)
		w1 := c.Revenue(Current).Ratio(a.RevenueCurrent)
		if !isFinite(m0, m1, w0, w1) {
			return nil, fmt.Errorf("component %q: margin or weight: %w", c.ID(), ErrNotFinite)
		}

		deltaMargin := (m1 - m0) * 10000
		deltaWeight := (w1 - w0) * 10000
		performance := deltaMargin * w0
		mix := deltaWeight * (m1 - marginCurrent)
		total := performance + mix
		if !isFinite(deltaMargin, deltaWeight, performance, mix, total) {
			return nil, fmt.Errorf("component %q: effect: %w", c.ID(), ErrNotFinite)
		}

		a.Rows = append(a.Rows, Row{
			Component:     c.ID(),
			MarginPrior:   PercentOf(m0),
			MarginCurrent: PercentOf(m1),
			WeightPrior:   PercentOf(w0),
			WeightCurrent: PercentOf(w1),
			DeltaMargin:   BasisPoints(deltaMargin),
			DeltaWeight:   BasisPoints(deltaWeight),
			Performance:   BasisPoints(performance),
			Mix:           BasisPoints(mix),
			Total:         BasisPoints(total),
		})
	}

	perf := make([]float64, len(a.Rows))
	mix := make([]float64, len(a.Rows))
	for i, r := range a.Rows {
		perf[i] = float64(r.Performance)
		mix[i] = float64(r.Mix)
	}
	sumPerformance := sumCompensated(perf)
	sumMix := sumCompensated(mix)
	sumTotal := sumPerformance + sumMix
	change := (marginCurrent - marginPrior) * 10000

	a.Summary = Summary{
		MarginPrior:   PercentOf(marginPrior),
		MarginCurrent: PercentOf(marginCurrent),
		Change:        BasisPoints(change),
		Performance:   BasisPoints(sumPerformance),
		Mix:           BasisPoints(sumMix),
		Total:         BasisPoints(sumTotal),
		Residual:      sumTotal - change,
	}

	// Reconciliation guard. The decomposition is additive by construction,
	// so a residual beyond float rounding reveals a broken formula, never a
	// data problem.
	if !equalWithinTolerance(sumTotal, change) {
		return nil, fmt.Errorf("sum of effects %.6f bps vs margin change %.6f bps: %w", sumTotal, change, ErrTieOut)
	}

	return a, nil
}

// WeightSums returns the plain sums of both weight columns, as ratios.
// Valid attributions keep both within Tolerance of 1.
func (a *Attribution) WeightSums() (prior, current float64) {
	wp := make([]float64, len(a.Rows))
	wc := make([]float64, len(a.Rows))
	for i, r := range a.Rows {
		wp[i] = float64(r.WeightPrior) / 100
		wc[i] = float64(r.WeightCurrent) / 100
	}
	return floats.Sum(wp), floats.Sum(wc)
}

// Drivers returns the rows sorted by absolute contribution, largest first.
// Rows with equal contributions keep their portfolio order.
func (a *Attribution) Drivers() []Row {
	drivers := make([]Row, len(a.Rows))
	copy(drivers, a.Rows)
	sort.SliceStable(drivers, func(i, j int) bool {
		return math.Abs(float64(drivers[i].Total)) > math.Abs(float64(drivers[j].Total))
	})
	return drivers
}
