package marginbridge

import "testing"

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// comp is a helper for test to create a component from revenue and cost consts.
func comp(t *testing.T, id string, priorRevenue, priorCost, currentRevenue, currentCost float64) Component {
	t.Helper()
	c, err := NewComponent(id,
		PnLFromCost(USD(priorRevenue), USD(priorCost)),
		PnLFromCost(USD(currentRevenue), USD(currentCost)),
	)
	if err != nil {
		t.Fatalf("NewComponent(%q): %v", id, err)
	}
	return c
}

// tacoStand builds the worked example used across tests and docs:
// a three-component food stand observed over two years.
//
//	          2024 revenue  2024 cost  2025 revenue  2025 cost
//	Tacos        15000        12450       20000        16600
//	Sides        15000        12000       10000         7800
//	Drinks        5000         3400        5000         4250
func tacoStand(t *testing.T) *Portfolio {
	t.Helper()
	p := NewPortfolio()
	p.SetName("Taco Stand")
	p.SetCurrency("USD")
	p.SetLabels("2024", "2025")
	err := p.Append(
		comp(t, "Tacos", 15000, 12450, 20000, 16600),
		comp(t, "Sides", 15000, 12000, 10000, 7800),
		comp(t, "Drinks", 5000, 3400, 5000, 4250),
	)
	if err != nil {
		t.Fatalf("building taco stand: %v", err)
	}
	return p
}
