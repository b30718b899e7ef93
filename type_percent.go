package marginbridge

import "fmt"

// Percent holds a ratio expressed in percentage points (17% is Percent(17)).
// Margins and revenue weights are reported as Percent.
type Percent float64

// PercentOf converts a plain ratio into percentage points.
func PercentOf(ratio float64) Percent {
	return Percent(100 * ratio)
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}
