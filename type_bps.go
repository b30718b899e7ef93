package marginbridge

import "fmt"

// BasisPoints holds a margin or weight movement in basis points, 1/100th of
// a percentage point. Attribution effects are reported as BasisPoints.
type BasisPoints float64

// BpsOf converts a plain ratio delta into basis points.
func BpsOf(delta float64) BasisPoints {
	return BasisPoints(10000 * delta)
}

func (b BasisPoints) Equal(c BasisPoints) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := b - c
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (b BasisPoints) String() string {
	return fmt.Sprintf("%.2f bps", b)
}

// SignedString renders the movement with an explicit sign.
// An exact zero (no movement at all) is rendered as a "-".
func (b BasisPoints) SignedString() string {
	if b == 0 {
		return "-"
	}
	return fmt.Sprintf("%+.2f bps", b)
}
