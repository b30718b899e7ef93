package marginbridge

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Tolerance bounds the reconciliation residual, both relative to the margin
// change and in absolute basis points. The naive float64 error on realistic
// datasets is around 1e-13, so 1e-9 leaves a wide guard band.
const Tolerance = 1e-9

// sumCompensated returns the Neumaier compensated sum of xs.
// Plain left-to-right summation loses low-order bits when effects of
// opposite signs cancel; the compensation keeps the tie-out residual at the
// rounding error of the individual terms.
func sumCompensated(xs []float64) float64 {
	var sum, comp float64
	for _, x := range xs {
		t := sum + x
		if math.Abs(sum) >= math.Abs(x) {
			comp += (sum - t) + x
		} else {
			comp += (x - t) + sum
		}
		sum = t
	}
	return sum + comp
}

// equalWithinTolerance reports whether a and b agree within Tolerance.
func equalWithinTolerance(a, b float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, Tolerance, Tolerance)
}

// isFinite reports whether every x is a usable number.
func isFinite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
