package marginbridge

import "errors"

// Attribution is all-or-nothing: any of these errors aborts the whole
// computation, there is no partial-result mode. Errors are wrapped with the
// offending component so the caller can fix the data at the source.
var (
	// ErrInvalidInput reports an empty or malformed dataset: no components,
	// duplicate or blank identifiers, negative revenue, missing or
	// contradictory profit and cost figures.
	ErrInvalidInput = errors.New("invalid input")

	// ErrZeroRevenue reports a component with zero revenue in either period.
	// Its margin is a division by zero and the attribution is undefined.
	ErrZeroRevenue = errors.New("zero revenue, margin is undefined")

	// ErrNotFinite reports a derived field that is NaN or infinite.
	ErrNotFinite = errors.New("result is not finite")

	// ErrTieOut reports a reconciliation failure: the summed effects do not
	// reproduce the observed margin change within tolerance. This guards
	// against a broken decomposition, it is not a data problem.
	ErrTieOut = errors.New("effects do not tie out with the margin change")
)
