package dist

import "errors"

// Sentinel errors for table construction. Match with errors.Is.
var (
	// ErrNilCell indicates a nil *lattice.Cell was passed to BuildTable.
	ErrNilCell = errors.New("dist: cell is nil")

	// ErrNilSource indicates a nil symmetry source was passed to BuildTable.
	ErrNilSource = errors.New("dist: symmetry source is nil")

	// ErrBadMargin indicates a negative or non-finite asymmetric-unit margin.
	ErrBadMargin = errors.New("dist: asymmetric-unit margin must be finite and non-negative")

	// ErrBadWorkers indicates a negative worker count.
	ErrBadWorkers = errors.New("dist: worker count must be non-negative")
)
