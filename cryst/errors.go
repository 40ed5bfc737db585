package cryst

import "errors"

// Sentinel errors. Match with errors.Is; wrapped variants carry the offending
// name or index.
var (
	// ErrNilCell indicates a nil *lattice.Cell was passed to New.
	ErrNilCell = errors.New("cryst: cell is nil")

	// ErrNilSource indicates a nil symmetry source was passed to New.
	ErrNilSource = errors.New("cryst: symmetry source is nil")

	// ErrSpeciesNotFound indicates a species that is not registered with this
	// structure (unknown name, foreign or removed *Species).
	ErrSpeciesNotFound = errors.New("cryst: species not found")

	// ErrDuplicateSpecies indicates AddSpecies was called with a name already
	// registered.
	ErrDuplicateSpecies = errors.New("cryst: species name already registered")

	// ErrScattererNotFound indicates RemoveScatterer was called with a
	// scatterer this structure does not own.
	ErrScattererNotFound = errors.New("cryst: scatterer not found")

	// ErrComponentNotFound indicates a component index outside the current
	// scattering-component list.
	ErrComponentNotFound = errors.New("cryst: component index out of range")

	// ErrBadDistance indicates a non-positive or non-finite pairwise distance
	// or bond-valence reference length.
	ErrBadDistance = errors.New("cryst: pairwise distance must be positive and finite")
)
