package cryst

import (
	"math"

	"github.com/xtal-go/xtal/clock"
)

// SpeciesID is the stable opaque handle of a registered species. Pairwise
// parameter maps are keyed by unordered handle pairs, smaller handle first.
type SpeciesID int

// Species identifies a chemical/scattering species. Instances are created by
// Structure.AddSpecies and are immutable afterwards; identity is the handle,
// not the pointer. The name indexes the structure's registry and the formal
// charge feeds cached costs, so neither may change after registration.
type Species struct {
	id           SpeciesID
	name         string
	formalCharge float64
	dynPopIndex  int
}

// ID returns the species handle.
func (sp *Species) ID() SpeciesID { return sp.id }

// Name returns the unique label used by parameter files ("Na+", "O2-", ...).
func (sp *Species) Name() string { return sp.name }

// FormalCharge returns the expected bond-valence sum of the species.
func (sp *Species) FormalCharge() float64 { return sp.formalCharge }

// DynPopIndex returns the group index for the dynamical occupancy
// correction: only neighbours with an equal index count as "the same atom
// type" (typically the atomic number).
func (sp *Species) DynPopIndex() int { return sp.dynPopIndex }

// Component is one scattering component (an atomic site) of the materialized
// component list. Species may be nil (unknown), which excludes the component
// from every species-dependent aggregation.
type Component struct {
	X, Y, Z    float64
	Occupancy  float64
	Species    *Species
	DynPopCorr float64
}

// Scatterer is anything that contributes scattering components to a
// structure. Its Clock must be ticked on every change that affects the
// produced components; the structure's component list watches it.
type Scatterer interface {
	Components() []Component
	Clock() *clock.Clock
}

// Atom is the elementary single-site Scatterer. Mutators tick the atom's
// clock so dependent caches notice on their next read.
type Atom struct {
	name    string
	x, y, z float64
	occ     float64
	sp      *Species
	clk     clock.Clock
}

// NewAtom builds a single-site scatterer. Species may be nil. Occupancy is
// clamped to [0,1].
func NewAtom(name string, x, y, z, occupancy float64, sp *Species) *Atom {
	a := &Atom{name: name, sp: sp}
	a.SetPosition(x, y, z)
	a.SetOccupancy(occupancy)

	return a
}

// Name returns the atom label.
func (a *Atom) Name() string { return a.name }

// Position returns the fractional coordinates.
func (a *Atom) Position() (x, y, z float64) { return a.x, a.y, a.z }

// SetPosition moves the atom and ticks its clock.
func (a *Atom) SetPosition(x, y, z float64) {
	a.x, a.y, a.z = x, y, z
	a.clk.Tick()
}

// Occupancy returns the nominal occupancy.
func (a *Atom) Occupancy() float64 { return a.occ }

// SetOccupancy clamps to [0,1] and ticks the clock.
func (a *Atom) SetOccupancy(occ float64) {
	a.occ = math.Min(1, math.Max(0, occ))
	a.clk.Tick()
}

// Species returns the species, possibly nil.
func (a *Atom) Species() *Species { return a.sp }

// Components implements Scatterer.
func (a *Atom) Components() []Component {
	return []Component{{X: a.x, Y: a.y, Z: a.z, Occupancy: a.occ, Species: a.sp, DynPopCorr: 1}}
}

// Clock implements Scatterer.
func (a *Atom) Clock() *clock.Clock { return &a.clk }

// pairKey is the canonical unordered species pair: lo ≤ hi. Handle order
// replaces the pointer order a non-moving allocator would give; handles are
// stable for the life of the structure.
type pairKey struct {
	lo, hi SpeciesID
}

func makePair(a, b *Species) pairKey {
	if a.id <= b.id {
		return pairKey{a.id, b.id}
	}

	return pairKey{b.id, a.id}
}

// BumpMergePar holds one pair's steric parameters: the squared minimum
// approach distance and whether the pair may overlap (merge) rather than
// being hard-repelled.
type BumpMergePar struct {
	Dist2      float64
	CanOverlap bool
}

// BumpMergeEntry is one row of the exported bump-merge parameter list.
type BumpMergeEntry struct {
	A, B       SpeciesID
	Dist       float64
	CanOverlap bool
}

// BondValenceEntry is one row of the exported bond-valence parameter list.
type BondValenceEntry struct {
	A, B SpeciesID
	Ro   float64
}

// Stats counts cache recomputations. Intended for tests and diagnostics:
// reads that hit a fresh cache leave every counter unchanged.
type Stats struct {
	ComponentRebuilds uint64
	TableBuilds       uint64
	DynPopRuns        uint64
	BumpCostRuns      uint64
	BondSumRuns       uint64
	BondCostRuns      uint64
}
