package cryst

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xtal-go/xtal/clock"
	"github.com/xtal-go/xtal/dist"
	"github.com/xtal-go/xtal/lattice"
	"github.com/xtal-go/xtal/symmetry"
)

// ScaleDisableThreshold is the scale factor below which a cost evaluator is
// considered switched off and returns 0 without touching the caches.
const ScaleDisableThreshold = 1e-5

// Option mutates construction parameters. Constructors panic only on
// nonsensical values (programmer error), never on data.
type Option func(*Structure)

// WithLogger injects a structured logger; cache rebuilds emit Debug records.
// The default logger discards everything.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("cryst: WithLogger: logger must not be nil")
	}

	return func(s *Structure) { s.log = l }
}

// WithExactDistances switches the distance engine to the exact float64
// kernel instead of the default fixed-point one.
func WithExactDistances() Option {
	return func(s *Structure) { s.tableOpts.Quantize = false }
}

// WithTableWorkers sets the goroutine bound for the distance scan. Must be
// non-negative; 0 or 1 keeps the scan serial.
func WithTableWorkers(n int) Option {
	if n < 0 {
		panic("cryst: WithTableWorkers: worker count must be non-negative")
	}

	return func(s *Structure) { s.tableOpts.Workers = n }
}

// Structure is a unit cell plus symmetry, scatterers, species and the derived
// caches. See the package documentation for the cache dependency graph.
type Structure struct {
	cell *lattice.Cell
	sym  symmetry.Source
	log  *slog.Logger

	species     map[SpeciesID]*Species
	byName      map[string]*Species
	nextSpecies SpeciesID
	// speciesClock tracks registry membership; formal charges feed the
	// bond-valence cost, so its cache depends on this clock.
	speciesClock clock.Clock

	scatterers []Scatterer
	// scattererListClock tracks additions/removals; individual scatterer
	// clocks track mutation.
	scattererListClock clock.Clock

	comps     []Component
	compClock clock.Clock

	useDynPop   bool
	dynPopClock clock.Clock

	hoods       []dist.Hood
	tableClock  clock.Clock
	tableMargin float64
	tableOpts   dist.Options

	bumpPar       map[pairKey]BumpMergePar
	bumpParClock  clock.Clock
	bumpScale     float64
	bumpCost      float64
	bumpCostClock clock.Clock

	bondRo        map[pairKey]float64
	bondParClock  clock.Clock
	bondScale     float64
	bondSums      map[int]float64
	bondCalcClock clock.Clock
	bondCost      float64
	bondCostClock clock.Clock

	stats Stats
}

// New builds an empty structure over the given cell and symmetry source. The
// dynamical occupancy correction is enabled by default.
func New(cell *lattice.Cell, sym symmetry.Source, opts ...Option) (*Structure, error) {
	if cell == nil {
		return nil, ErrNilCell
	}
	if sym == nil {
		return nil, ErrNilSource
	}

	s := &Structure{
		cell:      cell,
		sym:       sym,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		species:   make(map[SpeciesID]*Species),
		byName:    make(map[string]*Species),
		useDynPop: true,
		tableOpts: dist.DefaultOptions(),
		bumpPar:   make(map[pairKey]BumpMergePar),
		bumpScale: 1,
		bondRo:    make(map[pairKey]float64),
		bondScale: 1,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Cell returns the unit cell. Resizing it invalidates the distance table on
// the next read.
func (s *Structure) Cell() *lattice.Cell { return s.cell }

// Multiplicity returns the space-group multiplicity.
func (s *Structure) Multiplicity() int { return s.sym.Multiplicity() }

// AddSpecies registers a species and returns its handle-carrying instance.
// Names must be unique within the structure.
func (s *Structure) AddSpecies(name string, formalCharge float64, dynPopIndex int) (*Species, error) {
	if _, dup := s.byName[name]; dup {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateSpecies, name)
	}

	s.nextSpecies++
	sp := &Species{id: s.nextSpecies, name: name, formalCharge: formalCharge, dynPopIndex: dynPopIndex}
	s.species[sp.id] = sp
	s.byName[name] = sp
	s.speciesClock.Tick()

	return sp, nil
}

// RemoveSpecies deregisters a species and drops every pairwise parameter
// entry referencing it. Scatterers still pointing at it keep their pointer
// but behave as unknown-species for parameter lookups (no entries remain).
func (s *Structure) RemoveSpecies(sp *Species) error {
	if err := s.checkSpecies(sp); err != nil {
		return err
	}

	delete(s.species, sp.id)
	delete(s.byName, sp.name)
	for k := range s.bumpPar {
		if k.lo == sp.id || k.hi == sp.id {
			delete(s.bumpPar, k)
		}
	}
	for k := range s.bondRo {
		if k.lo == sp.id || k.hi == sp.id {
			delete(s.bondRo, k)
		}
	}
	s.speciesClock.Tick()
	s.bumpParClock.Tick()
	s.bondParClock.Tick()

	return nil
}

// FindSpecies resolves a species by name.
func (s *Structure) FindSpecies(name string) (*Species, error) {
	sp, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSpeciesNotFound, name)
	}

	return sp, nil
}

// AddScatterer attaches a scatterer; its components join the component list
// on the next read.
func (s *Structure) AddScatterer(sc Scatterer) {
	s.scatterers = append(s.scatterers, sc)
	s.scattererListClock.Tick()
}

// RemoveScatterer detaches a scatterer previously added.
func (s *Structure) RemoveScatterer(sc Scatterer) error {
	for i, have := range s.scatterers {
		if have == sc {
			s.scatterers = append(s.scatterers[:i], s.scatterers[i+1:]...)
			s.scattererListClock.Tick()

			return nil
		}
	}

	return ErrScattererNotFound
}

// ScatteringComponents materializes the component list (rebuilding lazily)
// and returns it. The slice is owned by the structure; callers must not
// mutate it. Rebuilds allocate fresh storage, so a previously returned slice
// keeps the values it had. DynPopCorr fields are populated when the dynamical
// correction is enabled.
func (s *Structure) ScatteringComponents() []Component {
	s.ensureDynPop()

	return s.comps
}

// ComponentCount returns the current number of scattering components.
func (s *Structure) ComponentCount() int {
	s.ensureComponents()

	return len(s.comps)
}

// UnitCellContents returns the total atom count of one unit cell:
// Σ multiplicity · occupancy · dynamical correction.
func (s *Structure) UnitCellContents() float64 {
	s.ensureDynPop()

	total := 0.0
	mult := float64(s.sym.Multiplicity())
	for i := range s.comps {
		total += mult * s.comps[i].Occupancy * s.comps[i].DynPopCorr
	}

	return total
}

// Stats returns the cache recomputation counters.
func (s *Structure) Stats() Stats { return s.stats }

func (s *Structure) checkSpecies(sps ...*Species) error {
	for _, sp := range sps {
		if sp == nil || s.species[sp.id] != sp {
			name := "<nil>"
			if sp != nil {
				name = sp.name
			}

			return fmt.Errorf("%w: %q", ErrSpeciesNotFound, name)
		}
	}

	return nil
}

// ensureComponents rebuilds the component list when the scatterer set or any
// scatterer changed since the last build. Correction factors start at 1; the
// dynamical pass (ensureDynPop) fills them in once the distance table is
// available.
func (s *Structure) ensureComponents() {
	if s.compClock.After(&s.scattererListClock) {
		stale := false
		for _, sc := range s.scatterers {
			if !s.compClock.After(sc.Clock()) {
				stale = true

				break
			}
		}
		if !stale {
			return
		}
	}

	// Fresh storage: slices handed out before this rebuild keep their values.
	comps := make([]Component, 0, len(s.comps))
	for _, sc := range s.scatterers {
		for _, c := range sc.Components() {
			c.DynPopCorr = 1
			comps = append(comps, c)
		}
	}
	s.comps = comps
	s.stats.ComponentRebuilds++
	s.compClock.Tick()
	s.dynPopClock.Reset()
	s.log.Debug("component list rebuilt", "components", len(s.comps))
}

// tableRebuildMargin is the asymmetric-unit margin (Å) every table rebuild
// uses: the largest margin any internal consumer requests (the bond-valence
// pass). Building wide once means a later larger-margin request never
// invalidates dependents that were already fresh.
const tableRebuildMargin = bondTableMargin

// ensureTable rebuilds the distance table when the component list or the cell
// metric outran it, or when the caller needs a larger asymmetric-unit margin
// than the cached build used. Rebuilds widen the requested margin to
// tableRebuildMargin so one build settles every consumer.
func (s *Structure) ensureTable(margin float64) {
	s.ensureComponents()
	if s.tableClock.After(&s.compClock, s.cell.MetricClock()) && margin <= s.tableMargin {
		return
	}
	if margin < tableRebuildMargin {
		margin = tableRebuildMargin
	}

	pos := make([]dist.Position, len(s.comps))
	for i := range s.comps {
		pos[i] = dist.Position{X: s.comps[i].X, Y: s.comps[i].Y, Z: s.comps[i].Z}
	}
	opts := s.tableOpts
	opts.AsymUnitMargin = margin

	hoods, err := dist.BuildTable(pos, s.sym, s.cell, opts)
	if err != nil {
		// Inputs are validated at construction; reaching this is a bug.
		panic("cryst: distance table build failed: " + err.Error())
	}
	s.hoods = hoods
	s.tableMargin = margin
	s.stats.TableBuilds++
	s.tableClock.Tick()
	s.log.Debug("distance table rebuilt",
		"components", len(s.comps), "margin", margin, "quantized", opts.Quantize)
}
