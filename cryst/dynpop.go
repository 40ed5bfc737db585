package cryst

import "math"

// Dynamical occupancy thresholds. Empirical values kept for compatibility
// with the established behavior.
const (
	// DefaultOverlapDist is the contact distance (Å) below which two
	// identical-type sites are considered overlapping.
	DefaultOverlapDist = 1.0

	// DefaultMergeDist is the distance (Å) below which overlapping sites are
	// treated as fully merged.
	DefaultMergeDist = 0.5
)

// SetUseDynPopCorr toggles the dynamical occupancy correction. Toggling
// invalidates the component list so factors are recomputed (or reset to 1) on
// the next read.
func (s *Structure) SetUseDynPopCorr(on bool) {
	s.useDynPop = on
	s.dynPopClock.Reset()
	s.scattererListClock.Tick()
}

// DynPopFactor returns the dynamical occupancy correction factor of component
// i: 1 for isolated or unknown-species sites, 1/n for n exactly coincident
// identical sites (0.5 for a site on a two-fold special position).
func (s *Structure) DynPopFactor(i int) (float64, error) {
	s.ensureDynPop()
	if i < 0 || i >= len(s.comps) {
		return 0, ErrComponentNotFound
	}

	return s.comps[i].DynPopCorr, nil
}

// ensureDynPop recomputes per-component correction factors when the distance
// table outran them. For every neighbour of the same DynPopIndex closer than
// DefaultOverlapDist, the overlap fraction accumulates; the factor is
// 1/(1+Σ). Distances under DefaultMergeDist count as full coincidence.
// Factors live on the component list; a rebuild resets them to 1 before this
// pass runs.
func (s *Structure) ensureDynPop() {
	s.ensureComponents()
	if !s.useDynPop {
		return
	}
	s.ensureTable(DefaultOverlapDist)
	if s.dynPopClock.After(&s.tableClock) {
		return
	}

	const overlapDist, mergeDist = DefaultOverlapDist, DefaultMergeDist
	overlapSq := overlapDist * overlapDist
	for i := range s.comps {
		if s.comps[i].Species == nil {
			s.comps[i].DynPopCorr = 1

			continue
		}
		id := s.comps[i].Species.DynPopIndex()

		corr := 0.0
		for _, nb := range s.hoods[i].Neighbours {
			other := s.comps[nb.Index].Species
			if other == nil || other.DynPopIndex() != id {
				continue
			}
			if nb.Dist2 >= overlapSq {
				continue
			}
			d := math.Sqrt(nb.Dist2) - mergeDist
			if d < 0 {
				d = 0
			}
			corr += math.Abs((overlapDist - d - mergeDist) / (overlapDist - mergeDist))
		}
		s.comps[i].DynPopCorr = 1 / (1 + corr)
	}
	s.stats.DynPopRuns++
	s.dynPopClock.Tick()
	s.log.Debug("dynamical occupancy recomputed", "components", len(s.comps))
}
