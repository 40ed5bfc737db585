package cryst

import (
	"math"
	"sort"
)

const (
	// BondValenceB is the universal decay length (Å) of the empirical
	// bond-valence formula v = exp((R0 - d)/B).
	BondValenceB = 0.37

	// bondTableMargin is the asymmetric-unit margin (Å) for valence sums;
	// bonds longer than this contribute negligibly.
	bondTableMargin = 5.0
)

// AddBondValenceRo configures the bond-valence reference length R0 (Å) for a
// species pair. Re-setting overwrites.
func (s *Structure) AddBondValenceRo(a, b *Species, ro float64) error {
	if err := s.checkSpecies(a, b); err != nil {
		return err
	}
	if !(ro > 0) || math.IsInf(ro, 1) {
		return ErrBadDistance
	}

	s.bondRo[makePair(a, b)] = ro
	s.bondParClock.Tick()

	return nil
}

// RemoveBondValenceRo drops a pair's reference length; absent pairs are a
// no-op.
func (s *Structure) RemoveBondValenceRo(a, b *Species) error {
	if err := s.checkSpecies(a, b); err != nil {
		return err
	}

	delete(s.bondRo, makePair(a, b))
	s.bondParClock.Tick()

	return nil
}

// BondValenceRoParams exports the configured reference lengths, ordered by
// handle pair.
func (s *Structure) BondValenceRoParams() []BondValenceEntry {
	out := make([]BondValenceEntry, 0, len(s.bondRo))
	for k, ro := range s.bondRo {
		out = append(out, BondValenceEntry{A: k.lo, B: k.hi, Ro: ro})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}

		return out[i].B < out[j].B
	})

	return out
}

// SetBondValenceScale sets the user scale factor multiplied into the cost.
// Values below ScaleDisableThreshold disable the evaluator.
func (s *Structure) SetBondValenceScale(scale float64) { s.bondScale = scale }

// BondValenceSums returns a copy of the per-component accumulated valences.
// Components without a single contributing bond are absent from the map,
// which is distinct from a sum of exactly zero.
func (s *Structure) BondValenceSums() map[int]float64 {
	s.calcBondValenceSums()

	out := make(map[int]float64, len(s.bondSums))
	for i, v := range s.bondSums {
		out[i] = v
	}

	return out
}

// BondValenceSum returns component i's accumulated valence; ok is false when
// the component has no contributing bonds.
func (s *Structure) BondValenceSum(i int) (sum float64, ok bool) {
	s.calcBondValenceSums()
	sum, ok = s.bondSums[i]

	return sum, ok
}

// BondValenceCost evaluates the charge-consistency penalty:
// Σ (valence sum − formal charge)² over components with at least one
// contributing bond, times the user scale factor. Returns 0 when
// unconfigured or disabled.
func (s *Structure) BondValenceCost() float64 {
	if s.bondScale < ScaleDisableThreshold {
		return 0
	}
	if len(s.bondRo) == 0 {
		return 0
	}

	s.calcBondValenceSums()
	if s.bondCostClock.After(&s.bondCalcClock, &s.speciesClock) {
		return s.bondCost * s.bondScale
	}

	cost := 0.0
	for i, sum := range s.bondSums {
		mismatch := sum - s.comps[i].Species.FormalCharge()
		cost += mismatch * mismatch
	}
	s.bondCost = cost
	s.stats.BondCostRuns++
	s.bondCostClock.Tick()
	s.log.Debug("bond-valence cost recomputed", "cost", cost)

	return s.bondCost * s.bondScale
}

// TotalCost is the combined plausibility penalty consumed by optimizers.
func (s *Structure) TotalCost() float64 {
	return s.BumpMergeCost() + s.BondValenceCost()
}

// calcBondValenceSums accumulates v = occ·dynCorr·exp((R0-d)/B) over every
// neighbour whose species pair has a configured R0.
func (s *Structure) calcBondValenceSums() {
	if len(s.bondRo) == 0 {
		// Clear any sums left over from parameters removed since.
		s.bondSums = nil

		return
	}

	s.ensureDynPop()
	s.ensureTable(bondTableMargin)
	if s.bondCalcClock.After(&s.tableClock, &s.bondParClock, &s.dynPopClock) {
		return
	}

	s.bondSums = make(map[int]float64)
	for hi := range s.hoods {
		h := &s.hoods[hi]
		sp1 := s.comps[h.Index].Species
		if sp1 == nil {
			continue
		}

		n := 0
		val := 0.0
		for _, nb := range h.Neighbours {
			sp2 := s.comps[nb.Index].Species
			if sp2 == nil {
				continue
			}
			ro, ok := s.bondRo[makePair(sp1, sp2)]
			if !ok {
				continue
			}
			occ := s.comps[nb.Index].Occupancy * s.comps[nb.Index].DynPopCorr
			val += occ * math.Exp((ro-math.Sqrt(nb.Dist2))/BondValenceB)
			n++
		}
		if n > 0 {
			s.bondSums[h.Index] = val
		}
	}
	s.stats.BondSumRuns++
	s.bondCalcClock.Tick()
	s.log.Debug("bond-valence sums recomputed", "components", len(s.bondSums))
}
