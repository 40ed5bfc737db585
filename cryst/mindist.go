package cryst

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	// minDistTableMargin is the asymmetric-unit margin (Å) used when building
	// the min-distance table; every pair of canonical images is retained, so
	// the table always has a real entry per pair.
	minDistTableMargin = 4.0

	// noContactSentinel marks pairs with no recorded contact (Å²); such
	// entries are reported as 0 after square-rooting.
	noContactSentinel = 10000.0

	// RedundantSiteCutoff is the distance (Å) below which a component counts
	// as a near-duplicate of a lower-indexed one, e.g. for CIF export.
	RedundantSiteCutoff = 0.5
)

// MinDistanceTable returns the symmetric n×n matrix of minimum observed
// interatomic distances in Å, zero diagonal. Contacts shorter than
// minDistance are ignored unless they connect distinct components or distinct
// symmetry images (so genuine overlaps still register); pass a negative
// minDistance to keep every contact. Pairs with no contact below the internal
// sentinel report 0.
func (s *Structure) MinDistanceTable(minDistance float64) *mat.SymDense {
	s.ensureTable(minDistTableMargin)

	n := len(s.comps)
	sq := make([][]float64, n)
	for i := range sq {
		sq[i] = make([]float64, n)
		for j := range sq[i] {
			sq[i][j] = noContactSentinel
		}
	}

	minSq := minDistance * minDistance
	if minDistance < 0 {
		minSq = -1
	}
	for hi := range s.hoods {
		h := &s.hoods[hi]
		for _, nb := range h.Neighbours {
			if nb.Dist2 >= sq[h.Index][nb.Index] {
				continue
			}
			if nb.Dist2 > minSq ||
				(h.Index != nb.Index && h.UniqueSymIndex != nb.SymIndex) {
				sq[h.Index][nb.Index] = nb.Dist2
			}
		}
	}

	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			v := sq[i][j]
			if v > noContactSentinel-1 {
				v = 0
			}
			out.SetSym(i, j, math.Sqrt(v))
		}
		// Diagonal is zero by definition; self-image contacts are not "the
		// distance of a site to itself".
	}

	return out
}

// RedundantSites lists components lying closer than RedundantSiteCutoff to a
// lower-indexed component: near-duplicates that exporters flag or skip.
func (s *Structure) RedundantSites() []int {
	table := s.MinDistanceTable(-1)

	var out []int
	n := len(s.comps)
	for k := 1; k < n; k++ {
		for l := 0; l < k; l++ {
			if table.At(l, k) < RedundantSiteCutoff {
				out = append(out, k)

				break
			}
		}
	}

	return out
}
