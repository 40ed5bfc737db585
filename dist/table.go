package dist

import (
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/xtal-go/xtal/lattice"
	"github.com/xtal-go/xtal/symmetry"
)

// tablePos is one retained symmetry image: owning component, symmetry index
// and fractional coordinates reduced to [0,1).
type tablePos struct {
	comp, sym int
	x, y, z   float64
}

// bounds holds the per-axis keep window around the asymmetric unit. A point p
// is kept on an axis when p > min (wraparound margin below 0 ≡ near 1) or
// p < max (unit plus margin); the strict max0 bounds select canonical images.
type bounds struct {
	restrict            bool
	xMax0, yMax0, zMax0 float64
	xMax, yMax, zMax    float64
	xMin, yMin, zMin    float64
}

// BuildTable computes the neighbour table: for every component, the squared
// minimum-image distances from its canonical symmetry image to every retained
// image of every component. See the package documentation for ordering and
// self-image guarantees.
//
// Complexity: O(n²·N) without asymmetric-unit restriction, ~O(n·N·k) with it
// (n components, N = multiplicity, k = images retained per component).
func BuildTable(positions []Position, src symmetry.Source, cell *lattice.Cell, opts Options) ([]Hood, error) {
	if cell == nil {
		return nil, ErrNilCell
	}
	if src == nil {
		return nil, ErrNilSource
	}
	if opts.AsymUnitMargin < 0 || math.IsNaN(opts.AsymUnitMargin) || math.IsInf(opts.AsymUnitMargin, 1) {
		return nil, ErrBadMargin
	}
	if opts.Workers < 0 {
		return nil, ErrBadWorkers
	}

	hoods := make([]Hood, len(positions))
	for i := range hoods {
		hoods[i].Index = i
	}
	if len(positions) == 0 {
		return hoods, nil
	}

	vPos, unique := gatherImages(positions, src, makeBounds(src, cell, opts.AsymUnitMargin), hoods)

	if opts.Quantize {
		quantScan(vPos, unique, cell, opts.Workers, hoods)
	} else {
		exactScan(vPos, unique, cell, opts.Workers, hoods)
	}

	return hoods, nil
}

func makeBounds(src symmetry.Source, cell *lattice.Cell, margin float64) bounds {
	xMax0, yMax0, zMax0 := src.AsymUnit()
	la, lb, lc := cell.Lengths()
	mx, my, mz := margin/la, margin/lb, margin/lc

	return bounds{
		restrict: xMax0*yMax0*zMax0 < RestrictThreshold,
		xMax0:    xMax0, yMax0: yMax0, zMax0: zMax0,
		xMax: xMax0 + mx, yMax: yMax0 + my, zMax: zMax0 + mz,
		xMin: 1 - mx, yMin: 1 - my, zMin: 1 - mz,
	}
}

// gatherImages reduces every symmetry image of every component into [0,1),
// applies the asymmetric-unit restriction and selects each component's
// canonical image (first image strictly inside the unmargined bounds).
// Returns the retained images in component-major, symmetry-index-minor order
// and, per component, the index of its canonical image in that list.
func gatherImages(positions []Position, src symmetry.Source, b bounds, hoods []Hood) ([]tablePos, []int) {
	vPos := make([]tablePos, 0, len(positions)*src.Multiplicity())
	unique := make([]int, len(positions))

	for i, p := range positions {
		eq := src.Equivalents(p.X, p.Y, p.Z)
		first := -1
		unique[i] = -1
		for j := range eq {
			x, y, z := wrap(eq[j][0]), wrap(eq[j][1]), wrap(eq[j][2])
			if b.restrict {
				if !(z > b.zMin || z < b.zMax) ||
					!(x > b.xMin || x < b.xMax) ||
					!(y > b.yMin || y < b.yMax) {
					continue
				}
				vPos = append(vPos, tablePos{i, j, x, y, z})
				if first < 0 {
					first = len(vPos) - 1
				}
				if unique[i] < 0 && x < b.xMax0 && y < b.yMax0 && z < b.zMax0 {
					unique[i] = len(vPos) - 1
					hoods[i].UniqueSymIndex = j
				}
			} else {
				vPos = append(vPos, tablePos{i, j, x, y, z})
				if unique[i] < 0 {
					unique[i] = len(vPos) - 1
					hoods[i].UniqueSymIndex = j
				}
			}
		}

		// Non-convex asymmetric units can leave an orbit without an image
		// strictly inside the bounds; fall back to the first retained image,
		// or force-retain the first image when the margin window missed all
		// of them. Either way every component has a canonical origin.
		if unique[i] < 0 {
			if first >= 0 {
				unique[i] = first
				hoods[i].UniqueSymIndex = vPos[first].sym
			} else {
				vPos = append(vPos, tablePos{i, 0, wrap(eq[0][0]), wrap(eq[0][1]), wrap(eq[0][2])})
				unique[i] = len(vPos) - 1
				hoods[i].UniqueSymIndex = 0
			}
		}
	}

	return vPos, unique
}

// exactScan is the float64 distance kernel.
func exactScan(vPos []tablePos, unique []int, cell *lattice.Cell, workers int, hoods []Hood) {
	m := cell.OrthMatrix()
	runScan(len(hoods), workers, func(i int) {
		u := vPos[unique[i]]
		nb := make([]Neighbour, 0, len(vPos)-1)
		for j := range vPos {
			if j == unique[i] {
				continue
			}
			dx := fold(vPos[j].x - u.x)
			dy := fold(vPos[j].y - u.y)
			dz := fold(vPos[j].z - u.z)
			// Orthonormalization matrix is upper triangular; skip zeros.
			cx := m[0][0]*dx + m[0][1]*dy + m[0][2]*dz
			cy := m[1][1]*dy + m[1][2]*dz
			cz := m[2][2] * dz
			nb = append(nb, Neighbour{vPos[j].comp, vPos[j].sym, cx*cx + cy*cy + cz*cz})
		}
		hoods[i].Neighbours = nb
	})
}

// runScan executes scan(i) for every component, serially or on a bounded
// errgroup. Each scan owns hoods[i] exclusively, so parallel output is
// identical to serial output.
func runScan(n, workers int, scan func(int)) {
	if workers <= 1 {
		for i := 0; i < n; i++ {
			scan(i)
		}

		return
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			scan(i)

			return nil
		})
	}
	_ = g.Wait() // scans never fail
}

// wrap reduces a fractional coordinate into [0,1).
func wrap(v float64) float64 {
	v = math.Mod(v, 1)
	if v < 0 {
		v++
	}

	return v
}

// fold reduces a fractional displacement to its minimum image in [0,0.5].
func fold(d float64) float64 {
	d = math.Mod(d, 1)
	if d < 0 {
		d++
	}
	if d > 0.5 {
		d = 1 - d
	}

	return d
}
