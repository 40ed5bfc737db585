package dist

import "github.com/xtal-go/xtal/lattice"

// Fixed-point representation of fractional coordinates: QuantBits significant
// bits per cell edge. Wraparound is a bit mask, minimum-image sign folding is
// a complement-and-mask, so the hot loop carries no modulo and no branches on
// the reduction itself.
const (
	// QuantBits is the fixed-point resolution of the quantized kernel; the
	// quantization error is 2^-QuantBits of a cell edge per axis.
	QuantBits = 14

	fracScale = 1 << QuantBits // one full cell edge
	fracMask  = fracScale - 1
	halfBit   = fracScale >> 1 // sign bit of a displacement
	halfMask  = halfBit - 1
)

// quantize snaps a reduced fractional coordinate to fixed point. The mask
// also renders whole-cell offsets harmless for out-of-range inputs.
func quantize(v float64) int64 {
	return int64(v*fracScale) & fracMask
}

// foldQ reduces a fixed-point displacement to its minimum image: mask off
// whole cells, then mirror the upper half-period onto the lower.
func foldQ(d int64) int64 {
	d &= fracMask
	if d&halfBit != 0 {
		d = ^d & halfMask
	}

	return d
}

// quantScan is the fixed-point distance kernel. The orthonormalization rows
// are pre-divided by the fixed-point scale, so the multiply-accumulate on raw
// integer displacements lands directly in Å.
func quantScan(vPos []tablePos, unique []int, cell *lattice.Cell, workers int, hoods []Hood) {
	m := cell.OrthMatrix()
	m00 := m[0][0] / fracScale
	m01 := m[0][1] / fracScale
	m02 := m[0][2] / fracScale
	m11 := m[1][1] / fracScale
	m12 := m[1][2] / fracScale
	m22 := m[2][2] / fracScale

	xl := make([]int64, len(vPos))
	yl := make([]int64, len(vPos))
	zl := make([]int64, len(vPos))
	for j, p := range vPos {
		xl[j], yl[j], zl[j] = quantize(p.x), quantize(p.y), quantize(p.z)
	}

	runScan(len(hoods), workers, func(i int) {
		ui := unique[i]
		ux, uy, uz := xl[ui], yl[ui], zl[ui]
		nb := make([]Neighbour, 0, len(vPos)-1)
		for j := range vPos {
			if j == ui {
				continue
			}
			dx := foldQ(xl[j] - ux)
			dy := foldQ(yl[j] - uy)
			dz := foldQ(zl[j] - uz)
			cx := m00*float64(dx) + m01*float64(dy) + m02*float64(dz)
			cy := m11*float64(dy) + m12*float64(dz)
			cz := m22 * float64(dz)
			nb = append(nb, Neighbour{vPos[j].comp, vPos[j].sym, cx*cx + cy*cy + cz*cz})
		}
		hoods[i].Neighbours = nb
	})
}
