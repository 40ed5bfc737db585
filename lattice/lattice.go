package lattice

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/xtal-go/xtal/clock"
)

// ErrBadCell is returned when lattice parameters cannot form a valid cell:
// non-positive or non-finite lengths, angles outside (0,π), or a degenerate
// (zero-volume) metric.
var ErrBadCell = errors.New("lattice: invalid cell parameters")

// Cell is a crystal unit cell. Lengths are in Ångströms, angles in radians.
// All mutation goes through Resize, which ticks the metric clock.
type Cell struct {
	a, b, c            float64
	alpha, beta, gamma float64
	orth, orthInv      [3][3]float64
	vol                float64
	metricClock        clock.Clock
}

// New builds a Cell from lengths a,b,c (Å) and angles alpha,beta,gamma (rad).
// Returns ErrBadCell for parameters that do not define a positive-volume cell.
func New(a, b, c, alpha, beta, gamma float64) (*Cell, error) {
	cell := &Cell{}
	if err := cell.Resize(a, b, c, alpha, beta, gamma); err != nil {
		return nil, err
	}

	return cell, nil
}

// Cubic builds a cell with a=b=c and all angles π/2. Convenience for tests
// and orthogonal structures.
func Cubic(a float64) (*Cell, error) {
	return New(a, a, a, math.Pi/2, math.Pi/2, math.Pi/2)
}

// Resize replaces the lattice parameters, recomputes both transforms and
// ticks the metric clock. The cell is unchanged on error.
func (c *Cell) Resize(a, b, cc, alpha, beta, gamma float64) error {
	if !(a > 0 && b > 0 && cc > 0) ||
		math.IsInf(a, 1) || math.IsInf(b, 1) || math.IsInf(cc, 1) {
		return ErrBadCell
	}
	if !(alpha > 0 && alpha < math.Pi) ||
		!(beta > 0 && beta < math.Pi) ||
		!(gamma > 0 && gamma < math.Pi) {
		return ErrBadCell
	}

	ca, cb, cg := math.Cos(alpha), math.Cos(beta), math.Cos(gamma)
	sg := math.Sin(gamma)
	v2 := 1 - ca*ca - cb*cb - cg*cg + 2*ca*cb*cg
	if v2 <= 0 || sg == 0 {
		return ErrBadCell
	}
	v := math.Sqrt(v2)

	// Upper-triangular orthonormalization matrix, a along x.
	orth := [3][3]float64{
		{a, b * cg, cc * cb},
		{0, b * sg, cc * (ca - cb*cg) / sg},
		{0, 0, cc * v / sg},
	}

	m := mat.NewDense(3, 3, []float64{
		orth[0][0], orth[0][1], orth[0][2],
		orth[1][0], orth[1][1], orth[1][2],
		orth[2][0], orth[2][1], orth[2][2],
	})
	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		return ErrBadCell
	}

	c.a, c.b, c.c = a, b, cc
	c.alpha, c.beta, c.gamma = alpha, beta, gamma
	c.orth = orth
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			c.orthInv[i][j] = inv.At(i, j)
		}
	}
	c.vol = a * b * cc * v
	c.metricClock.Tick()

	return nil
}

// Orthonormalize maps fractional coordinates to Cartesian Ångströms.
func (c *Cell) Orthonormalize(x, y, z float64) (float64, float64, float64) {
	return c.orth[0][0]*x + c.orth[0][1]*y + c.orth[0][2]*z,
		c.orth[1][1]*y + c.orth[1][2]*z,
		c.orth[2][2] * z
}

// Fractionalize maps Cartesian Ångströms back to fractional coordinates.
func (c *Cell) Fractionalize(x, y, z float64) (float64, float64, float64) {
	return c.orthInv[0][0]*x + c.orthInv[0][1]*y + c.orthInv[0][2]*z,
		c.orthInv[1][0]*x + c.orthInv[1][1]*y + c.orthInv[1][2]*z,
		c.orthInv[2][0]*x + c.orthInv[2][1]*y + c.orthInv[2][2]*z
}

// OrthMatrix returns a copy of the fractional→orthonormal matrix.
func (c *Cell) OrthMatrix() [3][3]float64 { return c.orth }

// Lengths returns the three cell edge lengths in Å.
func (c *Cell) Lengths() (a, b, cc float64) { return c.a, c.b, c.c }

// Angles returns the three cell angles in radians.
func (c *Cell) Angles() (alpha, beta, gamma float64) { return c.alpha, c.beta, c.gamma }

// Volume returns the unit-cell volume in Å³.
func (c *Cell) Volume() float64 { return c.vol }

// MetricClock exposes the clock ticked on every metric change. Downstream
// caches declare it as a dependency.
func (c *Cell) MetricClock() *clock.Clock { return &c.metricClock }
