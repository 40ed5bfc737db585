package dist_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtal-go/xtal/dist"
	"github.com/xtal-go/xtal/lattice"
	"github.com/xtal-go/xtal/symmetry"
)

// quantTol is the per-distance agreement budget between kernels for a 10 Å
// cubic cell: three axes at 2^-14 of an edge, rounded up generously.
const quantTol = 5e-3

func cubic10(t *testing.T) *lattice.Cell {
	t.Helper()
	cell, err := lattice.Cubic(10)
	require.NoError(t, err)

	return cell
}

func pMinus1(opts ...symmetry.GroupOption) *symmetry.Group {
	inv := symmetry.Op{Rot: [3][3]float64{{-1, 0, 0}, {0, -1, 0}, {0, 0, -1}}}
	g, err := symmetry.NewGroup([]symmetry.Op{symmetry.Identity(), inv}, opts...)
	if err != nil {
		panic(err)
	}

	return g
}

// TestBuildTable_Validation covers the sentinel error paths.
func TestBuildTable_Validation(t *testing.T) {
	cell := cubic10(t)
	pos := []dist.Position{{X: 0.1, Y: 0.1, Z: 0.1}}

	_, err := dist.BuildTable(pos, symmetry.P1(), nil, dist.DefaultOptions())
	assert.ErrorIs(t, err, dist.ErrNilCell)

	_, err = dist.BuildTable(pos, nil, cell, dist.DefaultOptions())
	assert.ErrorIs(t, err, dist.ErrNilSource)

	bad := dist.DefaultOptions()
	bad.AsymUnitMargin = -0.5
	_, err = dist.BuildTable(pos, symmetry.P1(), cell, bad)
	assert.ErrorIs(t, err, dist.ErrBadMargin)

	bad = dist.DefaultOptions()
	bad.AsymUnitMargin = math.NaN()
	_, err = dist.BuildTable(pos, symmetry.P1(), cell, bad)
	assert.ErrorIs(t, err, dist.ErrBadMargin)

	bad = dist.DefaultOptions()
	bad.Workers = -1
	_, err = dist.BuildTable(pos, symmetry.P1(), cell, bad)
	assert.ErrorIs(t, err, dist.ErrBadWorkers)
}

// TestBuildTable_Empty returns an empty table, not an error.
func TestBuildTable_Empty(t *testing.T) {
	hoods, err := dist.BuildTable(nil, symmetry.P1(), cubic10(t), dist.DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, hoods)
}

// TestBuildTable_TwoSitesP1 pins the simplest geometry: two sites in a cubic
// P1 cell, one mutual contact each, distance by Pythagoras under the
// minimum-image convention.
func TestBuildTable_TwoSitesP1(t *testing.T) {
	cell := cubic10(t)
	pos := []dist.Position{
		{X: 0.1, Y: 0.1, Z: 0.1},
		{X: 0.9, Y: 0.1, Z: 0.1}, // 0.2 away through the cell boundary
	}

	for _, quantize := range []bool{false, true} {
		opts := dist.DefaultOptions()
		opts.Quantize = quantize

		hoods, err := dist.BuildTable(pos, symmetry.P1(), cell, opts)
		require.NoError(t, err)
		require.Len(t, hoods, 2)

		for i, h := range hoods {
			assert.Equal(t, i, h.Index)
			assert.Equal(t, 0, h.UniqueSymIndex, "P1 canonical image is the identity")
			require.Len(t, h.Neighbours, 1)
			assert.Equal(t, 1-i, h.Neighbours[0].Index)
			assert.InDelta(t, 2.0, math.Sqrt(h.Neighbours[0].Dist2), quantTol,
				"minimum image crosses the cell boundary: 0.2·10 Å")
		}
	}
}

// TestBuildTable_SelfImageContact verifies special-position detection input:
// a single site under an inversion centre sees its own symmetry image.
func TestBuildTable_SelfImageContact(t *testing.T) {
	cell := cubic10(t)
	pos := []dist.Position{{X: 0.1, Y: 0.1, Z: 0.1}}

	hoods, err := dist.BuildTable(pos, pMinus1(), cell, dist.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, hoods, 1)
	require.Len(t, hoods[0].Neighbours, 1, "one self-image besides the canonical one")

	n := hoods[0].Neighbours[0]
	assert.Equal(t, 0, n.Index, "contact is a self-image")
	assert.Equal(t, 1, n.SymIndex, "the inverted image")
	// image at (0.9,0.9,0.9): folded displacement 0.2 per axis.
	assert.InDelta(t, math.Sqrt(12), math.Sqrt(n.Dist2), quantTol)
}

// TestBuildTable_ExactQuantizedAgree sweeps a handful of sites and checks the
// two kernels agree within quantization error.
func TestBuildTable_ExactQuantizedAgree(t *testing.T) {
	cell, err := lattice.New(9.2, 10.4, 11.8, math.Pi/2, 1.8, math.Pi/2)
	require.NoError(t, err)
	pos := []dist.Position{
		{X: 0.13, Y: 0.27, Z: 0.41},
		{X: 0.55, Y: 0.62, Z: 0.08},
		{X: 0.91, Y: 0.05, Z: 0.77},
	}

	exact := dist.DefaultOptions()
	exact.Quantize = false
	he, err := dist.BuildTable(pos, pMinus1(), cell, exact)
	require.NoError(t, err)

	hq, err := dist.BuildTable(pos, pMinus1(), cell, dist.DefaultOptions())
	require.NoError(t, err)

	require.Equal(t, len(he), len(hq))
	for i := range he {
		require.Equal(t, len(he[i].Neighbours), len(hq[i].Neighbours),
			"kernels must retain identical image sets")
		for j, ne := range he[i].Neighbours {
			nq := hq[i].Neighbours[j]
			assert.Equal(t, ne.Index, nq.Index)
			assert.Equal(t, ne.SymIndex, nq.SymIndex)
			assert.InDelta(t, math.Sqrt(ne.Dist2), math.Sqrt(nq.Dist2), 2e-2)
		}
	}
}

// TestBuildTable_RestrictionMatchesFullCell verifies the asymmetric-unit
// restriction keeps every short contact: distances near the unit boundary
// must match the unrestricted build.
func TestBuildTable_RestrictionMatchesFullCell(t *testing.T) {
	cell := cubic10(t)
	// Site close to the x=0.5 asymmetric-unit boundary of P-1.
	pos := []dist.Position{{X: 0.45, Y: 0.1, Z: 0.1}}

	opts := dist.DefaultOptions()
	opts.Quantize = false

	full, err := dist.BuildTable(pos, pMinus1(), cell, opts)
	require.NoError(t, err)

	restricted, err := dist.BuildTable(pos, pMinus1(symmetry.WithAsymUnit(0.5, 1, 1)), cell, opts)
	require.NoError(t, err)

	require.Len(t, full, 1)
	require.Len(t, restricted, 1)
	require.Len(t, restricted[0].Neighbours, 1,
		"image 0.5 Å past the boundary must be retained by the margin")
	assert.InDelta(t,
		math.Sqrt(full[0].Neighbours[0].Dist2),
		math.Sqrt(restricted[0].Neighbours[0].Dist2), 1e-12)
}

// TestBuildTable_InsertionOrder pins the documented neighbour ordering:
// component-major, then symmetry-index-minor, never distance-sorted.
func TestBuildTable_InsertionOrder(t *testing.T) {
	cell := cubic10(t)
	pos := []dist.Position{
		{X: 0.12, Y: 0.23, Z: 0.34},
		{X: 0.62, Y: 0.71, Z: 0.83},
	}

	hoods, err := dist.BuildTable(pos, pMinus1(), cell, dist.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, hoods, 2)

	want := [][2]int{{0, 1}, {1, 0}, {1, 1}} // (component, symIndex) seen from hood 0
	require.Len(t, hoods[0].Neighbours, len(want))
	for k, n := range hoods[0].Neighbours {
		assert.Equal(t, want[k][0], n.Index, "neighbour %d component", k)
		assert.Equal(t, want[k][1], n.SymIndex, "neighbour %d symmetry index", k)
	}
}

// TestBuildTable_ParallelMatchesSerial verifies the errgroup scan produces
// byte-identical tables.
func TestBuildTable_ParallelMatchesSerial(t *testing.T) {
	cell := cubic10(t)
	pos := make([]dist.Position, 0, 12)
	for i := 0; i < 12; i++ {
		f := float64(i)
		pos = append(pos, dist.Position{X: 0.07 * f, Y: 0.05*f + 0.01, Z: 0.03*f + 0.02})
	}

	serial := dist.DefaultOptions()
	hs, err := dist.BuildTable(pos, pMinus1(), cell, serial)
	require.NoError(t, err)

	parallel := dist.DefaultOptions()
	parallel.Workers = 4
	hp, err := dist.BuildTable(pos, pMinus1(), cell, parallel)
	require.NoError(t, err)

	assert.Equal(t, hs, hp, "parallel scan must be indistinguishable from serial")
}
