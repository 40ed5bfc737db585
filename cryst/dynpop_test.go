package cryst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtal-go/xtal/cryst"
)

// TestDynPop_GeneralPositionIsUncorrected: a single site away from every
// symmetry element keeps factor 1.
func TestDynPop_GeneralPositionIsUncorrected(t *testing.T) {
	s := newPMinus1Structure(t)
	na, _ := s.AddSpecies("Na+", 1, 11)
	s.AddScatterer(cryst.NewAtom("Na1", 0.1, 0.2, 0.3, 1, na))

	f, err := s.DynPopFactor(0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, f, 1e-12)
}

// TestDynPop_TwoCoincidentSites pins the documented convention: perfect
// two-fold overlap of identical species gives exactly 0.5.
func TestDynPop_TwoCoincidentSites(t *testing.T) {
	s := newP1Structure(t)
	na, _ := s.AddSpecies("Na+", 1, 11)
	s.AddScatterer(cryst.NewAtom("Na1", 0.25, 0.25, 0.25, 1, na))
	s.AddScatterer(cryst.NewAtom("Na2", 0.25, 0.25, 0.25, 1, na))

	for i := 0; i < 2; i++ {
		f, err := s.DynPopFactor(i)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, f, 1e-9, "component %d", i)
	}
}

// TestDynPop_SpecialPosition: a site on an inversion centre coincides with
// its own symmetry image; the correction must halve it.
func TestDynPop_SpecialPosition(t *testing.T) {
	s := newPMinus1Structure(t)
	na, _ := s.AddSpecies("Na+", 1, 11)
	s.AddScatterer(cryst.NewAtom("Na1", 0, 0, 0, 1, na))

	f, err := s.DynPopFactor(0)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, f, 1e-9)

	assert.InDelta(t, 1.0, s.UnitCellContents(), 1e-9,
		"2 images × occ 1 × corr 0.5 = one atom per cell")
}

// TestDynPop_DifferentSpeciesDoNotMerge: coincident sites of different
// DynPopIndex are not corrected against each other.
func TestDynPop_DifferentSpeciesDoNotMerge(t *testing.T) {
	s := newP1Structure(t)
	na, _ := s.AddSpecies("Na+", 1, 11)
	k, _ := s.AddSpecies("K+", 1, 19)
	s.AddScatterer(cryst.NewAtom("Na1", 0.25, 0.25, 0.25, 1, na))
	s.AddScatterer(cryst.NewAtom("K1", 0.25, 0.25, 0.25, 1, k))

	for i := 0; i < 2; i++ {
		f, err := s.DynPopFactor(i)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, f, 1e-12, "component %d", i)
	}
}

// TestDynPop_UnknownSpeciesDefaultsToOne: nil species is excluded, factor 1,
// even when coincident with another site.
func TestDynPop_UnknownSpeciesDefaultsToOne(t *testing.T) {
	s := newP1Structure(t)
	na, _ := s.AddSpecies("Na+", 1, 11)
	s.AddScatterer(cryst.NewAtom("X1", 0.25, 0.25, 0.25, 1, nil))
	s.AddScatterer(cryst.NewAtom("Na1", 0.25, 0.25, 0.25, 1, na))

	f, err := s.DynPopFactor(0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, f, "unknown species is never corrected")
}

// TestDynPop_Disabled: toggling the correction off resets factors to 1.
func TestDynPop_Disabled(t *testing.T) {
	s := newP1Structure(t)
	na, _ := s.AddSpecies("Na+", 1, 11)
	s.AddScatterer(cryst.NewAtom("Na1", 0.25, 0.25, 0.25, 1, na))
	s.AddScatterer(cryst.NewAtom("Na2", 0.25, 0.25, 0.25, 1, na))

	f, err := s.DynPopFactor(0)
	require.NoError(t, err)
	require.InDelta(t, 0.5, f, 1e-9)

	s.SetUseDynPopCorr(false)
	f, err = s.DynPopFactor(0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, f, "disabled correction must report 1")
}

// TestDynPop_TracksMetricChanges: shrinking the cell can push separated
// sites into overlap; the factors must follow without any explicit
// invalidation call.
func TestDynPop_TracksMetricChanges(t *testing.T) {
	s := newP1Structure(t, cryst.WithExactDistances())
	na, _ := s.AddSpecies("Na+", 1, 11)
	s.AddScatterer(cryst.NewAtom("Na1", 0.1, 0.1, 0.1, 1, na))
	s.AddScatterer(cryst.NewAtom("Na2", 0.21, 0.1, 0.1, 1, na)) // 1.1 Å apart

	f, err := s.DynPopFactor(0)
	require.NoError(t, err)
	require.InDelta(t, 1.0, f, 1e-12, "1.1 Å is beyond the overlap distance")

	alpha, beta, gamma := s.Cell().Angles()
	require.NoError(t, s.Cell().Resize(8, 8, 8, alpha, beta, gamma)) // now 0.88 Å

	f, err = s.DynPopFactor(0)
	require.NoError(t, err)
	// d' = 0.88-0.5, corr = |(1-0.38-0.5)/0.5| = 0.24.
	assert.InDelta(t, 1/1.24, f, 1e-9)
}

func TestDynPop_BadIndex(t *testing.T) {
	s := newP1Structure(t)

	_, err := s.DynPopFactor(0)
	assert.ErrorIs(t, err, cryst.ErrComponentNotFound)
	_, err = s.DynPopFactor(-1)
	assert.ErrorIs(t, err, cryst.ErrComponentNotFound)
}
