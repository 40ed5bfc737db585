// Package xtal is a symmetry-aware crystal structure toolkit: build a unit
// cell, attach scatterers, and get interatomic distance tables, dynamical
// occupancy corrections and structural plausibility costs out.
//
// 🚀 What is xtal?
//
//	A library for crystallographic distance analysis that brings together:
//		• Lattice geometry: triclinic-safe orthonormalization & fractionalization
//		• Space-group symmetry: equivalent positions & asymmetric-unit handling
//		• Distance tables: minimum-image neighbour lists, exact or fixed-point
//		• Dynamical occupancy: automatic correction of overlapping sites
//		• Plausibility costs: steric bump-merge & bond-valence penalties
//		• Lazy caches: logical clocks recompute only what a change outran
//
// ✨ Why choose xtal?
//
//   - Deterministic – neighbour lists and parameter exports have a pinned order
//   - Honest caches – every derived quantity tracks its inputs with clocks
//   - Go-native – explicit errors, options structs, no hidden globals
//
// Everything is organized under five subpackages:
//
//	clock/    — logical clocks for lazy cache invalidation
//	lattice/  — unit cell metrics and coordinate transforms
//	symmetry/ — symmetry operations and group sources
//	dist/     — the interatomic distance table engine
//	cryst/    — structures, species, scatterers and cost evaluators
//
// Quick example:
//
//	cell, _ := lattice.Cubic(5.64)
//	s, _ := cryst.New(cell, symmetry.P1())
//	na, _ := s.AddSpecies("Na+", 1, 11)
//	cl, _ := s.AddSpecies("Cl-", -1, 17)
//	s.AddScatterer(cryst.NewAtom("Na1", 0, 0, 0, 1, na))
//	s.AddScatterer(cryst.NewAtom("Cl1", 0.5, 0, 0, 1, cl))
//	s.SetBumpMergeDistance(na, cl, 2.2)
//	fmt.Println(s.TotalCost())
//
// See each subpackage's doc.go for the full contract.
package xtal
