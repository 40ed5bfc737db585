// Package cryst assembles a periodic crystal structure and derives the
// symmetry-aware quantities used by structure-solution cost functions: the
// neighbour/distance table, the dynamical occupancy correction, the
// bump-merge steric penalty, the bond-valence penalty and the min-distance
// table.
//
// A Structure owns a species registry, a set of scatterers (anything that can
// materialize scattering components), the pairwise parameter maps, and a set
// of derived caches chained by logical clocks (package clock):
//
//	scatterers ──► component list ──► distance table ──► dyn. occupancy
//	                                        │               bump-merge cost
//	cell metric ────────────────────────────┘               bond-valence cost
//
// Every derived artifact is recomputed lazily, on read, when any of its
// declared dependencies carries a newer clock; mutating a site's coordinates
// therefore invalidates everything downstream without any explicit
// cache-clearing call. Repeated reads without intervening writes return
// cached values and never recompute (observable through Stats).
//
// Degenerate inputs are not errors: components without a species are excluded
// from species-dependent aggregations, and contacts without a configured
// pairwise parameter are simply not penalized.
//
// The package is not safe for concurrent use; every read may rebuild caches.
// Concurrent evaluators must externally serialize access or hold separate
// Structures.
package cryst
