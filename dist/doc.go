// Package dist builds symmetry-aware interatomic distance tables for periodic
// structures under the minimum-image convention.
//
// Given the fractional coordinates of the independent sites, a symmetry
// source and a unit cell, BuildTable enumerates the symmetry-equivalent
// images of every site, optionally restricts them to the neighbourhood of the
// asymmetric unit, and records the squared Cartesian distance from one
// canonical image per site to every retained image of every site:
//
//	hoods, err := dist.BuildTable(positions, group, cell, dist.DefaultOptions())
//
// Two distance kernels are provided and produce geometrically equivalent
// tables:
//
//   - exact       — float64 arithmetic throughout.
//   - quantized   — fractional coordinates snapped to 2^14 fixed-point steps,
//     with bit-masked wraparound and branch-light sign folding; agreement
//     with the exact kernel is within one quantization step (2^-14 of a cell
//     edge) per axis.
//
// Neighbour lists follow insertion order (component-major, then
// symmetry-index-minor) and are never distance-sorted; consumers must scan.
// Self-images of a site are included (they reveal special positions), except
// the canonical image's pairing with itself.
//
// The distance scan is independent per site; Options.Workers > 1 runs it on a
// bounded errgroup with output identical to the serial path.
package dist
