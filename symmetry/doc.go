// Package symmetry defines the space-group collaborator surface consumed by
// the distance engine, plus Group, a provider built from an explicit list of
// symmetry operators.
//
// The package deliberately contains no space-group algebra: it does not
// derive operators from Hermann–Mauguin symbols, close generator sets, or
// compute asymmetric units. Callers supply the full operator list (identity
// included) and the axis-aligned asymmetric-unit bounds; Group merely applies
// the operators in a stable order.
//
// Fractional-coordinate conventions: operators act as x' = R·x + t; returned
// equivalents are NOT reduced into [0,1) — reduction is the consumer's
// business (distance kernels reduce with wraparound).
package symmetry
