package symmetry

import "errors"

// Sentinel errors for provider construction. Match with errors.Is.
var (
	// ErrNoOps indicates an empty operator list was passed to NewGroup.
	ErrNoOps = errors.New("symmetry: operator list is empty")

	// ErrBadAsymUnit indicates asymmetric-unit bounds outside (0,1].
	ErrBadAsymUnit = errors.New("symmetry: asymmetric unit bounds must lie in (0,1]")
)

// Op is a single symmetry operator acting on fractional coordinates as
// x' = Rot·x + Trans.
type Op struct {
	Rot   [3][3]float64
	Trans [3]float64
}

// Identity returns the identity operator.
func Identity() Op {
	return Op{Rot: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// Apply transforms a fractional coordinate by the operator.
func (op Op) Apply(x, y, z float64) (float64, float64, float64) {
	return op.Rot[0][0]*x + op.Rot[0][1]*y + op.Rot[0][2]*z + op.Trans[0],
		op.Rot[1][0]*x + op.Rot[1][1]*y + op.Rot[1][2]*z + op.Trans[1],
		op.Rot[2][0]*x + op.Rot[2][1]*y + op.Rot[2][2]*z + op.Trans[2]
}

// Source is the space-group surface the distance engine consumes. Equivalents
// must return exactly Multiplicity() rows in a deterministic order that is
// stable across calls; AsymUnit returns the axis-aligned upper bounds of the
// asymmetric unit in fractional coordinates (lower bounds are 0).
type Source interface {
	Equivalents(x, y, z float64) [][3]float64
	Multiplicity() int
	AsymUnit() (xMax, yMax, zMax float64)
}
