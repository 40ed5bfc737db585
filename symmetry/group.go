package symmetry

// Default asymmetric-unit bounds: the whole cell. Providers that cannot
// compute a tighter unit stay correct, only slower downstream.
const (
	DefaultXMax = 1.0
	DefaultYMax = 1.0
	DefaultZMax = 1.0
)

// GroupOption mutates group construction parameters.
type GroupOption func(*Group)

// WithAsymUnit sets the axis-aligned asymmetric-unit upper bounds. Values
// must lie in (0,1]; NewGroup validates.
func WithAsymUnit(xMax, yMax, zMax float64) GroupOption {
	return func(g *Group) {
		g.xMax, g.yMax, g.zMax = xMax, yMax, zMax
	}
}

// Group is a Source backed by an explicit operator list. Operator order is
// the order given at construction and never changes, so Equivalents is
// deterministic.
type Group struct {
	ops              []Op
	xMax, yMax, zMax float64
}

// NewGroup builds a Group from the complete operator list of a space group
// (identity included). The list must be non-empty.
func NewGroup(ops []Op, opts ...GroupOption) (*Group, error) {
	if len(ops) == 0 {
		return nil, ErrNoOps
	}

	g := &Group{
		ops:  append([]Op(nil), ops...),
		xMax: DefaultXMax,
		yMax: DefaultYMax,
		zMax: DefaultZMax,
	}
	for _, opt := range opts {
		opt(g)
	}
	if !boundOK(g.xMax) || !boundOK(g.yMax) || !boundOK(g.zMax) {
		return nil, ErrBadAsymUnit
	}

	return g, nil
}

// P1 returns the trivial group: identity only, full-cell asymmetric unit.
func P1() *Group {
	g, _ := NewGroup([]Op{Identity()})
	return g
}

// Equivalents applies every operator to (x,y,z); row i corresponds to op i.
func (g *Group) Equivalents(x, y, z float64) [][3]float64 {
	out := make([][3]float64, len(g.ops))
	for i, op := range g.ops {
		ex, ey, ez := op.Apply(x, y, z)
		out[i] = [3]float64{ex, ey, ez}
	}

	return out
}

// Multiplicity returns the number of operators.
func (g *Group) Multiplicity() int { return len(g.ops) }

// AsymUnit returns the asymmetric-unit upper bounds.
func (g *Group) AsymUnit() (xMax, yMax, zMax float64) {
	return g.xMax, g.yMax, g.zMax
}

func boundOK(v float64) bool { return v > 0 && v <= 1 }
