package dist

// Position is a site in fractional coordinates. Values may lie outside
// [0,1); BuildTable reduces with wraparound.
type Position struct {
	X, Y, Z float64
}

// Neighbour is one symmetry-related contact seen from a site's canonical
// image.
type Neighbour struct {
	// Index is the component index of the neighbouring site.
	Index int

	// SymIndex identifies which symmetry image of that site was contacted
	// (row index into the symmetry source's equivalent list).
	SymIndex int

	// Dist2 is the squared minimum-image distance in Å².
	Dist2 float64
}

// Hood is the neighbour list of one component. Neighbours appear in insertion
// order: component-major, then symmetry-index-minor. The list is NOT sorted
// by distance.
type Hood struct {
	// Index is the component this list belongs to.
	Index int

	// UniqueSymIndex is the symmetry index of the canonical image used as the
	// distance origin for this component.
	UniqueSymIndex int

	// Neighbours holds every retained contact, including self-images of the
	// component at other symmetry indices.
	Neighbours []Neighbour
}
