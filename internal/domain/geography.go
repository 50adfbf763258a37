package domain

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64
	Lon float64
}

// StateGeography locates one state for map rendering: a centroid used to
// anchor markers and labels, plus an optional boundary ring in drawing
// order when an outline file was loaded.
type StateGeography struct {
	State    string
	Centroid Geo
	Boundary []Geo
}

// Geography is an immutable lookup of state locations. Iteration order is
// the order states were supplied, which map charts use as draw order.
type Geography struct {
	states  []StateGeography
	byState map[string]int
}

// NewGeography builds a lookup from state locations. Later duplicates of a
// state replace earlier ones.
func NewGeography(states []StateGeography) Geography {
	g := Geography{byState: make(map[string]int, len(states))}
	for _, s := range states {
		if i, ok := g.byState[s.State]; ok {
			g.states[i] = s
			continue
		}
		g.byState[s.State] = len(g.states)
		g.states = append(g.states, s)
	}
	return g
}

// Empty reports whether the lookup holds no states.
func (g Geography) Empty() bool { return len(g.states) == 0 }

// Len returns the number of states in the lookup.
func (g Geography) Len() int { return len(g.states) }

// States returns all state locations in draw order. The slice is a copy.
func (g Geography) States() []StateGeography {
	return append([]StateGeography(nil), g.states...)
}

// Centroid returns the anchor coordinate for a state.
func (g Geography) Centroid(state string) (Geo, bool) {
	i, ok := g.byState[state]
	if !ok {
		return Geo{}, false
	}
	return g.states[i].Centroid, true
}

// referenceStates pins the states every dashboard covers, with approximate
// centroids. Loaded files may add states to a build but never shrink this
// set; the resolver backfills any of these that an input file omits.
var referenceStates = []StateGeography{
	{State: "Maharashtra", Centroid: Geo{Lat: 19.7515, Lon: 75.7139}},
	{State: "Delhi", Centroid: Geo{Lat: 28.7041, Lon: 77.1025}},
	{State: "Karnataka", Centroid: Geo{Lat: 15.3173, Lon: 75.7139}},
	{State: "Tamil Nadu", Centroid: Geo{Lat: 11.1271, Lon: 78.6569}},
	{State: "Rajasthan", Centroid: Geo{Lat: 27.0238, Lon: 74.2179}},
	{State: "Uttar Pradesh", Centroid: Geo{Lat: 26.8467, Lon: 80.9462}},
	{State: "West Bengal", Centroid: Geo{Lat: 22.9868, Lon: 87.8550}},
}

// ReferenceStates returns the names of the states every dashboard covers.
func ReferenceStates() []string {
	names := make([]string, len(referenceStates))
	for i, s := range referenceStates {
		names[i] = s.State
	}
	return names
}

// BuiltinGeography returns the compiled-in centroid table used when no
// boundary file is available. Markers only, no outlines.
func BuiltinGeography() Geography {
	return NewGeography(referenceStates)
}
