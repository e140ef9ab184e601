package quadtree

// Quadrant identifies one of the four children of an internal node.
// The constant order is also the leaf enumeration order.
type Quadrant int

const (
	SouthWest Quadrant = iota
	SouthEast
	NorthWest
	NorthEast
)

var quadrantCodes = [...]string{"SW", "SE", "NW", "NE"}

func (q Quadrant) String() string {
	if q < SouthWest || q > NorthEast {
		return "??"
	}
	return quadrantCodes[q]
}

// Bounds is a rectangle in geographic coordinates.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Globe covers the full range of valid coordinates.
var Globe = Bounds{MinLat: -90, MaxLat: 90, MinLon: -180, MaxLon: 180}

func (b Bounds) midLat() float64 { return (b.MinLat + b.MaxLat) / 2 }
func (b Bounds) midLon() float64 { return (b.MinLon + b.MaxLon) / 2 }

// Quadrant selects the child rectangle for a coordinate. Points exactly on a
// midpoint go to the north/east side. No containment check is made, so
// coordinates outside the rectangle still resolve to one of the four
// quadrants; the same rule applies during split redistribution and internal
// delegation, which keeps routing deterministic for any coordinate.
func (b Bounds) Quadrant(lat, lon float64) Quadrant {
	if lat >= b.midLat() {
		if lon >= b.midLon() {
			return NorthEast
		}
		return NorthWest
	}
	if lon >= b.midLon() {
		return SouthEast
	}
	return SouthWest
}

// Split bisects the rectangle at the midpoint of both axes. The four
// results tile the parent exactly and are indexed by Quadrant.
func (b Bounds) Split() [4]Bounds {
	midLat, midLon := b.midLat(), b.midLon()
	var quads [4]Bounds
	quads[SouthWest] = Bounds{MinLat: b.MinLat, MaxLat: midLat, MinLon: b.MinLon, MaxLon: midLon}
	quads[SouthEast] = Bounds{MinLat: b.MinLat, MaxLat: midLat, MinLon: midLon, MaxLon: b.MaxLon}
	quads[NorthWest] = Bounds{MinLat: midLat, MaxLat: b.MaxLat, MinLon: b.MinLon, MaxLon: midLon}
	quads[NorthEast] = Bounds{MinLat: midLat, MaxLat: b.MaxLat, MinLon: midLon, MaxLon: b.MaxLon}
	return quads
}
