// Package quadtree partitions geotagged points into rectangular regions.
// A tree starts as a single leaf covering the root rectangle; whenever a
// leaf exceeds its capacity it splits into four equal quadrants and
// redistributes its points, so every stable leaf holds at most capacity
// points.
package quadtree

import (
	"errors"
	"strings"

	"geosplit/internal/models"
)

// MaxDepth bounds how far a leaf may split. Halving a 180 degree extent 48
// times exhausts float64 midpoint resolution long before this, so a leaf
// that still exceeds capacity at MaxDepth holds coincident or
// near-coincident points that no further split could separate. Such a leaf
// absorbs inserts past capacity instead of recursing forever.
const MaxDepth = 48

// ErrInvalidCapacity is returned by New for a non-positive capacity, which
// would otherwise make every insert split indefinitely.
var ErrInvalidCapacity = errors.New("quadtree: capacity must be positive")

// Path is the sequence of quadrant choices from the root to a leaf.
type Path []Quadrant

// String concatenates the quadrant codes, e.g. "SWNE". The root leaf has an
// empty path and an empty string.
func (p Path) String() string {
	var sb strings.Builder
	for _, q := range p {
		sb.WriteString(q.String())
	}
	return sb.String()
}

// Leaf is one non-empty region produced by enumeration: the path that
// reaches it and its points in insertion order.
type Leaf struct {
	Path   Path
	Points []models.Point
}

// node is either a leaf holding points or an internal node holding exactly
// four children; children == nil means leaf.
type node struct {
	bounds   Bounds
	depth    int
	points   []models.Point
	children *[4]*node
}

// Tree is a region quadtree. Construction is sequential: each Insert
// completes, including any cascading splits, before the next begins.
type Tree struct {
	root     *node
	capacity int
	size     int
}

// New creates a tree whose root leaf covers bounds and splits once it holds
// more than capacity points.
func New(bounds Bounds, capacity int) (*Tree, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &Tree{
		root:     &node{bounds: bounds},
		capacity: capacity,
	}, nil
}

// Len returns the number of points inserted so far.
func (t *Tree) Len() int { return t.size }

// Capacity returns the per-leaf capacity shared by every node.
func (t *Tree) Capacity() int { return t.capacity }

// Insert routes the point to the leaf whose rectangle contains it, splitting
// that leaf if the insert pushes it past capacity. Coordinates outside the
// root rectangle are not rejected; they route by the same midpoint
// comparisons and land in a boundary leaf.
func (t *Tree) Insert(p models.Point) {
	t.root.insert(p, t.capacity)
	t.size++
}

func (n *node) insert(p models.Point, capacity int) {
	if n.children != nil {
		n.child(p).insert(p, capacity)
		return
	}
	n.points = append(n.points, p)
	if len(n.points) > capacity && n.depth < MaxDepth {
		n.split(capacity)
	}
}

func (n *node) child(p models.Point) *node {
	return n.children[n.bounds.Quadrant(p.Latitude, p.Longitude)]
}

// split turns a leaf into an internal node. Redistribution goes through the
// children's own insert, so a child that receives every point splits again
// in the same call until the points separate or MaxDepth stops it.
func (n *node) split(capacity int) {
	quads := n.bounds.Split()
	var children [4]*node
	for q := range children {
		children[q] = &node{bounds: quads[q], depth: n.depth + 1}
	}
	points := n.points
	n.points = nil
	n.children = &children
	for _, p := range points {
		n.child(p).insert(p, capacity)
	}
}

// Leaves enumerates every non-empty leaf in a fixed depth-first order: SW,
// SE, NW, NE at each internal node. The result is built fresh on every call
// with copied paths and point slices, so repeated calls on an unchanged tree
// yield identical, independent values.
func (t *Tree) Leaves() []Leaf {
	var leaves []Leaf
	t.root.appendLeaves(nil, &leaves)
	return leaves
}

func (n *node) appendLeaves(path Path, leaves *[]Leaf) {
	if n.children != nil {
		for q := SouthWest; q <= NorthEast; q++ {
			n.children[q].appendLeaves(append(path, q), leaves)
		}
		return
	}
	if len(n.points) == 0 {
		return
	}
	leaf := Leaf{
		Path:   append(Path(nil), path...),
		Points: append([]models.Point(nil), n.points...),
	}
	*leaves = append(*leaves, leaf)
}
