package contour

import (
	"errors"
	"image"

	"github.com/ironsheep/edge-vectorize/internal/geometry"
)

// ErrNoEdgeMap is returned when Extract is called without an edge map.
var ErrNoEdgeMap = errors.New("contour: nil edge map")

// Hierarchy links one contour of a Set to its neighbours. Every field is an
// index into Set.Contours, or -1 when there is no such contour.
type Hierarchy struct {
	Next       int // next contour with the same parent
	Prev       int // previous contour with the same parent
	FirstChild int
	Parent     int
}

// Set is the result of one extraction: contours in discovery order with a
// hierarchy entry and a hole flag per contour.
type Set struct {
	Contours  []geometry.Contour
	Hierarchy []Hierarchy
	Hole      []bool
}

// Len returns the number of contours in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Contours)
}

// Follower extracts contours from binary edge maps with Suzuki-Abe border
// following. The zero value is ready to use.
type Follower struct{}

// NewFollower returns a Follower.
func NewFollower() *Follower {
	return &Follower{}
}

// Extract traces the borders of the nonzero pixels in edges, filters and
// nests them according to r and reduces each border according to a.
// Contour points are in the coordinate space of edges.
func (f *Follower) Extract(edges *image.Gray, r RetrievalMode, a ApproximationMode) (*Set, error) {
	if !r.Valid() {
		return nil, &ModeError{Kind: "retrieval", Value: r.String(), Valid: RetrievalModeNames()}
	}
	if !a.Valid() {
		return nil, &ModeError{Kind: "approximation", Value: a.String(), Valid: ApproximationModeNames()}
	}
	if edges == nil {
		return nil, ErrNoEdgeMap
	}

	b := edges.Bounds()
	if b.Empty() {
		return &Set{}, nil
	}

	var nodes []node
	if r == RetrievalFloodFill {
		nodes = floodFillNodes(edges)
	} else {
		g := newLabelGrid(edges, b, nil)
		nodes = selectBorders(followBorders(g, b.Min), r)
	}

	return buildSet(nodes, a), nil
}

// node is a selected border with its parent resolved to an index into the
// selected list.
type node struct {
	points []geometry.Point
	hole   bool
	parent int
}

// selectBorders filters a followBorders result down to the borders r
// returns. The frame at index 0 is never part of the output.
func selectBorders(borders []border, r RetrievalMode) []node {
	// index maps a border index to its position in the output, -1 if dropped.
	index := make([]int, len(borders))
	for i := range index {
		index[i] = -1
	}

	var nodes []node
	for i := 1; i < len(borders); i++ {
		bd := borders[i]
		parent := -1

		switch r {
		case RetrievalExternal:
			if bd.hole || bd.parent != 0 {
				continue
			}
		case RetrievalList:
		case RetrievalCComp:
			// Holes hang off the outer border they belong to; every outer
			// border is top level, even one sitting inside a hole.
			if bd.hole && bd.parent > 0 {
				parent = index[bd.parent]
			}
		case RetrievalTree:
			if bd.parent > 0 {
				parent = index[bd.parent]
			}
		}

		index[i] = len(nodes)
		nodes = append(nodes, node{points: bd.points, hole: bd.hole, parent: parent})
	}

	return nodes
}

// floodFillNodes labels the 8-connected components of edges and traces each
// component on its own. Each component contributes its outer border at the
// top level and its holes as children of that border.
func floodFillNodes(edges *image.Gray) []node {
	b := edges.Bounds()
	width := b.Dx()
	labels, comps := labelComponents(edges)

	var nodes []node
	for _, c := range comps {
		label := c.label
		keep := func(x, y int) bool {
			return labels[(y-b.Min.Y)*width+(x-b.Min.X)] == label
		}

		r := c.bounds.Add(b.Min)
		borders := followBorders(newLabelGrid(edges, r, keep), r.Min)

		outer := -1
		for i := 1; i < len(borders); i++ {
			bd := borders[i]
			parent := -1
			if bd.hole {
				parent = outer
			} else if outer < 0 {
				outer = len(nodes)
			}
			nodes = append(nodes, node{points: bd.points, hole: bd.hole, parent: parent})
		}
	}

	return nodes
}

// buildSet approximates every node and fills in the sibling and child links.
func buildSet(nodes []node, a ApproximationMode) *Set {
	set := &Set{
		Contours:  make([]geometry.Contour, len(nodes)),
		Hierarchy: make([]Hierarchy, len(nodes)),
		Hole:      make([]bool, len(nodes)),
	}

	// lastChild tracks the most recent child per parent; the key -1 holds
	// the top level.
	lastChild := map[int]int{}

	for i, n := range nodes {
		set.Contours[i] = approximate(n.points, a)
		set.Hole[i] = n.hole
		h := Hierarchy{Next: -1, Prev: -1, FirstChild: -1, Parent: n.parent}

		if prev, ok := lastChild[n.parent]; ok {
			h.Prev = prev
			set.Hierarchy[prev].Next = i
		} else if n.parent >= 0 {
			set.Hierarchy[n.parent].FirstChild = i
		}
		lastChild[n.parent] = i

		set.Hierarchy[i] = h
	}

	return set
}
