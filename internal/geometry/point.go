package geometry

import "math"

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int // Horizontal position (0 = leftmost)
	Y int // Vertical position (0 = topmost)
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(float64(q.X-p.X), float64(q.Y-p.Y))
}

// Contour is an ordered, closed loop of points traced along a region
// boundary. The edge from the last point back to the first is implied.
type Contour []Point

// Polygon is a simplified contour. Like a Contour it is closed implicitly.
type Polygon []Point

// Drawable reports whether the polygon has enough vertices to describe a
// closed shape.
func (p Polygon) Drawable() bool {
	return len(p) >= 3
}

// Perimeter returns the closed arc length of the contour: the sum of the
// distances between consecutive points, including the closing edge from the
// last point back to the first.
//
// Contours with fewer than two points have a perimeter of 0.
func Perimeter(c Contour) float64 {
	if len(c) < 2 {
		return 0
	}

	var total float64
	prev := c[len(c)-1]
	for _, p := range c {
		total += prev.Distance(p)
		prev = p
	}
	return total
}
