package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// DefaultEpsilonFactor is the fraction of a contour's perimeter used as the
// simplification tolerance when none is configured.
const DefaultEpsilonFactor = 0.04

// Simplifier reduces contours to polygons with a closed-curve
// Douglas-Peucker pass.
//
// The tolerance for each contour is EpsilonFactor times its perimeter, so
// large shapes and small shapes are reduced to a comparable level of detail.
// A factor of 0 keeps every point that is not collinear with its kept
// neighbours. Negative factors are treated as 0.
type Simplifier struct {
	EpsilonFactor float64
}

// NewSimplifier returns a Simplifier with the given epsilon factor.
func NewSimplifier(epsilonFactor float64) Simplifier {
	return Simplifier{EpsilonFactor: epsilonFactor}
}

// Epsilon returns the distance tolerance used for c.
func (s Simplifier) Epsilon(c Contour) float64 {
	return math.Max(s.EpsilonFactor, 0) * Perimeter(c)
}

// Simplify reduces c with a tolerance derived from its perimeter.
//
// Contours with fewer than two points cannot be simplified and are returned
// unchanged. The input slice is never modified.
func (s Simplifier) Simplify(c Contour) Polygon {
	return SimplifyEpsilon(c, s.Epsilon(c))
}

// SimplifyEpsilon reduces c with an absolute distance tolerance.
//
// The loop is closed by repeating its first point, reduced as an open line
// string and the repeated point is dropped again. Because Douglas-Peucker
// always keeps the end points of the line, the first point of c is always
// the first point of the result.
func SimplifyEpsilon(c Contour, epsilon float64) Polygon {
	if len(c) < 2 {
		out := make(Polygon, len(c))
		copy(out, c)
		return out
	}

	ls := make(orb.LineString, 0, len(c)+1)
	for _, p := range c {
		ls = append(ls, orb.Point{float64(p.X), float64(p.Y)})
	}
	ls = append(ls, ls[0])

	reduced, ok := simplify.DouglasPeucker(math.Max(epsilon, 0)).Simplify(ls).(orb.LineString)
	if !ok || len(reduced) < 2 {
		out := make(Polygon, len(c))
		copy(out, c)
		return out
	}

	// drop the closing repeat of the first point
	reduced = reduced[:len(reduced)-1]

	out := make(Polygon, 0, len(reduced))
	for _, p := range reduced {
		out = append(out, Point{X: int(math.Round(p[0])), Y: int(math.Round(p[1]))})
	}
	return out
}
