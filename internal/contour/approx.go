package contour

import (
	"math"

	"github.com/ironsheep/edge-vectorize/internal/geometry"
)

// kcosStraight is the k-cosine at or below which a point is treated as lying
// on a straight run (an angle of roughly 165 degrees or flatter).
const kcosStraight = -0.965

// approximate reduces a traced pixel chain according to mode. The result is
// always an order-preserving subsequence of chain.
func approximate(chain []geometry.Point, mode ApproximationMode) geometry.Contour {
	switch mode {
	case ApproxTC89L1:
		return tehChin(chain, false)
	case ApproxTC89KCOS:
		return tehChin(chain, true)
	default:
		return compressRuns(chain)
	}
}

// compressRuns keeps only the points where the chain changes direction, so
// horizontal, vertical and diagonal runs collapse to their end points.
func compressRuns(chain []geometry.Point) geometry.Contour {
	n := len(chain)
	if n <= 2 {
		return append(geometry.Contour(nil), chain...)
	}

	out := make(geometry.Contour, 0, n/2)
	for i := 0; i < n; i++ {
		prev := chain[(i-1+n)%n]
		cur := chain[i]
		next := chain[(i+1)%n]
		if step(prev, cur) != step(cur, next) {
			out = append(out, cur)
		}
	}
	if len(out) == 0 {
		out = append(out, chain[0])
	}
	return out
}

// step returns the unit move from a to b.
func step(a, b geometry.Point) geometry.Point {
	return geometry.Point{X: sign(b.X - a.X), Y: sign(b.Y - a.Y)}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// tehChin applies Teh-Chin dominant point detection to a closed chain.
//
//  1. Every point gets a region of support: the largest k for which the
//     chord from point i-k to point i+k keeps growing and the point's
//     relative distance from that chord keeps growing.
//  2. Every point gets a significance: the 1-curvature (change of chain
//     direction) for L1, the k-cosine over its region of support for KCOS.
//  3. Points on straight runs are dropped, then non-maxima within half the
//     region of support are suppressed.
//
// Reference: C.-H. Teh and R. T. Chin, "On the Detection of Dominant Points
// on Digital Curves", IEEE PAMI 11(8), 1989.
func tehChin(chain []geometry.Point, kcos bool) geometry.Contour {
	n := len(chain)
	if n <= 4 {
		return compressRuns(chain)
	}

	at := func(i int) geometry.Point { return chain[((i%n)+n)%n] }

	support := make([]int, n)
	significance := make([]float64, n)
	maxK := (n - 1) / 2

	for i := 0; i < n; i++ {
		p := chain[i]

		k := 1
		for k < maxK {
			l1, d1 := chordMetrics(at(i-k), at(i+k), p)
			l2, d2 := chordMetrics(at(i-k-1), at(i+k+1), p)
			if l1 >= l2 {
				break
			}
			if d1 > 0 && d1/l1 >= d2/l2 {
				break
			}
			k++
		}
		support[i] = k

		if kcos {
			significance[i] = kCosine(at(i-k), p, at(i+k))
		} else {
			significance[i] = oneCurvature(at(i-1), p, at(i+1))
		}
	}

	out := make(geometry.Contour, 0, n/4)
	for i := 0; i < n; i++ {
		s := significance[i]
		if kcos && s <= kcosStraight {
			continue
		}
		if !kcos && s == 0 {
			continue
		}

		keep := true
		half := support[i] / 2
		for j := 1; j <= half && keep; j++ {
			if significance[((i-j)%n+n)%n] > s || significance[(i+j)%n] > s {
				keep = false
			}
		}
		if keep {
			out = append(out, chain[i])
		}
	}

	if len(out) == 0 {
		return compressRuns(chain)
	}
	return out
}

// chordMetrics returns the length of chord ab and the distance of p from
// the line through a and b.
func chordMetrics(a, b, p geometry.Point) (length, dist float64) {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	length = math.Hypot(dx, dy)
	if length == 0 {
		return 0, p.Distance(a)
	}
	cross := dx*float64(p.Y-a.Y) - dy*float64(p.X-a.X)
	return length, math.Abs(cross) / length
}

// kCosine returns the cosine of the angle at p between the arms towards a
// and b: 1 for a spike, -1 for a straight line.
func kCosine(a, p, b geometry.Point) float64 {
	ax, ay := float64(a.X-p.X), float64(a.Y-p.Y)
	bx, by := float64(b.X-p.X), float64(b.Y-p.Y)
	den := math.Hypot(ax, ay) * math.Hypot(bx, by)
	if den == 0 {
		return -1
	}
	return (ax*bx + ay*by) / den
}

// oneCurvature returns the absolute change in chain code at p, 0 to 4.
func oneCurvature(prev, p, next geometry.Point) float64 {
	in := step(prev, p)
	out := step(p, next)
	d := direction(out.X, out.Y) - direction(in.X, in.Y)
	d = ((d % 8) + 8) % 8
	if d > 4 {
		d = 8 - d
	}
	return float64(d)
}
