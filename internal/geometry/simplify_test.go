package geometry

import (
	"math"
	"math/rand"
	"testing"
)

// squareContour returns the pixel-by-pixel border of an axis-aligned square,
// traced clockwise from its top-left corner.
func squareContour(x0, y0, size int) Contour {
	c := make(Contour, 0, 4*size)
	for x := x0; x < x0+size; x++ {
		c = append(c, Point{x, y0})
	}
	for y := y0; y < y0+size; y++ {
		c = append(c, Point{x0 + size, y})
	}
	for x := x0 + size; x > x0; x-- {
		c = append(c, Point{x, y0 + size})
	}
	for y := y0 + size; y > y0; y-- {
		c = append(c, Point{x0, y})
	}
	return c
}

// noisyLoop returns a closed loop around (cx, cy) with jittered radius.
func noisyLoop(rng *rand.Rand, cx, cy, n int, radius float64) Contour {
	c := make(Contour, 0, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		r := radius + rng.Float64()*radius*0.3
		c = append(c, Point{
			X: cx + int(math.Round(r*math.Cos(a))),
			Y: cy + int(math.Round(r*math.Sin(a))),
		})
	}
	return c
}

// isSubsequence reports whether sub appears in full in order.
func isSubsequence(sub Polygon, full Contour) bool {
	j := 0
	for i := 0; i < len(full) && j < len(sub); i++ {
		if full[i] == sub[j] {
			j++
		}
	}
	return j == len(sub)
}

func TestPerimeter(t *testing.T) {
	tests := []struct {
		name    string
		contour Contour
		want    float64
	}{
		{"empty", nil, 0},
		{"single point", Contour{{3, 4}}, 0},
		{"two points counts both directions", Contour{{0, 0}, {3, 4}}, 10},
		{"unit square", Contour{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, 4},
		{"3-4-5 triangle", Contour{{0, 0}, {3, 0}, {3, 4}}, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Perimeter(tt.contour)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Perimeter: got %.4f, want %.4f", got, tt.want)
			}
		})
	}
}

func TestSimplify_SquareToCorners(t *testing.T) {
	contour := squareContour(25, 25, 49)

	got := NewSimplifier(DefaultEpsilonFactor).Simplify(contour)

	want := Polygon{{25, 25}, {74, 25}, {74, 74}, {25, 74}}
	if len(got) != len(want) {
		t.Fatalf("got %d points %v, want %v", len(got), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSimplify_ShortContours(t *testing.T) {
	s := NewSimplifier(DefaultEpsilonFactor)

	if got := s.Simplify(nil); len(got) != 0 {
		t.Errorf("empty contour: got %v, want empty", got)
	}

	single := Contour{{7, 9}}
	got := s.Simplify(single)
	if len(got) != 1 || got[0] != single[0] {
		t.Errorf("single point: got %v, want %v", got, single)
	}

	pair := Contour{{0, 0}, {10, 0}}
	got = s.Simplify(pair)
	if len(got) != 2 {
		t.Errorf("two points: got %v, want both kept", got)
	}
	if got.Drawable() {
		t.Error("two-point polygon must not be drawable")
	}
}

func TestSimplify_DoesNotModifyInput(t *testing.T) {
	contour := squareContour(0, 0, 10)
	orig := make(Contour, len(contour))
	copy(orig, contour)

	NewSimplifier(DefaultEpsilonFactor).Simplify(contour)

	for i := range orig {
		if contour[i] != orig[i] {
			t.Fatalf("input modified at %d: got %v, want %v", i, contour[i], orig[i])
		}
	}
}

func TestSimplify_ZeroFactorKeepsCorners(t *testing.T) {
	// Only collinear points may be dropped when the tolerance is zero.
	contour := Contour{{0, 0}, {5, 0}, {10, 0}, {10, 10}, {0, 10}}

	got := NewSimplifier(0).Simplify(contour)

	want := Polygon{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSimplify_ZeroFactorKeepsNonCollinearPoints(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	contour := noisyLoop(rng, 100, 100, 40, 50)

	got := NewSimplifier(0).Simplify(contour)

	if len(got) < len(contour)/2 {
		t.Errorf("zero factor removed too much: %d of %d points kept", len(got), len(contour))
	}
}

func TestSimplify_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	factors := []float64{0, 0.005, 0.01, 0.02, 0.04, 0.08, 0.2, 1}

	for trial := 0; trial < 25; trial++ {
		contour := noisyLoop(rng, 200, 200, 20+rng.Intn(200), 20+rng.Float64()*150)

		prevLen := math.MaxInt
		for _, f := range factors {
			s := NewSimplifier(f)
			got := s.Simplify(contour)

			if len(got) > len(contour) {
				t.Fatalf("trial %d factor %v: result longer than input (%d > %d)", trial, f, len(got), len(contour))
			}
			if !isSubsequence(got, contour) {
				t.Fatalf("trial %d factor %v: result is not an ordered subsequence", trial, f)
			}
			if len(got) > 0 && got[0] != contour[0] {
				t.Fatalf("trial %d factor %v: first point %v, want %v", trial, f, got[0], contour[0])
			}
			if len(got) > prevLen {
				t.Fatalf("trial %d factor %v: %d points, more than %d at a smaller factor", trial, f, len(got), prevLen)
			}
			prevLen = len(got)

			again := SimplifyEpsilon(Contour(got), s.Epsilon(contour))
			if len(again) != len(got) {
				t.Fatalf("trial %d factor %v: not idempotent, %d -> %d points", trial, f, len(got), len(again))
			}
			for i := range got {
				if again[i] != got[i] {
					t.Fatalf("trial %d factor %v: point %d changed from %v to %v", trial, f, i, got[i], again[i])
				}
			}
		}
	}
}

func TestSimplifier_NegativeFactor(t *testing.T) {
	contour := squareContour(0, 0, 20)
	if eps := NewSimplifier(-1).Epsilon(contour); eps != 0 {
		t.Errorf("Epsilon with negative factor: got %v, want 0", eps)
	}
}
