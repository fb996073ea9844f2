package contour

import (
	"image"

	"github.com/ironsheep/edge-vectorize/internal/geometry"
)

// border is one traced boundary. Index 0 of a border list is always the
// image frame, a virtual hole border that encloses everything.
type border struct {
	points []geometry.Point
	hole   bool
	parent int // index into the border list, -1 for the frame
}

// neighbour offsets in counterclockwise order as seen on screen (Y down),
// starting east.
var neighbours = [8]image.Point{
	{1, 0},   // E
	{1, -1},  // NE
	{0, -1},  // N
	{-1, -1}, // NW
	{-1, 0},  // W
	{-1, 1},  // SW
	{0, 1},   // S
	{1, 1},   // SE
}

// direction returns the neighbour index of the offset (dx, dy).
func direction(dx, dy int) int {
	for i, n := range neighbours {
		if n.X == dx && n.Y == dy {
			return i
		}
	}
	return 0
}

// labelGrid is a zero-padded copy of a binary mask. The one pixel border of
// zeros means neighbour lookups never leave the slice.
type labelGrid struct {
	f      []int32
	stride int // width + 2
	width  int
	height int
}

// newLabelGrid copies the nonzero pixels of mask inside r as 1.
func newLabelGrid(mask *image.Gray, r image.Rectangle, keep func(x, y int) bool) *labelGrid {
	w, h := r.Dx(), r.Dy()
	g := &labelGrid{
		f:      make([]int32, (w+2)*(h+2)),
		stride: w + 2,
		width:  w,
		height: h,
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.GrayAt(r.Min.X+x, r.Min.Y+y).Y == 0 {
				continue
			}
			if keep != nil && !keep(r.Min.X+x, r.Min.Y+y) {
				continue
			}
			g.f[(y+1)*g.stride+x+1] = 1
		}
	}
	return g
}

// followBorders runs the Suzuki-Abe border following algorithm over the
// grid and returns every outer and hole border with its parent.
//
// Points are returned in unpadded grid coordinates shifted by offset.
//
// Reference: S. Suzuki and K. Abe, "Topological Structural Analysis of
// Digitized Binary Images by Border Following", CVGIP 30(1), 1985.
func followBorders(g *labelGrid, offset image.Point) []border {
	borders := []border{{hole: true, parent: -1}}
	nbd := int32(1)

	for y := 1; y <= g.height; y++ {
		lnbd := int32(1)
		for x := 1; x <= g.width; x++ {
			idx := y*g.stride + x
			v := g.f[idx]
			if v == 0 {
				continue
			}

			start, hole := false, false
			startFrom := 0
			switch {
			case v == 1 && g.f[idx-1] == 0:
				start, startFrom = true, x-1
			case v >= 1 && g.f[idx+1] == 0:
				start, startFrom, hole = true, x+1, true
				if v > 1 {
					lnbd = v
				}
			}

			if start {
				nbd++

				// The parent depends on the type of the border last met
				// on this row: same type shares its parent, a different
				// type is itself the parent.
				prev := int(lnbd - 1)
				parent := prev
				if borders[prev].hole == hole {
					parent = borders[prev].parent
				}

				pts := g.trace(x, y, startFrom, y, nbd, offset)
				borders = append(borders, border{points: pts, hole: hole, parent: parent})
			}

			if cur := g.f[idx]; cur != 1 {
				lnbd = abs32(cur)
			}
		}
	}

	return borders
}

// trace follows one border starting at (x, y), entered from the zero pixel
// (fromX, fromY), labelling it with nbd.
func (g *labelGrid) trace(x, y, fromX, fromY int, nbd int32, offset image.Point) []geometry.Point {
	at := func(px, py int) int32 { return g.f[py*g.stride+px] }
	pt := func(px, py int) geometry.Point {
		return geometry.Point{X: px - 1 + offset.X, Y: py - 1 + offset.Y}
	}

	// Clockwise search around the start for the first nonzero neighbour.
	d0 := direction(fromX-x, fromY-y)
	first := -1
	for k := 0; k < 8; k++ {
		d := (d0 - k + 8) % 8
		if at(x+neighbours[d].X, y+neighbours[d].Y) != 0 {
			first = d
			break
		}
	}
	if first < 0 {
		// isolated pixel
		g.f[y*g.stride+x] = -nbd
		return []geometry.Point{pt(x, y)}
	}

	x1, y1 := x+neighbours[first].X, y+neighbours[first].Y
	x2, y2 := x1, y1
	x3, y3 := x, y

	var pts []geometry.Point
	for {
		pts = append(pts, pt(x3, y3))

		// Counterclockwise search around the current pixel, starting just
		// after the previous one.
		d := direction(x2-x3, y2-y3)
		eastIsZero := false
		x4, y4 := x2, y2
		for k := 1; k <= 8; k++ {
			dd := (d + k) % 8
			nx, ny := x3+neighbours[dd].X, y3+neighbours[dd].Y
			if at(nx, ny) != 0 {
				x4, y4 = nx, ny
				break
			}
			if dd == 0 {
				eastIsZero = true
			}
		}

		cur := y3*g.stride + x3
		if eastIsZero {
			g.f[cur] = -nbd
		} else if g.f[cur] == 1 {
			g.f[cur] = nbd
		}

		if x4 == x && y4 == y && x3 == x1 && y3 == y1 {
			break
		}
		x2, y2 = x3, y3
		x3, y3 = x4, y4
	}

	return pts
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
