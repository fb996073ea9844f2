package contour

import (
	"image"
)

// component is one 8-connected group of foreground pixels.
type component struct {
	label  int32
	bounds image.Rectangle // pixel bounds, Max exclusive
	size   int
}

// labelComponents assigns a label >= 1 to every 8-connected component of
// nonzero pixels in mask, in raster order of each component's first pixel.
//
// labels is indexed y*width+x relative to the mask's bounds; 0 means
// background.
func labelComponents(mask *image.Gray) (labels []int32, comps []component) {
	b := mask.Bounds()
	width, height := b.Dx(), b.Dy()
	labels = make([]int32, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if labels[y*width+x] != 0 || mask.GrayAt(b.Min.X+x, b.Min.Y+y).Y == 0 {
				continue
			}
			c := component{label: int32(len(comps) + 1)}
			floodFill(mask, labels, x, y, width, height, &c)
			comps = append(comps, c)
		}
	}

	return labels, comps
}

// floodFill performs iterative flood-fill from a starting point.
//
// Labels every reached pixel with c.label and grows c.bounds.
// Uses 8-connectivity (includes diagonal neighbors).
func floodFill(mask *image.Gray, labels []int32, startX, startY, width, height int, c *component) {
	b := mask.Bounds()
	stack := []image.Point{{X: startX, Y: startY}}
	c.bounds = image.Rect(startX, startY, startX+1, startY+1)

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if labels[p.Y*width+p.X] != 0 || mask.GrayAt(b.Min.X+p.X, b.Min.Y+p.Y).Y == 0 {
			continue
		}

		labels[p.Y*width+p.X] = c.label
		c.size++
		c.bounds = c.bounds.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))

		// 8-connected neighbors
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, image.Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
}
