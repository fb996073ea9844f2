package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blur"
)

// Edge and background values in an edge map.
const (
	EdgeValue       = 255
	BackgroundValue = 0
)

// CannyDetector performs Canny edge detection on color or grayscale images.
//
// The zero value is ready to use and detects edges on the raw luminance,
// like OpenCV's Canny. Set BlurSigma to smooth noisy photographs first.
type CannyDetector struct {
	// BlurSigma is the radius of an optional Gaussian pre-blur.
	// Values <= 0 disable blurring.
	BlurSigma float64
}

// Detect produces a binary edge map of img.
//
// Parameters:
//   - img: Source image (color or grayscale).
//   - thresholdLow: Low gradient threshold on the 0-255 intensity scale.
//     Gradients below this are discarded. Typical value: 50.
//   - thresholdHigh: High gradient threshold on the 0-255 intensity scale.
//     Gradients above this are always edges. Typical value: 150.
//
// If thresholdLow is greater than thresholdHigh the two are swapped.
//
// Returns:
//   - *image.Gray: Edge map with origin (0, 0) and the size of img. Edge
//     pixels are 255, everything else 0.
//   - error: ErrEmptyImage if img has no pixels.
//
// # Algorithm
//
//  1. Grayscale conversion: RGB -> luminance using ITU-R BT.601 weights
//     (0.299*R + 0.587*G + 0.114*B)
//
//  2. Optional Gaussian blur (BlurSigma > 0)
//
//  3. Gradient computation: Sobel operators for X and Y gradients
//     magnitude = sqrt(Gx² + Gy²)
//     direction = atan2(Gy, Gx)
//
//  4. Non-maximum suppression: Thin edges by keeping only local maxima in
//     the gradient direction
//
//  5. Hysteresis thresholding:
//     - Pixels above thresholdHigh are strong edges (always kept)
//     - Pixels between the thresholds are weak edges, kept only when they
//     are 8-connected to a strong edge through other weak edges
//     - Pixels below thresholdLow are discarded
func (d CannyDetector) Detect(img image.Image, thresholdLow, thresholdHigh float64) (*image.Gray, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, ErrEmptyImage
	}
	if thresholdLow > thresholdHigh {
		thresholdLow, thresholdHigh = thresholdHigh, thresholdLow
	}

	src := img
	if d.BlurSigma > 0 {
		src = blur.Gaussian(img, d.BlurSigma)
	}

	width := bounds.Dx()
	height := bounds.Dy()
	gray := luminance(src, width, height)
	magnitude, direction := sobel(gray, width, height)
	suppressed := suppressNonMaxima(magnitude, direction, width, height)

	// Gradients are computed on luminance in [0, 1]
	lowThresh := thresholdLow / 255.0
	highThresh := thresholdHigh / 255.0

	return hysteresis(suppressed, width, height, lowThresh, highThresh), nil
}

// CountEdges returns the number of edge pixels in an edge map.
func CountEdges(edges *image.Gray) int {
	n := 0
	for _, v := range edges.Pix {
		if v != BackgroundValue {
			n++
		}
	}
	return n
}

// luminance converts img to a height x width grid of values in [0, 1].
func luminance(img image.Image, width, height int) [][]float64 {
	bounds := img.Bounds()
	gray := make([][]float64, height)
	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// Convert to 8-bit and compute luminance
			rf := float64(r>>8) / 255.0
			gf := float64(g>>8) / 255.0
			bf := float64(b>>8) / 255.0
			gray[y][x] = 0.299*rf + 0.587*gf + 0.114*bf
		}
	}
	return gray
}

var (
	sobelX = [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY = [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// sobel returns the gradient magnitude and direction of every pixel.
// Border pixels use clamped (replicated) edge values.
func sobel(gray [][]float64, width, height int) (magnitude, direction [][]float64) {
	magnitude = make([][]float64, height)
	direction = make([][]float64, height)

	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)

		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					gx += gray[py][px] * sobelX[ky+1][kx+1]
					gy += gray[py][px] * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y][x] = math.Sqrt(gx*gx + gy*gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}
	return magnitude, direction
}

// suppressNonMaxima keeps only pixels whose magnitude is a local maximum
// along the gradient direction. The outermost ring of pixels is dropped.
func suppressNonMaxima(magnitude, direction [][]float64, width, height int) [][]float64 {
	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				continue
			}

			angle := direction[y][x]
			mag := magnitude[y][x]
			if mag == 0 {
				continue
			}

			// Determine neighbors to compare based on gradient direction
			var n1, n2 float64
			if (angle >= -math.Pi/8 && angle < math.Pi/8) || (angle >= 7*math.Pi/8 || angle < -7*math.Pi/8) {
				n1 = magnitude[y][x-1]
				n2 = magnitude[y][x+1]
			} else if (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8) {
				n1 = magnitude[y-1][x+1]
				n2 = magnitude[y+1][x-1]
			} else if (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8) {
				n1 = magnitude[y-1][x]
				n2 = magnitude[y+1][x]
			} else {
				n1 = magnitude[y-1][x-1]
				n2 = magnitude[y+1][x+1]
			}

			// Ties go to the first pixel of the pair so a step edge is one
			// pixel wide.
			if mag > n1 && mag >= n2 {
				suppressed[y][x] = mag
			}
		}
	}
	return suppressed
}

// hysteresis applies the double threshold and grows strong edges through
// connected weak edges.
func hysteresis(suppressed [][]float64, width, height int, lowThresh, highThresh float64) *image.Gray {
	result := image.NewGray(image.Rect(0, 0, width, height))

	type pixel struct{ x, y int }
	var stack []pixel

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if suppressed[y][x] > 0 && suppressed[y][x] >= highThresh {
				result.SetGray(x, y, color.Gray{EdgeValue})
				stack = append(stack, pixel{x, y})
			}
		}
	}

	// Grow strong edges through 8-connected weak pixels
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := p.x+dx, p.y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				if result.GrayAt(nx, ny).Y == EdgeValue {
					continue
				}
				v := suppressed[ny][nx]
				if v > 0 && v >= lowThresh {
					result.SetGray(nx, ny, color.Gray{EdgeValue})
					stack = append(stack, pixel{nx, ny})
				}
			}
		}
	}

	return result
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
