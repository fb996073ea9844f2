// Package geometry holds the pixel-space primitives shared by the contour
// extractor and the renderers, and the perimeter-relative polygon simplifier.
//
// # Coordinate System
//
// Points use integer image coordinates:
//   - Origin (0, 0) at the top-left pixel
//   - X increases rightward
//   - Y increases downward
//
// No transformation is applied anywhere in the package; renderers receive the
// same coordinates the contour extractor produced.
//
// # Simplification
//
// A Contour is a closed loop: the last point connects back to the first.
// Simplifier reduces a Contour to a Polygon with a closed-curve
// Douglas-Peucker pass whose tolerance is a fraction of the loop's perimeter:
//
//	epsilon = EpsilonFactor * Perimeter(contour)
//
// The result is always an order-preserving subsequence of the input points
// and always starts with the contour's first point.
package geometry
