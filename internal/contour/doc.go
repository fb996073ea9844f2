// Package contour extracts closed contours from binary edge maps.
//
// Borders are traced with the Suzuki-Abe border following algorithm using
// 8-connectivity, which finds both outer borders (foreground against the
// background around it) and hole borders (foreground around an enclosed
// background region) together with their nesting.
//
// # Retrieval Modes
//
//   - External: outer borders that are not enclosed by anything
//   - List: every border, no hierarchy
//   - CComp: outer borders at the top level, holes as their children
//   - Tree: every border with full nesting
//   - FloodFill: connected components labelled by flood fill and traced one
//     at a time, with the same two-level layout as CComp
//
// # Approximation Modes
//
//   - Simple: straight horizontal, vertical and diagonal runs collapse to
//     their end points
//   - TC89L1, TC89KCOS: Teh-Chin dominant point detection
//
// Every approximation returns an order-preserving subsequence of the traced
// border pixels.
//
// # Hierarchy
//
// Set.Hierarchy uses the OpenCV layout: for each contour the indices of the
// next and previous sibling, the first child and the parent, with -1 where
// no such contour exists.
package contour
