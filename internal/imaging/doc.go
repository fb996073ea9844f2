// Package imaging loads raster images and turns them into binary edge maps.
//
// This package is the native Edge Map Provider of the vectoriser: it decodes
// the source image, converts it to luminance and runs a Canny edge detector
// whose output feeds the contour extractor. All operations work with
// standard Go image.Image types.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// Edge maps are always returned with their origin at (0, 0), whatever the
// bounds of the source image, so that contour coordinates are image-relative.
//
// # Supported Formats
//
// Images are decoded with github.com/disintegration/imaging, which applies
// EXIF orientation for JPEG files. PNG, JPEG, GIF, BMP and TIFF are handled
// through the standard library and golang.org/x/image; WebP is registered
// from golang.org/x/image/webp.
//
// # Edge Maps
//
// An edge map is an *image.Gray where 255 marks an edge pixel and 0 marks
// background. No other values are produced.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Missing, unreadable or undecodable image files (ErrReadImage)
//   - Images with zero width or height (ErrEmptyImage)
package imaging
