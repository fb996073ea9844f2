package imaging

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ErrReadImage is returned when the source image cannot be opened or decoded.
var ErrReadImage = errors.New("cannot read input image")

// ErrEmptyImage is returned for images with zero width or height.
var ErrEmptyImage = errors.New("image has no pixels")

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int

	// Height is the image height in pixels.
	Height int

	// Format is the detected image format: "png", "jpeg", "gif", "bmp",
	// "tiff", "webp" or "unknown". Detection is based on file extension.
	Format string

	// HasAlpha reports whether any decoded pixel is not fully opaque.
	HasAlpha bool

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64
}

// Load opens and decodes the image at path.
//
// EXIF orientation is applied so that the returned pixels match what an
// image viewer shows.
//
// Returns:
//   - image.Image: The decoded image.
//   - *ImageInfo: Dimensions, format and file size.
//   - error: Wraps ErrReadImage if the file cannot be opened or decoded, or
//     ErrEmptyImage if it decodes to zero pixels.
func Load(path string) (image.Image, *ImageInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w %s: %w", ErrReadImage, path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w %s: is a directory", ErrReadImage, path)
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, nil, fmt.Errorf("%w %s: %w", ErrReadImage, path, err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, nil, fmt.Errorf("%w: %s", ErrEmptyImage, path)
	}

	hasAlpha := false
	if o, ok := img.(interface{ Opaque() bool }); ok {
		hasAlpha = !o.Opaque()
	}

	return img, &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        formatFromPath(path),
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

// formatFromPath maps a file extension to a format name.
func formatFromPath(path string) string {
	if strings.HasSuffix(strings.ToLower(path), ".webp") {
		return "webp"
	}

	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return "unknown"
	}
	return strings.ToLower(f.String())
}
