// Package vision defines the two image-analysis capabilities the vectoriser
// depends on and the backends that supply them.
//
// A Backend pairs an EdgeDetector with a ContourExtractor. The native backend
// is pure Go and always available. Building with -tags gocv adds an opencv
// backend that delegates both steps to OpenCV.
package vision

import (
	"errors"
	"fmt"
	"image"
	"sort"
	"strings"
	"sync"

	"github.com/ironsheep/edge-vectorize/internal/contour"
	"github.com/ironsheep/edge-vectorize/internal/imaging"
)

// ErrUnknownBackend is returned by Lookup for a name nobody registered.
var ErrUnknownBackend = errors.New("unknown backend")

// NativeName is the name of the pure Go backend.
const NativeName = "native"

// EdgeDetector turns an image into a binary edge map. Edge pixels are 255,
// everything else 0, and the map has the same size as img with its origin
// at (0, 0).
type EdgeDetector interface {
	Detect(img image.Image, thresholdLow, thresholdHigh float64) (*image.Gray, error)
}

// ContourExtractor traces closed contours on a binary edge map.
type ContourExtractor interface {
	Extract(edges *image.Gray, r contour.RetrievalMode, a contour.ApproximationMode) (*contour.Set, error)
}

// Backend is a named detector/extractor pair.
type Backend struct {
	Name      string
	Detector  EdgeDetector
	Extractor ContourExtractor
}

// Options tune the backend a Factory builds.
type Options struct {
	// BlurSigma is the Gaussian pre-blur applied before edge detection.
	// Zero disables it.
	BlurSigma float64
}

// Factory builds a Backend.
type Factory func(opts Options) Backend

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

func init() {
	Register(NativeName, newNative)
}

// Register makes a backend available under name. Registering a name twice
// replaces the earlier factory.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = f
}

// Lookup builds the backend registered under name.
func Lookup(name string, opts Options) (Backend, error) {
	mu.RLock()
	f, ok := registry[name]
	mu.RUnlock()

	if !ok {
		return Backend{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownBackend, name, strings.Join(Names(), ", "))
	}
	return f(opts), nil
}

// Names returns the registered backend names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newNative(opts Options) Backend {
	return Backend{
		Name:      NativeName,
		Detector:  imaging.CannyDetector{BlurSigma: opts.BlurSigma},
		Extractor: contour.NewFollower(),
	}
}
