//go:build gocv

package vision

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/ironsheep/edge-vectorize/internal/contour"
	"github.com/ironsheep/edge-vectorize/internal/geometry"
	"github.com/ironsheep/edge-vectorize/internal/imaging"
)

// OpenCVName is the name of the OpenCV backend.
const OpenCVName = "opencv"

func init() {
	Register(OpenCVName, newOpenCV)
}

func newOpenCV(opts Options) Backend {
	return Backend{
		Name:      OpenCVName,
		Detector:  cvCanny{blurSigma: opts.BlurSigma},
		Extractor: cvContours{},
	}
}

// cvCanny runs cv::Canny on the grayscale image.
type cvCanny struct {
	blurSigma float64
}

func (c cvCanny) Detect(img image.Image, thresholdLow, thresholdHigh float64) (*image.Gray, error) {
	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer src.Close()
	if src.Empty() {
		return nil, imaging.ErrEmptyImage
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	if c.blurSigma > 0 {
		gocv.GaussianBlur(gray, &gray, image.Point{}, c.blurSigma, c.blurSigma, gocv.BorderReflect101)
	}

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, float32(thresholdLow), float32(thresholdHigh))

	out, err := edges.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert edge map: %w", err)
	}
	g, ok := out.(*image.Gray)
	if !ok {
		return nil, fmt.Errorf("convert edge map: unexpected %T", out)
	}
	return g, nil
}

// cvContours runs cv::findContours, passing the modes straight through.
type cvContours struct{}

var cvRetrieval = map[contour.RetrievalMode]gocv.RetrievalMode{
	contour.RetrievalExternal:  gocv.RetrievalExternal,
	contour.RetrievalList:      gocv.RetrievalList,
	contour.RetrievalCComp:     gocv.RetrievalCComp,
	contour.RetrievalTree:      gocv.RetrievalTree,
	contour.RetrievalFloodFill: gocv.RetrievalFloodfill,
}

var cvApproximation = map[contour.ApproximationMode]gocv.ContourApproximationMode{
	contour.ApproxSimple:   gocv.ChainApproxSimple,
	contour.ApproxTC89L1:   gocv.ChainApproxTC89L1,
	contour.ApproxTC89KCOS: gocv.ChainApproxTC89KCOS,
}

func (cvContours) Extract(edges *image.Gray, r contour.RetrievalMode, a contour.ApproximationMode) (*contour.Set, error) {
	mode, ok := cvRetrieval[r]
	if !ok {
		return nil, &contour.ModeError{Kind: "retrieval", Value: r.String(), Valid: contour.RetrievalModeNames()}
	}
	method, ok := cvApproximation[a]
	if !ok {
		return nil, &contour.ModeError{Kind: "approximation", Value: a.String(), Valid: contour.ApproximationModeNames()}
	}
	if edges == nil {
		return nil, contour.ErrNoEdgeMap
	}

	src, err := gocv.ImageGrayToMatGray(edges)
	if err != nil {
		return nil, fmt.Errorf("convert edge map: %w", err)
	}
	defer src.Close()

	in := src
	// Flood fill retrieval only accepts 32-bit signed single channel input.
	if r == contour.RetrievalFloodFill {
		converted := gocv.NewMat()
		defer converted.Close()
		src.ConvertTo(&converted, gocv.MatTypeCV32SC1)
		in = converted
	}

	hierarchy := gocv.NewMat()
	defer hierarchy.Close()

	found := gocv.FindContoursWithParams(in, &hierarchy, mode, method)
	defer found.Close()

	offset := edges.Bounds().Min
	set := &contour.Set{}
	for i := 0; i < found.Size(); i++ {
		pv := found.At(i)
		pts := pv.ToPoints()

		c := make(geometry.Contour, len(pts))
		for j, p := range pts {
			c[j] = geometry.Point{X: p.X + offset.X, Y: p.Y + offset.Y}
		}

		h := contour.Hierarchy{Next: -1, Prev: -1, FirstChild: -1, Parent: -1}
		if !hierarchy.Empty() {
			v := hierarchy.GetVeciAt(0, i)
			h = contour.Hierarchy{Next: int(v[0]), Prev: int(v[1]), FirstChild: int(v[2]), Parent: int(v[3])}
		}

		set.Contours = append(set.Contours, c)
		set.Hierarchy = append(set.Hierarchy, h)
	}
	for i := range set.Hierarchy {
		set.Hole = append(set.Hole, isHole(set.Hierarchy, i))
	}

	return set, nil
}

// isHole reports whether contour i sits at an odd nesting depth, which is
// how OpenCV lays out hole borders in Tree and CComp retrieval.
func isHole(h []contour.Hierarchy, i int) bool {
	depth := 0
	for p := h[i].Parent; p >= 0 && p < len(h) && depth < len(h); p = h[p].Parent {
		depth++
	}
	return depth%2 == 1
}
