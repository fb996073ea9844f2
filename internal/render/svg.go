package render

import (
	"bytes"
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/ironsheep/edge-vectorize/internal/geometry"
)

// PolygonStyle is the inline style of every SVG polygon.
const PolygonStyle = "fill:none;stroke:black;stroke-width:1"

// SVGHeader is the single root line of every document: size and namespace,
// without an XML prolog.
const SVGHeader = `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`

// SVGSink writes polygons as <polygon> elements of a standalone SVG
// document sized to the source image. The header is written when the sink
// is created and the closing tag at Finalize.
type SVGSink struct {
	lifecycle
	buf    bytes.Buffer
	canvas *svg.SVG
}

// NewSVGSink starts an SVG document of width x height pixels.
func NewSVGSink(width, height int) *SVGSink {
	s := &SVGSink{}
	fmt.Fprintf(&s.buf, SVGHeader+"\n", width, height)
	s.canvas = svg.New(&s.buf)
	return s
}

// AddPolygon appends p with PolygonStyle.
func (s *SVGSink) AddPolygon(p geometry.Polygon) error {
	if err := s.add(); err != nil {
		return err
	}

	xs := make([]int, len(p))
	ys := make([]int, len(p))
	for i, pt := range p {
		xs[i], ys[i] = pt.X, pt.Y
	}
	s.canvas.Polygon(xs, ys, PolygonStyle)
	return nil
}

// Finalize closes the document and writes it to w.
func (s *SVGSink) Finalize(w io.Writer) error {
	if err := s.finalize(); err != nil {
		return err
	}
	s.canvas.End()
	if _, err := s.buf.WriteTo(w); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}
