package render

import (
	"fmt"

	"github.com/ironsheep/edge-vectorize/internal/geometry"
)

// Renderer sends each drawable polygon to every sink, in order.
type Renderer struct {
	sinks    []Sink
	rendered int
	skipped  int
}

// NewRenderer returns a Renderer writing to sinks.
func NewRenderer(sinks ...Sink) *Renderer {
	return &Renderer{sinks: sinks}
}

// Render appends p to every sink. A polygon with fewer than three points is
// not a closed shape: it is skipped and counted, not reported as an error.
func (r *Renderer) Render(p geometry.Polygon) error {
	if !p.Drawable() {
		r.skipped++
		return nil
	}

	for i, s := range r.sinks {
		if err := s.AddPolygon(p); err != nil {
			return fmt.Errorf("sink %d: %w", i, err)
		}
	}
	r.rendered++
	return nil
}

// RenderAll renders every polygon of ps and stops at the first error.
func (r *Renderer) RenderAll(ps []geometry.Polygon) error {
	for _, p := range ps {
		if err := r.Render(p); err != nil {
			return err
		}
	}
	return nil
}

// Rendered returns how many polygons reached the sinks.
func (r *Renderer) Rendered() int { return r.rendered }

// Skipped returns how many polygons were too short to draw.
func (r *Renderer) Skipped() int { return r.skipped }
