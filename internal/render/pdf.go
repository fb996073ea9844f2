package render

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/ironsheep/edge-vectorize/internal/geometry"
)

// PDFSink draws polygons on a single PDF page whose size in points equals
// the image size in pixels, so pixel coordinates are used as page units.
type PDFSink struct {
	lifecycle
	pdf *gofpdf.Fpdf
}

// NewPDFSink creates a PDF with one empty page of width x height points.
func NewPDFSink(width, height int) *PDFSink {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: float64(width), Ht: float64(height)})
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(1)

	return &PDFSink{pdf: pdf}
}

// AddPolygon strokes p as a closed black outline. Polygons with fewer than
// three points are counted but draw nothing.
func (s *PDFSink) AddPolygon(p geometry.Polygon) error {
	if err := s.add(); err != nil {
		return err
	}

	pts := make([]gofpdf.PointType, len(p))
	for i, pt := range p {
		pts[i] = gofpdf.PointType{X: float64(pt.X), Y: float64(pt.Y)}
	}
	s.pdf.Polygon(pts, "D")

	return s.pdf.Error()
}

// Finalize writes the PDF to w.
func (s *PDFSink) Finalize(w io.Writer) error {
	if err := s.finalize(); err != nil {
		return err
	}
	if err := s.pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
