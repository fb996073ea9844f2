package render

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/edge-vectorize/internal/geometry"
)

var polygonRE = regexp.MustCompile(`<polygon points="([^"]*)"`)

// svgPolygons returns the points attribute of every polygon in doc.
func svgPolygons(doc string) [][]string {
	var out [][]string
	for _, m := range polygonRE.FindAllStringSubmatch(doc, -1) {
		out = append(out, strings.Fields(m[1]))
	}
	return out
}

func square() geometry.Polygon {
	return geometry.Polygon{{X: 25, Y: 25}, {X: 74, Y: 25}, {X: 74, Y: 74}, {X: 25, Y: 74}}
}

func TestSVGSink_Document(t *testing.T) {
	s := NewSVGSink(100, 80)
	require.NoError(t, s.AddPolygon(square()))

	var buf bytes.Buffer
	require.NoError(t, s.Finalize(&buf))
	doc := buf.String()

	lines := strings.Split(doc, "\n")
	assert.Equal(t, `<svg width="100" height="80" xmlns="http://www.w3.org/2000/svg">`, lines[0])
	assert.NotContains(t, doc, "<?xml")
	assert.NotContains(t, doc, "<!--")
	assert.Contains(t, doc, PolygonStyle)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(doc), "</svg>"))

	polys := svgPolygons(doc)
	require.Len(t, polys, 1)
	assert.Equal(t, []string{"25,25", "74,25", "74,74", "25,74"}, polys[0])
}

func TestSVGSink_Empty(t *testing.T) {
	s := NewSVGSink(10, 10)

	var buf bytes.Buffer
	require.NoError(t, s.Finalize(&buf))

	assert.NotContains(t, buf.String(), "<polygon")
	assert.Contains(t, buf.String(), "<svg")
	assert.Contains(t, buf.String(), "</svg>")
}

var (
	mediaBoxRE = regexp.MustCompile(`/MediaBox \[0 0 ([0-9.]+) ([0-9.]+)\]`)
	moveToRE   = regexp.MustCompile(`(?m)^\S+ \S+ m\s*$`)
	lineToRE   = regexp.MustCompile(`(?m)^\S+ \S+ l\s*$`)
	strokeRE   = regexp.MustCompile(`(?m)^S\s*$`)
)

// pdfDocument finalizes s with stream compression off so page content can
// be matched as text.
func pdfDocument(t *testing.T, s *PDFSink) string {
	t.Helper()
	s.pdf.SetCompression(false)

	var buf bytes.Buffer
	require.NoError(t, s.Finalize(&buf))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	return buf.String()
}

// pageSize returns the first MediaBox of doc: the page's own, written
// before the A4 default of the page tree.
func pageSize(t *testing.T, doc string) (string, string) {
	t.Helper()
	box := mediaBoxRE.FindStringSubmatch(doc)
	require.NotNil(t, box)
	return box[1], box[2]
}

func TestPDFSink_Document(t *testing.T) {
	tests := []struct {
		name  string
		polys []geometry.Polygon
	}{
		{"no polygons", nil},
		{"one square", []geometry.Polygon{square()}},
		{"two squares", []geometry.Polygon{
			{{X: 10, Y: 10}, {X: 40, Y: 10}, {X: 40, Y: 40}, {X: 10, Y: 40}},
			{{X: 50, Y: 10}, {X: 90, Y: 10}, {X: 90, Y: 50}, {X: 50, Y: 50}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdf := NewPDFSink(100, 60)
			svgSink := NewSVGSink(100, 60)
			r := NewRenderer(pdf, svgSink)
			require.NoError(t, r.RenderAll(tt.polys))
			assert.Equal(t, len(tt.polys), pdf.Count())

			doc := pdfDocument(t, pdf)
			w, h := pageSize(t, doc)
			assert.Equal(t, "100.00", w)
			assert.Equal(t, "60.00", h)

			// One move, four lines (three edges plus the closing one) and
			// one stroke per square.
			assert.Len(t, moveToRE.FindAllString(doc, -1), len(tt.polys))
			assert.Len(t, lineToRE.FindAllString(doc, -1), 4*len(tt.polys))
			assert.Len(t, strokeRE.FindAllString(doc, -1), len(tt.polys))

			var svgBuf bytes.Buffer
			require.NoError(t, svgSink.Finalize(&svgBuf))
			assert.Len(t, svgPolygons(svgBuf.String()), len(strokeRE.FindAllString(doc, -1)))
		})
	}
}

func TestPDFSink_EmptyPage(t *testing.T) {
	s := NewPDFSink(0, 0)

	doc := pdfDocument(t, s)
	w, h := pageSize(t, doc)
	assert.Equal(t, "1.00", w)
	assert.Equal(t, "1.00", h)
	assert.Empty(t, strokeRE.FindAllString(doc, -1))
	assert.Equal(t, 0, s.Count())
}

func TestSink_Lifecycle(t *testing.T) {
	sinks := map[string]interface {
		Sink
		State() State
	}{
		"pdf": NewPDFSink(50, 50),
		"svg": NewSVGSink(50, 50),
	}

	for name, s := range sinks {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, StateEmpty, s.State())

			require.NoError(t, s.AddPolygon(square()))
			assert.Equal(t, StatePopulated, s.State())

			require.NoError(t, s.Finalize(io.Discard))
			assert.Equal(t, StateFinalized, s.State())

			err := s.AddPolygon(square())
			assert.True(t, errors.Is(err, ErrFinalized), "AddPolygon after finalize: %v", err)
			assert.ErrorIs(t, s.Finalize(io.Discard), ErrFinalized)
			assert.Equal(t, 1, s.Count())
		})
	}
}

func TestRenderer_SkipsShortPolygons(t *testing.T) {
	pdf := NewPDFSink(100, 100)
	svgSink := NewSVGSink(100, 100)
	r := NewRenderer(pdf, svgSink)

	polys := []geometry.Polygon{
		square(),
		{},
		{{X: 1, Y: 1}},
		{{X: 1, Y: 1}, {X: 5, Y: 5}},
		{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 15, Y: 20}},
	}
	require.NoError(t, r.RenderAll(polys))

	assert.Equal(t, 2, r.Rendered())
	assert.Equal(t, 3, r.Skipped())
	assert.Equal(t, r.Rendered(), pdf.Count())
	assert.Equal(t, r.Rendered(), svgSink.Count())

	var buf bytes.Buffer
	require.NoError(t, svgSink.Finalize(&buf))
	polysOut := svgPolygons(buf.String())
	require.Len(t, polysOut, 2)
	assert.Equal(t, []string{"10,10", "20,10", "15,20"}, polysOut[1])
}

func TestRenderer_SinkError(t *testing.T) {
	s := NewSVGSink(10, 10)
	require.NoError(t, s.Finalize(io.Discard))

	r := NewRenderer(s)
	err := r.Render(square())
	assert.ErrorIs(t, err, ErrFinalized)
	assert.Equal(t, 0, r.Rendered())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "empty", StateEmpty.String())
	assert.Equal(t, "populated", StatePopulated.String())
	assert.Equal(t, "finalized", StateFinalized.String())
	assert.Equal(t, "State(7)", State(7).String())
}
