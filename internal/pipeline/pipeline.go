// Package pipeline runs one vectorisation: load the image, detect edges,
// extract contours, simplify them and write the PDF and SVG documents.
//
// Both documents are rendered into memory and written only after every
// earlier step has succeeded. If the second file cannot be written the
// first is removed again, so a failed run leaves neither output behind.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/ironsheep/edge-vectorize/internal/config"
	"github.com/ironsheep/edge-vectorize/internal/geometry"
	"github.com/ironsheep/edge-vectorize/internal/imaging"
	"github.com/ironsheep/edge-vectorize/internal/render"
	"github.com/ironsheep/edge-vectorize/internal/vision"
)

// ErrNoBackend is returned when the backend lacks a detector or extractor.
var ErrNoBackend = errors.New("backend is incomplete")

// Result summarises a successful run.
type Result struct {
	Width    int
	Height   int
	Contours int
	Rendered int
	Skipped  int
	PDFPath  string
	SVGPath  string
}

// Run executes the pipeline for opts with the given backend.
//
// Options are validated, and the mode names parsed, before any file is
// touched. Cancellation of ctx is checked between stages.
func Run(ctx context.Context, opts config.Options, backend vision.Backend, log zerolog.Logger) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	retrieval, approximation, err := opts.Modes()
	if err != nil {
		return nil, err
	}
	if backend.Detector == nil || backend.Extractor == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoBackend, backend.Name)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, info, err := imaging.Load(opts.ImagePath)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("path", opts.ImagePath).
		Str("format", info.Format).
		Int("width", info.Width).
		Int("height", info.Height).
		Bool("alpha", info.HasAlpha).
		Msg("image loaded")

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	edges, err := backend.Detector.Detect(img, opts.LowThreshold, opts.HighThreshold)
	if err != nil {
		return nil, fmt.Errorf("detect edges: %w", err)
	}
	log.Debug().
		Str("backend", backend.Name).
		Float64("low", opts.LowThreshold).
		Float64("high", opts.HighThreshold).
		Int("edge_pixels", imaging.CountEdges(edges)).
		Msg("edges detected")

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	set, err := backend.Extractor.Extract(edges, retrieval, approximation)
	if err != nil {
		return nil, fmt.Errorf("extract contours: %w", err)
	}
	log.Debug().
		Stringer("retrieval", retrieval).
		Stringer("approximation", approximation).
		Int("contours", set.Len()).
		Msg("contours extracted")

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pdf := render.NewPDFSink(info.Width, info.Height)
	svg := render.NewSVGSink(info.Width, info.Height)
	renderer := render.NewRenderer(pdf, svg)

	simplifier := geometry.NewSimplifier(opts.EpsilonFactor)
	for _, c := range set.Contours {
		if err := renderer.Render(simplifier.Simplify(c)); err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
	}
	log.Debug().
		Float64("epsilon_factor", opts.EpsilonFactor).
		Int("rendered", renderer.Rendered()).
		Int("skipped", renderer.Skipped()).
		Msg("polygons rendered")

	var pdfBuf, svgBuf bytes.Buffer
	if err := pdf.Finalize(&pdfBuf); err != nil {
		return nil, err
	}
	if err := svg.Finalize(&svgBuf); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := writeOutputs(opts.OutputPDFPath, pdfBuf.Bytes(), opts.OutputSVGPath, svgBuf.Bytes()); err != nil {
		return nil, err
	}

	return &Result{
		Width:    info.Width,
		Height:   info.Height,
		Contours: set.Len(),
		Rendered: renderer.Rendered(),
		Skipped:  renderer.Skipped(),
		PDFPath:  opts.OutputPDFPath,
		SVGPath:  opts.OutputSVGPath,
	}, nil
}

// writeOutputs writes both documents, removing the PDF again if the SVG
// cannot be written.
func writeOutputs(pdfPath string, pdf []byte, svgPath string, svg []byte) error {
	if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", pdfPath, err)
	}
	if err := os.WriteFile(svgPath, svg, 0o644); err != nil {
		if rmErr := os.Remove(pdfPath); rmErr != nil {
			return fmt.Errorf("write %s: %w (and remove %s: %v)", svgPath, err, pdfPath, rmErr)
		}
		return fmt.Errorf("write %s: %w", svgPath, err)
	}
	return nil
}
