// Package cli implements the edge-vectorize command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ironsheep/edge-vectorize/internal/config"
	"github.com/ironsheep/edge-vectorize/internal/contour"
	"github.com/ironsheep/edge-vectorize/internal/logging"
	"github.com/ironsheep/edge-vectorize/internal/pipeline"
	"github.com/ironsheep/edge-vectorize/internal/vision"
)

// SuccessMessage is printed to stdout after both documents are written.
const SuccessMessage = "PDF and SVG with shapes created successfully!"

// BuildInfo is the version information stamped in by the linker.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("%s (built %s, commit %s)", b.Version, b.BuildTime, b.GitCommit)
}

// app carries the state of one invocation.
type app struct {
	opts    config.Options
	log     zerolog.Logger
	stdout  io.Writer
	stderr  io.Writer
	unknown []string
}

// Execute runs the command line with args (without the program name).
// Fatal errors are logged before they are returned.
func Execute(ctx context.Context, args []string, info BuildInfo, stdout, stderr io.Writer) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}

	a := &app{opts: config.Default(), stdout: stdout, stderr: stderr}
	a.opts.ApplyEnv()
	a.log = logging.New(logging.Config{Level: a.opts.LogLevel, Format: a.opts.LogFormat, Output: stderr})

	cmd := a.newRootCommand(info)
	a.unknown = unknownFlags(cmd.Flags(), args)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		a.log.Error().Err(err).Msg("edge-vectorize failed")
		return err
	}
	return nil
}

func (a *app) newRootCommand(info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edge-vectorize --image-path <file> --output-pdf-path <file> --output-svg-path <file> [flags]",
		Short: "Trace image edges into simplified polygons and write them as PDF and SVG",
		Long: `edge-vectorize loads a raster image, runs Canny edge detection, traces the
contours of the edge map, simplifies every contour with a perimeter-relative
Douglas-Peucker tolerance and draws the resulting closed polygons into a PDF
page and an SVG document of the image's size.

Environment variables (also read from ./.env):
  EDGE_VECTORIZE_LOG_LEVEL    trace, debug, info, warn, error
  EDGE_VECTORIZE_LOG_FORMAT   console or json
  EDGE_VECTORIZE_BACKEND      ` + strings.Join(vision.Names(), " or "),
		Version:       info.String(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args)
		},
	}
	cmd.FParseErrWhitelist = cobra.FParseErrWhitelist{UnknownFlags: true}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	f := cmd.Flags()
	f.SortFlags = false
	f.StringVar(&a.opts.ImagePath, "image-path", "", "source raster image file (required)")
	f.StringVar(&a.opts.OutputPDFPath, "output-pdf-path", "", "destination PDF file (required)")
	f.StringVar(&a.opts.OutputSVGPath, "output-svg-path", "", "destination SVG file (required)")
	f.Float64Var(&a.opts.LowThreshold, "low-threshold", a.opts.LowThreshold, "lower gradient threshold for edge detection")
	f.Float64Var(&a.opts.HighThreshold, "high-threshold", a.opts.HighThreshold, "upper gradient threshold for edge detection")
	f.StringVar(&a.opts.RetrievalMode, "retrieval-mode", a.opts.RetrievalMode,
		"contour retrieval mode: "+strings.Join(contour.RetrievalModeNames(), "|"))
	f.StringVar(&a.opts.ApproximationMode, "approximation-mode", a.opts.ApproximationMode,
		"contour approximation mode: "+strings.Join(contour.ApproximationModeNames(), "|"))
	f.Float64Var(&a.opts.EpsilonFactor, "epsilon-factor", a.opts.EpsilonFactor, "simplification tolerance as a fraction of contour perimeter")
	f.Float64Var(&a.opts.BlurSigma, "blur-sigma", a.opts.BlurSigma, "Gaussian pre-blur before edge detection, 0 disables")
	f.StringVar(&a.opts.Backend, "backend", a.opts.Backend, "vision backend: "+strings.Join(vision.Names(), "|"))
	f.StringVar(&a.opts.LogLevel, "log-level", a.opts.LogLevel, "log level: trace|debug|info|warn|error")
	f.StringVar(&a.opts.LogFormat, "log-format", a.opts.LogFormat, "log format: console|json")

	return cmd
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	a.log = logging.New(logging.Config{Level: a.opts.LogLevel, Format: a.opts.LogFormat, Output: a.stderr})

	for _, name := range a.unknown {
		a.log.Warn().Msgf("Unknown option: %s", name)
	}
	// Positional words are not options either.
	for _, arg := range args {
		a.log.Warn().Msgf("Unknown option: %s", arg)
	}

	if missing := a.opts.MissingPaths(); len(missing) > 0 {
		a.log.Debug().Strs("missing", missing).Msg("required paths not given")
		return cmd.Usage()
	}

	// Mode names are rejected here, before the backend or any file is touched.
	if _, _, err := a.opts.Modes(); err != nil {
		return err
	}
	if err := a.opts.Validate(); err != nil {
		return err
	}

	backend, err := vision.Lookup(a.opts.Backend, vision.Options{BlurSigma: a.opts.BlurSigma})
	if err != nil {
		return err
	}

	res, err := pipeline.Run(cmd.Context(), a.opts, backend, a.log)
	if err != nil {
		return err
	}

	a.log.Info().
		Int("width", res.Width).
		Int("height", res.Height).
		Int("contours", res.Contours).
		Int("polygons", res.Rendered).
		Int("skipped", res.Skipped).
		Str("pdf", res.PDFPath).
		Str("svg", res.SVGPath).
		Msg("vectorized")
	fmt.Fprintln(a.stdout, SuccessMessage)
	return nil
}

// unknownFlags returns the flag arguments in args that fs does not define.
// Parsing stops at "--".
func unknownFlags(fs *pflag.FlagSet, args []string) []string {
	var unknown []string
	for _, arg := range args {
		if arg == "--" {
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			continue
		}

		if strings.HasPrefix(arg, "--") {
			name, _, _ := strings.Cut(arg[2:], "=")
			if name == "help" || name == "version" {
				continue
			}
			if fs.Lookup(name) == nil {
				unknown = append(unknown, "--"+name)
			}
			continue
		}

		if _, err := strconv.ParseFloat(arg, 64); err == nil {
			continue // negative number value
		}
		short := arg[1:2]
		if short == "h" || short == "v" {
			continue
		}
		if fs.ShorthandLookup(short) == nil {
			unknown = append(unknown, arg)
		}
	}
	return unknown
}
