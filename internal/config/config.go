// Package config holds the options of one vectoriser run: their defaults,
// environment overrides and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ironsheep/edge-vectorize/internal/contour"
	"github.com/ironsheep/edge-vectorize/internal/geometry"
)

// EnvPrefix is the prefix of every environment variable read by ApplyEnv.
const EnvPrefix = "EDGE_VECTORIZE_"

// Defaults.
const (
	DefaultLowThreshold      = 50.0
	DefaultHighThreshold     = 150.0
	DefaultRetrievalMode     = "Tree"
	DefaultApproximationMode = "Simple"
	DefaultBackend           = "native"
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "console"
)

var (
	// ErrMissingPath is returned when a required path option is empty.
	ErrMissingPath = errors.New("missing required path")
	// ErrInvalidOption is returned for an option value outside its range.
	ErrInvalidOption = errors.New("invalid option")
)

// Options configures one run.
type Options struct {
	ImagePath     string
	OutputPDFPath string
	OutputSVGPath string

	LowThreshold      float64
	HighThreshold     float64
	RetrievalMode     string
	ApproximationMode string
	EpsilonFactor     float64
	BlurSigma         float64

	Backend   string
	LogLevel  string
	LogFormat string
}

// Default returns Options with every default applied and no paths set.
func Default() Options {
	return Options{
		LowThreshold:      DefaultLowThreshold,
		HighThreshold:     DefaultHighThreshold,
		RetrievalMode:     DefaultRetrievalMode,
		ApproximationMode: DefaultApproximationMode,
		EpsilonFactor:     geometry.DefaultEpsilonFactor,
		Backend:           DefaultBackend,
		LogLevel:          DefaultLogLevel,
		LogFormat:         DefaultLogFormat,
	}
}

// LoadEnv loads variables from the given .env files, or from ./.env when
// none are given. Missing files are not an error; variables already set in
// the environment win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides the backend and logging options from
// EDGE_VECTORIZE_BACKEND, EDGE_VECTORIZE_LOG_LEVEL and
// EDGE_VECTORIZE_LOG_FORMAT when they are set.
func (o *Options) ApplyEnv() {
	if v, ok := os.LookupEnv(EnvPrefix + "BACKEND"); ok && v != "" {
		o.Backend = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_LEVEL"); ok && v != "" {
		o.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_FORMAT"); ok && v != "" {
		o.LogFormat = v
	}
}

// MissingPaths returns the flag names of the required paths that are empty.
func (o Options) MissingPaths() []string {
	var missing []string
	if o.ImagePath == "" {
		missing = append(missing, "--image-path")
	}
	if o.OutputPDFPath == "" {
		missing = append(missing, "--output-pdf-path")
	}
	if o.OutputSVGPath == "" {
		missing = append(missing, "--output-svg-path")
	}
	return missing
}

// Modes parses the retrieval and approximation mode names.
func (o Options) Modes() (contour.RetrievalMode, contour.ApproximationMode, error) {
	r, err := contour.ParseRetrievalMode(o.RetrievalMode)
	if err != nil {
		return 0, 0, err
	}
	a, err := contour.ParseApproximationMode(o.ApproximationMode)
	if err != nil {
		return 0, 0, err
	}
	return r, a, nil
}

// Validate checks every option. Mode names are checked with Modes.
func (o Options) Validate() error {
	if missing := o.MissingPaths(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingPath, strings.Join(missing, ", "))
	}
	if _, _, err := o.Modes(); err != nil {
		return err
	}

	switch {
	case o.LowThreshold < 0:
		return fmt.Errorf("%w: low threshold %v is negative", ErrInvalidOption, o.LowThreshold)
	case o.HighThreshold < 0:
		return fmt.Errorf("%w: high threshold %v is negative", ErrInvalidOption, o.HighThreshold)
	case o.LowThreshold > o.HighThreshold:
		return fmt.Errorf("%w: low threshold %v is above high threshold %v", ErrInvalidOption, o.LowThreshold, o.HighThreshold)
	case o.EpsilonFactor < 0:
		return fmt.Errorf("%w: epsilon factor %v is negative", ErrInvalidOption, o.EpsilonFactor)
	case o.BlurSigma < 0:
		return fmt.Errorf("%w: blur sigma %v is negative", ErrInvalidOption, o.BlurSigma)
	}

	if o.LogFormat != "console" && o.LogFormat != "json" {
		return fmt.Errorf("%w: log format %q (valid: console, json)", ErrInvalidOption, o.LogFormat)
	}
	return nil
}
