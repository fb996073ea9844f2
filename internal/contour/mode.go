package contour

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMode is wrapped by every ModeError so callers can tell an invalid
// mode apart from other configuration problems with errors.Is.
var ErrInvalidMode = errors.New("invalid mode")

// ModeError reports a retrieval or approximation mode name that is not
// recognised.
type ModeError struct {
	Kind  string   // "retrieval" or "approximation"
	Value string   // the rejected name
	Valid []string // accepted names, in declaration order
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("invalid %s mode %q (valid: %s)", e.Kind, e.Value, strings.Join(e.Valid, ", "))
}

func (e *ModeError) Unwrap() error { return ErrInvalidMode }

// RetrievalMode selects which borders the extractor returns and how they
// are nested.
type RetrievalMode int

const (
	// RetrievalExternal returns only the outermost borders.
	RetrievalExternal RetrievalMode = iota
	// RetrievalList returns every border without hierarchy.
	RetrievalList
	// RetrievalCComp returns a two-level hierarchy: outer borders at the top,
	// the holes of each component below it.
	RetrievalCComp
	// RetrievalTree returns every border with the full nesting hierarchy.
	RetrievalTree
	// RetrievalFloodFill labels connected components first and traces each
	// component on its own, producing a two-level hierarchy.
	RetrievalFloodFill
)

var retrievalNames = []string{"External", "List", "CComp", "Tree", "FloodFill"}

func (m RetrievalMode) String() string {
	if m < 0 || int(m) >= len(retrievalNames) {
		return fmt.Sprintf("RetrievalMode(%d)", int(m))
	}
	return retrievalNames[m]
}

// Valid reports whether m is one of the declared modes.
func (m RetrievalMode) Valid() bool {
	return m >= 0 && int(m) < len(retrievalNames)
}

// ParseRetrievalMode maps a mode name to a RetrievalMode.
// Names are matched exactly: External, List, CComp, Tree, FloodFill.
func ParseRetrievalMode(s string) (RetrievalMode, error) {
	for i, name := range retrievalNames {
		if s == name {
			return RetrievalMode(i), nil
		}
	}
	return 0, &ModeError{Kind: "retrieval", Value: s, Valid: retrievalNames}
}

// ApproximationMode selects how boundary pixels are reduced to contour
// points before they are returned.
type ApproximationMode int

const (
	// ApproxSimple compresses horizontal, vertical and diagonal runs to
	// their end points.
	ApproxSimple ApproximationMode = iota
	// ApproxTC89L1 applies Teh-Chin dominant point detection with the
	// L1 (1-curvature) significance measure.
	ApproxTC89L1
	// ApproxTC89KCOS applies Teh-Chin dominant point detection with the
	// k-cosine significance measure.
	ApproxTC89KCOS
)

var approximationNames = []string{"Simple", "TC89L1", "TC89KCOS"}

func (m ApproximationMode) String() string {
	if m < 0 || int(m) >= len(approximationNames) {
		return fmt.Sprintf("ApproximationMode(%d)", int(m))
	}
	return approximationNames[m]
}

// Valid reports whether m is one of the declared modes.
func (m ApproximationMode) Valid() bool {
	return m >= 0 && int(m) < len(approximationNames)
}

// ParseApproximationMode maps a mode name to an ApproximationMode.
// Names are matched exactly: Simple, TC89L1, TC89KCOS.
func ParseApproximationMode(s string) (ApproximationMode, error) {
	for i, name := range approximationNames {
		if s == name {
			return ApproximationMode(i), nil
		}
	}
	return 0, &ModeError{Kind: "approximation", Value: s, Valid: approximationNames}
}

// RetrievalModeNames returns the accepted retrieval mode names.
func RetrievalModeNames() []string {
	return append([]string(nil), retrievalNames...)
}

// ApproximationModeNames returns the accepted approximation mode names.
func ApproximationModeNames() []string {
	return append([]string(nil), approximationNames...)
}
