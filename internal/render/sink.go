// Package render writes simplified polygons to document sinks.
//
// A Sink collects closed polygons in memory and serialises them once, at
// Finalize. Every sink follows the same life cycle:
//
//	Empty -> Populated -> Finalized
//
// Finalized is terminal: AddPolygon and Finalize both return ErrFinalized
// afterwards. Renderer fans every drawable polygon out to a set of sinks so
// that all of them describe the same shapes in the same order.
package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/ironsheep/edge-vectorize/internal/geometry"
)

// ErrFinalized is returned when a finalized sink is used again.
var ErrFinalized = errors.New("sink already finalized")

// State is the life cycle position of a sink.
type State int

const (
	StateEmpty State = iota
	StatePopulated
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	case StateFinalized:
		return "finalized"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Sink receives closed polygons and writes them out as one document.
type Sink interface {
	// AddPolygon appends one closed, stroked, unfilled polygon.
	AddPolygon(p geometry.Polygon) error
	// Count returns the number of polygons appended so far.
	Count() int
	// Finalize writes the complete document to w.
	Finalize(w io.Writer) error
}

// lifecycle tracks the state shared by every sink implementation.
type lifecycle struct {
	state State
	count int
}

func (l *lifecycle) add() error {
	if l.state == StateFinalized {
		return ErrFinalized
	}
	l.state = StatePopulated
	l.count++
	return nil
}

func (l *lifecycle) finalize() error {
	if l.state == StateFinalized {
		return ErrFinalized
	}
	l.state = StateFinalized
	return nil
}

// Count returns the number of polygons appended so far.
func (l *lifecycle) Count() int { return l.count }

// State returns the current life cycle state.
func (l *lifecycle) State() State { return l.state }
