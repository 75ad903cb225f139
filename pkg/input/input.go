// Package input defines the commands the explorer consumes from an input-event source.
package input

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/willbeason/mandelzoom/pkg/escape"
)

// Button identifies which corner of a selection a click designates.
type Button int

const (
	Left Button = iota
	Right
)

func (b Button) String() string {
	if b == Left {
		return "left"
	}
	return "right"
}

// A Point is a pixel of the render grid.
type Point struct {
	X, Y int
}

// An Event is one discrete command from the input source.
type Event interface {
	event()
}

// Quit ends the program.
type Quit struct{}

// Close ends the current session; the explorer starts a fresh one.
type Close struct{}

// SetIterationBound re-renders the current view with a new bound.
type SetIterationBound struct {
	N int
}

// CornerClicked marks one corner of a zoom selection.
type CornerClicked struct {
	Button Button
	At     Point
}

// ZoomIn is emitted once both corners of a selection are known.
type ZoomIn struct {
	A, B Point
}

type ZoomOut struct{}

type Redo struct{}

// Export writes the current frame to the bitmap path.
type Export struct{}

// CancelSelection drops a half-made corner selection.
type CancelSelection struct{}

// Invalid carries input that could not be turned into a command.
type Invalid struct {
	Err error
}

func (Quit) event()              {}
func (Close) event()             {}
func (SetIterationBound) event() {}
func (CornerClicked) event()     {}
func (ZoomIn) event()            {}
func (ZoomOut) event()           {}
func (Redo) event()              {}
func (Export) event()            {}
func (CancelSelection) event()   {}
func (Invalid) event()           {}

// ParseIterationBound parses a typed iteration count.
func ParseIterationBound(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", escape.ErrInvalidIterationBound, s)
	}
	if err := escape.ValidateBound(n); err != nil {
		return 0, err
	}
	return n, nil
}
