// Package escape classifies points of the complex plane by escape-time iteration.
package escape

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/willbeason/mandelzoom/pkg/transforms"
)

// DivergeThreshold is the modulus above which an iterate is classified as escaped.
const DivergeThreshold = 2.0

// ErrInvalidIterationBound is returned for an iteration bound below 1.
var ErrInvalidIterationBound = errors.New("invalid iteration bound")

// CellResult is the terminal state of iterating a single plane coordinate.
//
// Exactly one of the following holds:
//   - Diverged and 1 <= Iterations < max
//   - !Diverged and Iterations == max
//
// An iterate that first exceeds the threshold on the final permitted step is bounded.
type CellResult struct {
	C          complex128
	Z          complex128
	Iterations int
	Diverged   bool
}

// ValidateBound rejects iteration bounds below 1.
func ValidateBound(maxIterations int) error {
	if maxIterations < 1 {
		return fmt.Errorf("%w: %d, must be at least 1", ErrInvalidIterationBound, maxIterations)
	}
	return nil
}

// Iterate runs the quadratic recurrence from z = 0 for c.
func Iterate(c complex128, maxIterations int) CellResult {
	return IterateStep(transforms.Quadratic{}, c, maxIterations)
}

// IterateStep runs step from z = 0 for c until the iterate escapes or maxIterations steps
// have been taken. Only an escape before the last step sets Diverged. A bound below 1
// performs no steps.
func IterateStep(step transforms.Step, c complex128, maxIterations int) CellResult {
	r := CellResult{C: c}

	for r.Iterations < maxIterations {
		r.Z = step.Next(r.Z, c)
		r.Iterations++

		if cmplx.Abs(r.Z) > DivergeThreshold {
			r.Diverged = r.Iterations < maxIterations
			break
		}
	}

	return r
}
