// Package palette turns escape-time results into colours.
//
// Escaped points are shaded red by how late they escaped; darker red escaped sooner.
// Bounded points get green and blue from the real and imaginary parts of their final iterate.
package palette

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/willbeason/mandelzoom/pkg/escape"
)

// A Policy decides how channel values outside [0, 255] become 8-bit values.
type Policy int

const (
	// Clamp saturates channels at 0 and 255.
	Clamp Policy = iota
	// Wrap keeps the low 8 bits, matching a plain integer-to-byte conversion.
	Wrap
)

func (p Policy) String() string {
	switch p {
	case Clamp:
		return "clamp"
	case Wrap:
		return "wrap"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy accepts "clamp" or "wrap".
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "clamp":
		return Clamp, nil
	case "wrap":
		return Wrap, nil
	default:
		return 0, fmt.Errorf("unknown palette policy %q, want clamp or wrap", s)
	}
}

// Mapper colours CellResults.
type Mapper struct {
	Policy Policy
}

// Color returns the opaque colour of r rendered with the bound maxIterations.
func (m Mapper) Color(r escape.CellResult, maxIterations int) color.RGBA {
	const t = escape.DivergeThreshold

	if !r.Diverged {
		return color.RGBA{
			R: 0,
			G: m.channel(math.Floor(255 * (real(r.Z) - t) / (2 * t))),
			B: m.channel(math.Floor(255 * (imag(r.Z) - t) / (2 * t))),
			A: 255,
		}
	}

	return color.RGBA{R: m.channel(escapeShade(r.Iterations, maxIterations)), A: 255}
}

// escapeShade is floor(255 * ln(n) / ln(max)), defined as 0 for n <= 1 and 255 for n >= max.
func escapeShade(n, maxIterations int) float64 {
	switch {
	case n >= maxIterations:
		return 255
	case n <= 1:
		return 0
	}
	return math.Floor(255 * math.Log(float64(n)) / math.Log(float64(maxIterations)))
}

func (m Mapper) channel(v float64) uint8 {
	if m.Policy == Wrap {
		return uint8(int64(v))
	}

	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// Paint colours every cell of g into a new image the size of the grid.
func (m Mapper) Paint(g *escape.Grid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width(), g.Height()))
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			img.SetRGBA(x, y, m.Color(g.At(x, y), g.MaxIterations))
		}
	}
	return img
}
