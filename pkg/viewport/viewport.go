// Package viewport maps a rectangular region of the complex plane onto a fixed pixel grid.
package viewport

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidViewport is returned for bounds with a non-positive extent on either axis,
// non-finite bounds, or a grid smaller than 2x2.
var ErrInvalidViewport = errors.New("invalid viewport")

// Bounds are the real-axis (X) and imaginary-axis (Y) limits of a region.
type Bounds struct {
	StartX, EndX float64
	StartY, EndY float64
}

func (b Bounds) String() string {
	return fmt.Sprintf("re[%g, %g] im[%g, %g]", b.StartX, b.EndX, b.StartY, b.EndY)
}

// A Viewport is an immutable Bounds bound to a grid of Width x Height pixels.
//
// Pixel column i maps to StartX + i*stepX and pixel row j to StartY + j*stepY,
// so column 0 and row 0 sit exactly on the start bounds.
type Viewport struct {
	bounds Bounds

	width, height int
	stepX, stepY  float64
}

// New validates the bounds against a width x height grid.
func New(b Bounds, width, height int) (Viewport, error) {
	if width < 2 || height < 2 {
		return Viewport{}, fmt.Errorf("%w: grid %dx%d, need at least 2x2", ErrInvalidViewport, width, height)
	}
	for _, v := range []float64{b.StartX, b.EndX, b.StartY, b.EndY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Viewport{}, fmt.Errorf("%w: non-finite bound in %s", ErrInvalidViewport, b)
		}
	}
	if !(b.EndX > b.StartX) || !(b.EndY > b.StartY) {
		return Viewport{}, fmt.Errorf("%w: non-positive extent in %s", ErrInvalidViewport, b)
	}

	vp := Viewport{
		bounds: b,
		width:  width,
		height: height,
		stepX:  (b.EndX - b.StartX) / float64(width-1),
		stepY:  (b.EndY - b.StartY) / float64(height-1),
	}
	// Extents below float64 resolution collapse every pixel onto the same coordinate.
	if vp.stepX <= 0 || vp.stepY <= 0 || b.StartX+vp.stepX == b.StartX || b.StartY+vp.stepY == b.StartY {
		return Viewport{}, fmt.Errorf("%w: extent of %s below float64 resolution", ErrInvalidViewport, b)
	}

	return vp, nil
}

func (vp Viewport) Bounds() Bounds {
	return vp.bounds
}

func (vp Viewport) Width() int {
	return vp.width
}

func (vp Viewport) Height() int {
	return vp.height
}

// Steps returns the plane distance between horizontally and vertically adjacent pixels.
func (vp Viewport) Steps() (float64, float64) {
	return vp.stepX, vp.stepY
}

// PlaneX returns the real coordinate of pixel column i.
func (vp Viewport) PlaneX(i int) float64 {
	return vp.bounds.StartX + float64(i)*vp.stepX
}

// PlaneY returns the imaginary coordinate of pixel row j.
func (vp Viewport) PlaneY(j int) float64 {
	return vp.bounds.StartY + float64(j)*vp.stepY
}

// Point returns the plane coordinate of pixel (i, j).
func (vp Viewport) Point(i, j int) complex128 {
	return complex(vp.PlaneX(i), vp.PlaneY(j))
}

// InGrid reports whether (i, j) addresses a pixel of the grid.
func (vp Viewport) InGrid(i, j int) bool {
	return i >= 0 && i < vp.width && j >= 0 && j < vp.height
}

func (vp Viewport) String() string {
	return fmt.Sprintf("%s @ %dx%d", vp.bounds, vp.width, vp.height)
}

// FromCorners builds the viewport spanned by two pixel corners of cur.
//
// The corners may be given in any order; the result always has start < end on both axes.
func FromCorners(cur Viewport, x1, y1, x2, y2 int) (Viewport, error) {
	if !cur.InGrid(x1, y1) || !cur.InGrid(x2, y2) {
		return Viewport{}, fmt.Errorf("%w: corner (%d,%d)-(%d,%d) outside %dx%d grid",
			ErrInvalidViewport, x1, y1, x2, y2, cur.width, cur.height)
	}

	ax, bx := cur.PlaneX(x1), cur.PlaneX(x2)
	ay, by := cur.PlaneY(y1), cur.PlaneY(y2)

	return New(Bounds{
		StartX: math.Min(ax, bx),
		EndX:   math.Max(ax, bx),
		StartY: math.Min(ay, by),
		EndY:   math.Max(ay, by),
	}, cur.width, cur.height)
}
