// Package display draws frames on a terminal and turns terminal events into explorer commands.
//
// Each terminal cell shows two vertically stacked pixels with the upper half block glyph:
// the foreground is the top pixel, the background the bottom one. The last terminal row
// is the status line.
package display

import (
	"image"
	"image/color"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/willbeason/mandelzoom/pkg/input"
	xdraw "golang.org/x/image/draw"
)

const halfBlock = '▀'

var statusStyle = tcell.StyleDefault.
	Foreground(tcell.NewRGBColor(220, 220, 220)).
	Background(tcell.NewRGBColor(40, 40, 60))

// Screen is the terminal rendering surface. It is safe for one goroutine to draw while
// another translates events.
type Screen struct {
	screen tcell.Screen

	mu sync.Mutex

	frame  *image.RGBA
	status string

	// Iteration prompt; nil when closed.
	prompt []rune

	prevButtons tcell.ButtonMask
}

// New takes ownership of an initialised tcell screen.
func New(screen tcell.Screen) *Screen {
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset))
	screen.HideCursor()
	screen.EnableMouse(tcell.MouseButtonEvents)
	screen.Clear()

	return &Screen{screen: screen}
}

// Fini restores the terminal.
func (s *Screen) Fini() {
	s.screen.Fini()
}

// PollEvent blocks for the next terminal event; nil once the screen is finalised.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// ImageArea is the size of the frame area in cells.
func (s *Screen) ImageArea() (int, int) {
	w, h := s.screen.Size()
	if h > 1 {
		h--
	}
	return w, h
}

// Show replaces the displayed frame in one update.
func (s *Screen) Show(img *image.RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frame = img
	s.draw()
}

// Status replaces the status line message.
func (s *Screen) Status(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = msg
	s.draw()
}

// Redraw repaints after a resize.
func (s *Screen) Redraw() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Sync()
	s.draw()
}

func (s *Screen) draw() {
	s.drawFrame()
	s.drawStatus()
	s.screen.Show()
}

func (s *Screen) drawFrame() {
	if s.frame == nil {
		return
	}

	w, h := s.ImageArea()
	if w < 1 || h < 1 {
		return
	}

	scaled := image.NewRGBA(image.Rect(0, 0, w, 2*h))
	xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), s.frame, s.frame.Bounds(), xdraw.Src, nil)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			top := scaled.RGBAAt(x, 2*y)
			bottom := scaled.RGBAAt(x, 2*y+1)
			style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
			s.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
}

func (s *Screen) drawStatus() {
	w, h := s.screen.Size()
	if h < 2 {
		return
	}

	text := []rune(s.status)
	if s.prompt != nil {
		text = append([]rune("iterations: "), s.prompt...)
		text = append(text, '_')
	}

	y := h - 1
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(text) {
			r = text[x]
		}
		s.screen.SetContent(x, y, r, nil, statusStyle)
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// CellToPixel maps a terminal cell of the frame area onto a pixel of a gridW x gridH frame.
//
// The first and last cell of each axis map onto the first and last pixel, so a selection
// spanning the whole frame area spans the whole view.
func (s *Screen) CellToPixel(cx, cy, gridW, gridH int) (input.Point, bool) {
	w, h := s.ImageArea()
	if cx < 0 || cy < 0 || cx >= w || cy >= h {
		return input.Point{}, false
	}
	return input.Point{X: scale(cx, w, gridW), Y: scale(cy, h, gridH)}, true
}

func scale(c, cells, pixels int) int {
	if cells < 2 {
		return 0
	}
	return (c*(pixels-1) + (cells-1)/2) / (cells - 1)
}
