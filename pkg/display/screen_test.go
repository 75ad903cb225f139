package display

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/willbeason/mandelzoom/pkg/escape"
	"github.com/willbeason/mandelzoom/pkg/input"
)

func newScreen(t *testing.T, w, h int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	sim.SetSize(w, h)
	s := New(sim)
	t.Cleanup(s.Fini)
	return s, sim
}

func readScreenLine(screen tcell.Screen, x, y, width int) string {
	runes := make([]rune, width)
	for i := 0; i < width; i++ {
		ch, _, _, _ := screen.GetContent(x+i, y)
		if ch == 0 {
			ch = ' '
		}
		runes[i] = ch
	}
	return strings.TrimRight(string(runes), " ")
}

func colorAt(screen tcell.Screen, x, y int) (color.RGBA, color.RGBA) {
	_, _, style, _ := screen.GetContent(x, y)
	fg, bg, _ := style.Decompose()
	return toRGBA(fg), toRGBA(bg)
}

func toRGBA(c tcell.Color) color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}

func TestShowDrawsHalfBlocks(t *testing.T) {
	s, sim := newScreen(t, 4, 3)

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(10 * x), G: uint8(10 * y), B: 200, A: 255})
		}
	}
	s.Show(img)

	for cy := 0; cy < 2; cy++ {
		for cx := 0; cx < 4; cx++ {
			ch, _, _, _ := sim.GetContent(cx, cy)
			if ch != halfBlock {
				t.Fatalf("cell (%d, %d) = %q, want half block", cx, cy, ch)
			}
			fg, bg := colorAt(sim, cx, cy)
			if fg != img.RGBAAt(cx, 2*cy) || bg != img.RGBAAt(cx, 2*cy+1) {
				t.Fatalf("cell (%d, %d) = %v over %v, want %v over %v",
					cx, cy, fg, bg, img.RGBAAt(cx, 2*cy), img.RGBAAt(cx, 2*cy+1))
			}
		}
	}
}

func TestTranslateResizeRepaints(t *testing.T) {
	s, sim := newScreen(t, 4, 3)

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	s.Show(img)
	s.Status("ready")

	sim.SetSize(8, 5)
	if evs := s.Translate(tcell.NewEventResize(8, 5), 2, 2); len(evs) != 0 {
		t.Fatalf("resize produced events %v", evs)
	}

	for cx := 0; cx < 8; cx++ {
		if ch, _, _, _ := sim.GetContent(cx, 3); ch != halfBlock {
			t.Fatalf("cell (%d, 3) = %q after resize, want half block", cx, ch)
		}
	}
	if got := readScreenLine(sim, 0, 4, 8); got != "ready" {
		t.Fatalf("status line after resize = %q", got)
	}
}

func TestStatusLine(t *testing.T) {
	s, sim := newScreen(t, 20, 4)
	s.Status("zoom 1/2")

	if got := readScreenLine(sim, 0, 3, 20); got != "zoom 1/2" {
		t.Fatalf("status line = %q", got)
	}
}

func TestCellToPixel(t *testing.T) {
	s, _ := newScreen(t, 80, 25)

	tcs := []struct {
		cx, cy int
		want   input.Point
		ok     bool
	}{
		{cx: 0, cy: 0, want: input.Point{X: 0, Y: 0}, ok: true},
		{cx: 79, cy: 23, want: input.Point{X: 1023, Y: 1023}, ok: true},
		{cx: 40, cy: 12, want: input.Point{X: 518, Y: 534}, ok: true},
		{cx: 10, cy: 24, ok: false},
		{cx: 80, cy: 0, ok: false},
	}

	for _, tc := range tcs {
		got, ok := s.CellToPixel(tc.cx, tc.cy, 1024, 1024)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("CellToPixel(%d, %d) = %v, %v, want %v, %v", tc.cx, tc.cy, got, ok, tc.want, tc.ok)
		}
	}
}

func TestTranslateClicks(t *testing.T) {
	s, _ := newScreen(t, 10, 6)

	evs := s.Translate(tcell.NewEventMouse(0, 0, tcell.ButtonPrimary, tcell.ModNone), 100, 100)
	if len(evs) != 1 || evs[0] != (input.CornerClicked{Button: input.Left, At: input.Point{}}) {
		t.Fatalf("left press = %v", evs)
	}

	// Holding the button while moving is not another click.
	if evs := s.Translate(tcell.NewEventMouse(3, 3, tcell.ButtonPrimary, tcell.ModNone), 100, 100); len(evs) != 0 {
		t.Fatalf("held button = %v", evs)
	}
	if evs := s.Translate(tcell.NewEventMouse(3, 3, tcell.ButtonNone, tcell.ModNone), 100, 100); len(evs) != 0 {
		t.Fatalf("release = %v", evs)
	}

	evs = s.Translate(tcell.NewEventMouse(9, 4, tcell.ButtonSecondary, tcell.ModNone), 100, 100)
	want := input.CornerClicked{Button: input.Right, At: input.Point{X: 99, Y: 99}}
	if len(evs) != 1 || evs[0] != want {
		t.Fatalf("right press = %v, want %v", evs, want)
	}

	// The status row is not part of the frame.
	s.Translate(tcell.NewEventMouse(0, 5, tcell.ButtonNone, tcell.ModNone), 100, 100)
	if evs := s.Translate(tcell.NewEventMouse(0, 5, tcell.ButtonPrimary, tcell.ModNone), 100, 100); len(evs) != 0 {
		t.Fatalf("click on status line = %v", evs)
	}
}

func keys(s *Screen, text string) []input.Event {
	var out []input.Event
	for _, r := range text {
		out = append(out, s.Translate(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone), 10, 10)...)
	}
	return out
}

func enter(s *Screen) []input.Event {
	return s.Translate(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), 10, 10)
}

func TestTranslateIterationPrompt(t *testing.T) {
	s, sim := newScreen(t, 30, 4)

	if evs := keys(s, "e25"); len(evs) != 0 {
		t.Fatalf("typing into prompt emitted %v", evs)
	}
	if got := readScreenLine(sim, 0, 3, 30); got != "iterations: 25_" {
		t.Fatalf("prompt line = %q", got)
	}

	evs := enter(s)
	if len(evs) != 1 || evs[0] != (input.SetIterationBound{N: 25}) {
		t.Fatalf("Enter = %v", evs)
	}

	keys(s, "e0")
	evs = enter(s)
	if len(evs) != 1 {
		t.Fatalf("Enter on 0 = %v", evs)
	}
	inv, ok := evs[0].(input.Invalid)
	if !ok || !errors.Is(inv.Err, escape.ErrInvalidIterationBound) {
		t.Fatalf("Enter on 0 = %v, want invalid bound", evs)
	}

	keys(s, "e9")
	s.Translate(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), 10, 10)
	if evs := keys(s, "q"); len(evs) != 1 || evs[0] != (input.Quit{}) {
		t.Fatalf("q after cancelled prompt = %v", evs)
	}
}

func TestTranslateKeys(t *testing.T) {
	s, _ := newScreen(t, 10, 4)

	tcs := []struct {
		ev   *tcell.EventKey
		want input.Event
	}{
		{ev: tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), want: input.Quit{}},
		{ev: tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), want: input.Quit{}},
		{ev: tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone), want: input.Close{}},
		{ev: tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), want: input.ZoomOut{}},
		{ev: tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), want: input.ZoomOut{}},
		{ev: tcell.NewEventKey(tcell.KeyRune, 'y', tcell.ModNone), want: input.Redo{}},
		{ev: tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone), want: input.Export{}},
		{ev: tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), want: input.CancelSelection{}},
	}

	for _, tc := range tcs {
		evs := s.Translate(tc.ev, 10, 10)
		if len(evs) != 1 || evs[0] != tc.want {
			t.Errorf("Translate(%s) = %v, want %v", tc.ev.Name(), evs, tc.want)
		}
	}
}
