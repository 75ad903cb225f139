package display

import (
	"github.com/gdamore/tcell/v2"
	"github.com/willbeason/mandelzoom/pkg/input"
)

// Translate turns a terminal event into explorer commands for a gridW x gridH frame.
//
// Keys:
//
//	q, Ctrl+C     quit
//	c             close the session and start a new one
//	Backspace, z  zoom out
//	y             redo a zoom
//	e             type a new iteration bound (Enter submits, Esc cancels)
//	s             export the frame
//	Esc           drop a half-made corner selection
//
// A left click sets one corner of a zoom selection and a right click the other.
func (s *Screen) Translate(ev tcell.Event, gridW, gridH int) []input.Event {
	if _, ok := ev.(*tcell.EventResize); ok {
		s.Redraw()
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		if s.prompt != nil {
			return s.promptKey(ev)
		}
		return s.key(ev)
	case *tcell.EventMouse:
		return s.mouse(ev, gridW, gridH)
	}
	return nil
}

func (s *Screen) key(ev *tcell.EventKey) []input.Event {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return []input.Event{input.Quit{}}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return []input.Event{input.ZoomOut{}}
	case tcell.KeyEscape:
		return []input.Event{input.CancelSelection{}}
	case tcell.KeyRune:
	default:
		return nil
	}

	switch ev.Rune() {
	case 'q':
		return []input.Event{input.Quit{}}
	case 'c':
		return []input.Event{input.Close{}}
	case 'z':
		return []input.Event{input.ZoomOut{}}
	case 'y':
		return []input.Event{input.Redo{}}
	case 's':
		return []input.Event{input.Export{}}
	case 'e':
		s.prompt = []rune{}
		s.draw()
	}
	return nil
}

func (s *Screen) promptKey(ev *tcell.EventKey) []input.Event {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return []input.Event{input.Quit{}}
	case tcell.KeyEscape:
		s.prompt = nil
		s.draw()
		return nil
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(s.prompt) > 0 {
			s.prompt = s.prompt[:len(s.prompt)-1]
		}
		s.draw()
		return nil
	case tcell.KeyEnter:
		text := string(s.prompt)
		s.prompt = nil
		s.draw()

		n, err := input.ParseIterationBound(text)
		if err != nil {
			return []input.Event{input.Invalid{Err: err}}
		}
		return []input.Event{input.SetIterationBound{N: n}}
	case tcell.KeyRune:
		s.prompt = append(s.prompt, ev.Rune())
		s.draw()
	}
	return nil
}

func (s *Screen) mouse(ev *tcell.EventMouse, gridW, gridH int) []input.Event {
	buttons := ev.Buttons()
	pressed := buttons &^ s.prevButtons
	s.prevButtons = buttons

	if pressed&(tcell.ButtonPrimary|tcell.ButtonSecondary) == 0 {
		return nil
	}

	x, y := ev.Position()
	at, ok := s.CellToPixel(x, y, gridW, gridH)
	if !ok {
		return nil
	}

	var out []input.Event
	if pressed&tcell.ButtonPrimary != 0 {
		out = append(out, input.CornerClicked{Button: input.Left, At: at})
	}
	if pressed&tcell.ButtonSecondary != 0 {
		out = append(out, input.CornerClicked{Button: input.Right, At: at})
	}
	return out
}
