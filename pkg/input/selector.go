package input

// Selector pairs a left and a right corner click into a ZoomIn.
//
// Clicking the same button twice moves that corner; the selection completes as soon
// as both buttons have been clicked.
type Selector struct {
	corners [2]Point
	have    [2]bool
}

// Click records a corner and returns the completed selection, if any.
func (s *Selector) Click(c CornerClicked) (ZoomIn, bool) {
	s.corners[c.Button] = c.At
	s.have[c.Button] = true

	if !s.have[Left] || !s.have[Right] {
		return ZoomIn{}, false
	}

	z := ZoomIn{A: s.corners[Left], B: s.corners[Right]}
	s.Reset()
	return z, true
}

// Pending returns the corner waiting for its partner.
func (s *Selector) Pending() (CornerClicked, bool) {
	for _, b := range []Button{Left, Right} {
		if s.have[b] {
			return CornerClicked{Button: b, At: s.corners[b]}, true
		}
	}
	return CornerClicked{}, false
}

func (s *Selector) Reset() {
	*s = Selector{}
}
