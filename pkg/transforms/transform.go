package transforms

// A Step advances an escape-time iterate by one application of the recurrence.
//
// z is the current iterate and c is the plane coordinate of the cell being classified.
type Step interface {
	Next(z complex128, c complex128) complex128
}

var _ Step = Quadratic{}
