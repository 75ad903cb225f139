package transforms

// Quadratic is the Mandelbrot recurrence z -> z^2 + c.
type Quadratic struct{}

func (Quadratic) Next(z complex128, c complex128) complex128 {
	return z*z + c
}
