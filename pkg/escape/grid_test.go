package escape

import (
	"context"
	"errors"
	"testing"

	"github.com/willbeason/mandelzoom/pkg/viewport"
)

func testViewport(t *testing.T, w, h int) viewport.Viewport {
	t.Helper()
	vp, err := viewport.New(viewport.Full, w, h)
	if err != nil {
		t.Fatal(err)
	}
	return vp
}

func TestComputeMatchesIterate(t *testing.T) {
	vp := testViewport(t, 33, 21)

	g, err := Compute(context.Background(), vp, 40, 3)
	if err != nil {
		t.Fatal(err)
	}

	if g.Width() != 33 || g.Height() != 21 {
		t.Fatalf("grid is %dx%d, want 33x21", g.Width(), g.Height())
	}
	for j := 0; j < g.Height(); j++ {
		for i := 0; i < g.Width(); i++ {
			want := Iterate(vp.Point(i, j), 40)
			if got := g.At(i, j); got != want {
				t.Fatalf("At(%d, %d) = %+v, want %+v", i, j, got, want)
			}
		}
	}
}

func TestComputeDeterministicAcrossWorkers(t *testing.T) {
	vp := testViewport(t, 64, 48)

	base, err := Compute(context.Background(), vp, 100, 1)
	if err != nil {
		t.Fatal(err)
	}

	for _, workers := range []int{0, 2, 7, 64} {
		g, err := Compute(context.Background(), vp, 100, workers)
		if err != nil {
			t.Fatal(err)
		}
		for idx := range base.cells {
			if g.cells[idx] != base.cells[idx] {
				t.Fatalf("workers=%d: cell %d = %+v, want %+v", workers, idx, g.cells[idx], base.cells[idx])
			}
		}
	}
}

func TestComputeRejectsBound(t *testing.T) {
	_, err := Compute(context.Background(), testViewport(t, 4, 4), 0, 1)
	if !errors.Is(err, ErrInvalidIterationBound) {
		t.Errorf("Compute with bound 0: %v, want ErrInvalidIterationBound", err)
	}
}

func TestComputeRejectsZeroViewport(t *testing.T) {
	_, err := Compute(context.Background(), viewport.Viewport{}, 10, 1)
	if !errors.Is(err, viewport.ErrInvalidViewport) {
		t.Errorf("Compute with zero viewport: %v, want ErrInvalidViewport", err)
	}
}

func TestComputeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g, err := Compute(ctx, testViewport(t, 16, 16), 10, 2)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Compute on cancelled context: %v, want context.Canceled", err)
	}
	if g != nil {
		t.Error("Compute returned a partial grid")
	}
}
