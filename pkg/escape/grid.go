package escape

import (
	"context"
	"runtime"
	"sync"

	"github.com/willbeason/mandelzoom/pkg/viewport"
)

// A Grid holds one CellResult per pixel of a viewport for a single render.
type Grid struct {
	Viewport      viewport.Viewport
	MaxIterations int

	// cells is row-major: pixel (i, j) is cells[j*width+i].
	cells []CellResult
}

func (g *Grid) Width() int {
	return g.Viewport.Width()
}

func (g *Grid) Height() int {
	return g.Viewport.Height()
}

// At returns the result for pixel column i, row j.
func (g *Grid) At(i, j int) CellResult {
	return g.cells[j*g.Viewport.Width()+i]
}

// Compute iterates every pixel of vp with the given bound.
//
// Rows are spread across workers goroutines (runtime.NumCPU() when workers < 1). Each
// row is written by exactly one worker, so the grid is identical for any worker count.
// When ctx is cancelled the partial grid is discarded and ctx.Err() returned.
func Compute(ctx context.Context, vp viewport.Viewport, maxIterations, workers int) (*Grid, error) {
	if err := ValidateBound(maxIterations); err != nil {
		return nil, err
	}
	if vp.Width() < 2 || vp.Height() < 2 {
		return nil, viewport.ErrInvalidViewport
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	width, height := vp.Width(), vp.Height()
	g := &Grid{
		Viewport:      vp,
		MaxIterations: maxIterations,
		cells:         make([]CellResult, width*height),
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	yChannel := make(chan int)

	go func() {
		defer close(yChannel)
		for y := 0; y < height; y++ {
			select {
			case yChannel <- y:
			case <-ctx.Done():
				return
			}
		}
	}()

	ywg := sync.WaitGroup{}
	ywg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer ywg.Done()
			for y := range yChannel {
				if ctx.Err() != nil {
					continue
				}

				ci := vp.PlaneY(y)
				row := g.cells[y*width : (y+1)*width]
				for x := range row {
					row[x] = Iterate(complex(vp.PlaneX(x), ci), maxIterations)
				}
			}
		}()
	}

	ywg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return g, nil
}
