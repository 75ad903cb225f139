// Package session drives rendering and zoom navigation for one exploration session.
package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/willbeason/mandelzoom/pkg/bitmap"
	"github.com/willbeason/mandelzoom/pkg/config"
	"github.com/willbeason/mandelzoom/pkg/escape"
	"github.com/willbeason/mandelzoom/pkg/history"
	"github.com/willbeason/mandelzoom/pkg/input"
	"github.com/willbeason/mandelzoom/pkg/palette"
	"github.com/willbeason/mandelzoom/pkg/viewport"
)

// ErrNoFrame is returned by Export before the first render has completed.
var ErrNoFrame = errors.New("nothing rendered yet")

// A Frame is one completed render.
type Frame struct {
	Viewport      viewport.Viewport
	MaxIterations int

	Grid  *escape.Grid
	Image *image.RGBA

	Elapsed time.Duration
}

// Session owns the navigation history and the frame on display.
//
// A failed or cancelled operation leaves the history, the iteration bound and the
// current frame exactly as they were.
type Session struct {
	root    viewport.Viewport
	history *history.History[viewport.Viewport]

	mapper        palette.Mapper
	maxIterations int
	workers       int
	bitmapPath    string

	frame *Frame
}

// New builds a session positioned at the configured root view. Nothing is rendered until Start.
func New(cfg config.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	root, err := cfg.Root()
	if err != nil {
		return nil, err
	}
	overflow, err := cfg.Overflow()
	if err != nil {
		return nil, err
	}
	policy, err := cfg.PalettePolicy()
	if err != nil {
		return nil, err
	}

	h, err := history.New(cfg.HistoryCapacity, overflow, root)
	if err != nil {
		return nil, err
	}

	return &Session{
		root:          root,
		history:       h,
		mapper:        palette.Mapper{Policy: policy},
		maxIterations: cfg.MaxIterations,
		workers:       cfg.Workers,
		bitmapPath:    cfg.BitmapPath,
	}, nil
}

// Render computes and colours every pixel of vp. It does not touch session state.
func (s *Session) Render(ctx context.Context, vp viewport.Viewport, maxIterations int) (*Frame, error) {
	start := time.Now()

	g, err := escape.Compute(ctx, vp, maxIterations, s.workers)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", vp, err)
	}

	f := &Frame{
		Viewport:      vp,
		MaxIterations: maxIterations,
		Grid:          g,
		Image:         s.mapper.Paint(g),
		Elapsed:       time.Since(start),
	}
	log.Printf("rendered %s at %d iterations in %s", vp, maxIterations, f.Elapsed)

	return f, nil
}

// Start renders the current view.
func (s *Session) Start(ctx context.Context) (*Frame, error) {
	f, err := s.Render(ctx, s.history.Current(), s.maxIterations)
	if err != nil {
		return nil, err
	}
	s.frame = f
	return f, nil
}

// ZoomIn renders the region between two pixel corners of the current view and records it.
func (s *Session) ZoomIn(ctx context.Context, a, b input.Point) (*Frame, error) {
	vp, err := viewport.FromCorners(s.history.Current(), a.X, a.Y, b.X, b.Y)
	if err != nil {
		return nil, err
	}
	if !s.history.CanPush() {
		return nil, fmt.Errorf("%w: %d zooms deep", history.ErrHistoryExhausted, s.history.Capacity())
	}

	f, err := s.Render(ctx, vp, s.maxIterations)
	if err != nil {
		return nil, err
	}
	if err := s.history.Push(vp); err != nil {
		return nil, err
	}

	s.frame = f
	return f, nil
}

// ZoomOut re-renders the previous view. At the root it returns history.ErrAlreadyAtRoot.
func (s *Session) ZoomOut(ctx context.Context) (*Frame, error) {
	vp, err := s.history.Undo()
	if err != nil {
		return nil, err
	}

	f, err := s.Render(ctx, vp, s.maxIterations)
	if err != nil {
		_, _ = s.history.Redo()
		return nil, err
	}

	s.frame = f
	return f, nil
}

// Redo re-renders the view most recently left by ZoomOut.
func (s *Session) Redo(ctx context.Context) (*Frame, error) {
	vp, err := s.history.Redo()
	if err != nil {
		return nil, err
	}

	f, err := s.Render(ctx, vp, s.maxIterations)
	if err != nil {
		_, _ = s.history.Undo()
		return nil, err
	}

	s.frame = f
	return f, nil
}

// SetIterations re-renders the current view with a new bound, without a history entry.
func (s *Session) SetIterations(ctx context.Context, n int) (*Frame, error) {
	if err := escape.ValidateBound(n); err != nil {
		return nil, err
	}

	f, err := s.Render(ctx, s.history.Current(), n)
	if err != nil {
		return nil, err
	}

	s.maxIterations = n
	s.frame = f
	return f, nil
}

// Restart discards the zoom history and renders the root view. The iteration bound is kept.
func (s *Session) Restart(ctx context.Context) (*Frame, error) {
	f, err := s.Render(ctx, s.root, s.maxIterations)
	if err != nil {
		return nil, err
	}

	s.history.Reset(s.root)
	s.frame = f
	return f, nil
}

// Export writes the current frame as a bitmap. An empty path uses the configured one.
func (s *Session) Export(path string) (string, error) {
	if s.frame == nil {
		return "", ErrNoFrame
	}
	if path == "" {
		path = s.bitmapPath
	}
	if err := bitmap.Save(path, s.frame.Image); err != nil {
		return "", err
	}
	log.Printf("exported %s to %s", s.frame.Viewport, path)
	return path, nil
}

// Frame is the last completed render, or nil before Start.
func (s *Session) Frame() *Frame {
	return s.frame
}

// Current is the view under the history cursor.
func (s *Session) Current() viewport.Viewport {
	return s.history.Current()
}

func (s *Session) MaxIterations() int {
	return s.maxIterations
}

// Depth returns the history cursor and the number of stored views.
func (s *Session) Depth() (int, int) {
	return s.history.Cursor(), s.history.Len()
}
