// Package explorer runs an interactive zoom session against a display surface.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/willbeason/mandelzoom/pkg/history"
	"github.com/willbeason/mandelzoom/pkg/input"
	"github.com/willbeason/mandelzoom/pkg/session"
)

// A Surface shows whole frames and a one-line status message.
type Surface interface {
	Show(img *image.RGBA)
	Status(msg string)
}

// Explorer applies input commands to a session one at a time.
//
// The surface only ever receives completed frames; a failed command leaves the previous
// frame on display and reports the failure on the status line.
type Explorer struct {
	session *session.Session
	surface Surface

	selector input.Selector

	// AutoSave exports every completed frame.
	AutoSave bool
}

func New(s *session.Session, surface Surface) *Explorer {
	return &Explorer{session: s, surface: surface}
}

// Run renders the first frame and handles events until Quit, a closed channel or ctx ends.
func (e *Explorer) Run(ctx context.Context, events <-chan input.Event) error {
	e.surface.Status("rendering...")
	f, err := e.session.Start(ctx)
	if err != nil {
		return err
	}
	e.show(f)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if e.Handle(ctx, ev) {
				return nil
			}
		}
	}
}

// Handle applies one event and reports whether the explorer should stop.
func (e *Explorer) Handle(ctx context.Context, ev input.Event) bool {
	switch ev := ev.(type) {
	case input.Quit:
		return true

	case input.Close:
		e.selector.Reset()
		e.apply(ctx, "restarting", e.session.Restart)

	case input.SetIterationBound:
		e.apply(ctx, fmt.Sprintf("rendering at %d iterations", ev.N), func(ctx context.Context) (*session.Frame, error) {
			return e.session.SetIterations(ctx, ev.N)
		})

	case input.CornerClicked:
		z, ok := e.selector.Click(ev)
		if !ok {
			e.surface.Status(fmt.Sprintf("%s corner at (%d, %d); %s-click the opposite corner",
				ev.Button, ev.At.X, ev.At.Y, other(ev.Button)))
			return false
		}
		e.zoomIn(ctx, z)

	case input.ZoomIn:
		e.selector.Reset()
		e.zoomIn(ctx, ev)

	case input.ZoomOut:
		e.apply(ctx, "zooming out", e.session.ZoomOut)

	case input.Redo:
		e.apply(ctx, "redoing zoom", e.session.Redo)

	case input.Export:
		e.export()

	case input.CancelSelection:
		if _, ok := e.selector.Pending(); ok {
			e.selector.Reset()
			e.surface.Status("selection cancelled")
		}

	case input.Invalid:
		e.fail(ev.Err)
	}

	return false
}

func (e *Explorer) zoomIn(ctx context.Context, z input.ZoomIn) {
	e.apply(ctx, "zooming in", func(ctx context.Context) (*session.Frame, error) {
		return e.session.ZoomIn(ctx, z.A, z.B)
	})
}

func (e *Explorer) apply(ctx context.Context, doing string, op func(context.Context) (*session.Frame, error)) {
	e.surface.Status(doing + "...")

	f, err := op(ctx)
	if err != nil {
		e.fail(err)
		return
	}
	e.show(f)
}

func (e *Explorer) show(f *session.Frame) {
	e.surface.Show(f.Image)
	e.surface.Status(e.describe(f))

	if e.AutoSave {
		e.export()
	}
}

func (e *Explorer) export() {
	path, err := e.session.Export("")
	if err != nil {
		e.fail(fmt.Errorf("export: %w", err))
		return
	}
	e.surface.Status(fmt.Sprintf("%s | saved %s", e.describe(e.session.Frame()), path))
}

func (e *Explorer) describe(f *session.Frame) string {
	cursor, _ := e.session.Depth()
	return fmt.Sprintf("%s | n=%d | zoom %d | %s", f.Viewport.Bounds(), f.MaxIterations, cursor, f.Elapsed.Round(time.Millisecond))
}

// fail reports an error on the status line. Navigation limits are informational.
func (e *Explorer) fail(err error) {
	switch {
	case errors.Is(err, history.ErrAlreadyAtRoot):
		e.surface.Status("already at original zoom")
		return
	case errors.Is(err, history.ErrNothingToRedo):
		e.surface.Status("nothing to redo")
		return
	case errors.Is(err, context.Canceled):
		e.surface.Status("render cancelled")
		return
	}

	log.Printf("explorer: %v", err)
	e.surface.Status("error: " + err.Error())
}

func other(b input.Button) input.Button {
	if b == input.Left {
		return input.Right
	}
	return input.Left
}
