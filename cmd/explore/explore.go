package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"github.com/willbeason/mandelzoom/pkg/config"
	"github.com/willbeason/mandelzoom/pkg/display"
	"github.com/willbeason/mandelzoom/pkg/explorer"
	"github.com/willbeason/mandelzoom/pkg/input"
	"github.com/willbeason/mandelzoom/pkg/session"
	"golang.org/x/term"
)

func mainCmd() *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Explore the Mandelbrot set in the terminal",
		Long: `Explore the Mandelbrot set in the terminal.

Left-click one corner and right-click the opposite corner to zoom into the rectangle
between them. Backspace or z zooms back out, y redoes a zoom, e sets the iteration
bound, s exports the frame as a bitmap, c starts a new session and q quits.`,
		Args: cobra.ExactArgs(0),
		RunE: runCmd,
	}

	cfg.Bind(cmd.Flags())
	cmd.Flags().String("config", "", "JSON config file (default: user config dir)")
	cmd.Flags().String("log", "", "log file (default: user config dir)")

	return cmd
}

func runCmd(cmd *cobra.Command, _ []string) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(cmd.Flags(), configPath)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("explore needs an interactive terminal; use render for headless output")
	}

	logPath, err := cmd.Flags().GetString("log")
	if err != nil {
		return err
	}
	logFile, err := setupLogging(logPath)
	if err != nil {
		return err
	}
	defer logFile.Close()

	s, err := session.New(cfg)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	surface := display.New(screen)
	defer surface.Fini()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	events := make(chan input.Event, 16)
	go pump(ctx, cancel, surface, cfg, events)

	e := explorer.New(s, surface)
	e.AutoSave = cfg.AutoSave

	log.Printf("explore: %dx%d grid, %d iterations, %d workers", cfg.Width, cfg.Height, cfg.MaxIterations, cfg.Workers)
	err = e.Run(ctx, events)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// pump forwards terminal events to the explorer until the screen closes.
//
// Quit cancels ctx straight away so an in-flight render is abandoned rather than waited for.
func pump(ctx context.Context, cancel context.CancelFunc, surface *display.Screen, cfg config.Config, events chan<- input.Event) {
	for {
		ev := surface.PollEvent()
		if ev == nil {
			cancel()
			return
		}

		for _, e := range surface.Translate(ev, cfg.Width, cfg.Height) {
			if _, quit := e.(input.Quit); quit {
				log.Printf("explore: quit")
				cancel()
				return
			}

			select {
			case events <- e:
			case <-ctx.Done():
				return
			}
		}
	}
}

func setupLogging(path string) (*os.File, error) {
	if path == "" {
		p, err := config.LogPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, fmt.Errorf("opening log: %w", err)
	}
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return file, nil
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
