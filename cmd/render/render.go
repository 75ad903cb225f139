package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/willbeason/mandelzoom/pkg/config"
	"github.com/willbeason/mandelzoom/pkg/session"
)

func mainCmd() *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one view of the Mandelbrot set to a bitmap",
		Long: `Render one view of the Mandelbrot set to a bitmap.

The view is a named region or explicit --bounds. Output ending in .png is written as
PNG, anything else as an uncompressed BMP.`,
		Args: cobra.ExactArgs(0),
		RunE: runCmd,
	}

	cfg.Bind(cmd.Flags())
	cmd.Flags().String("config", "", "JSON config file (default: user config dir)")
	cmd.Flags().Bool("save-config", false, "write the resolved settings to the config file before rendering")

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

	save, err := cmd.Flags().GetBool("save-config")
	if err != nil {
		return err
	}
	if save {
		if configPath == "" {
			if configPath, err = config.DefaultPath(); err != nil {
				return err
			}
		}
		if err := cfg.Save(configPath); err != nil {
			return err
		}
		log.Printf("saved settings to %s", configPath)
	}

	s, err := session.New(cfg)
	if err != nil {
		return err
	}

	f, err := s.Start(cmd.Context())
	if err != nil {
		return err
	}

	path, err := s.Export(cfg.BitmapPath)
	if err != nil {
		return err
	}

	log.Printf("wrote %dx%d frame of %s to %s", f.Image.Bounds().Dx(), f.Image.Bounds().Dy(), f.Viewport.Bounds(), path)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
