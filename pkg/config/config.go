// Package config resolves explorer and renderer settings from defaults, a JSON file and flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/willbeason/mandelzoom/pkg/bitmap"
	"github.com/willbeason/mandelzoom/pkg/escape"
	"github.com/willbeason/mandelzoom/pkg/history"
	"github.com/willbeason/mandelzoom/pkg/palette"
	"github.com/willbeason/mandelzoom/pkg/viewport"
)

const (
	appName        = "mandelzoom"
	configFileName = "config.json"
)

// Config holds every tunable of a session.
type Config struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	MaxIterations int `json:"maxIterations"`

	HistoryCapacity int    `json:"historyCapacity"`
	HistoryOverflow string `json:"historyOverflow"`

	Palette string `json:"palette"`
	Workers int    `json:"workers"`

	// Region names the root view; Bounds, when set, overrides it with "startX,endX,startY,endY".
	Region string `json:"region"`
	Bounds string `json:"bounds,omitempty"`

	BitmapPath string `json:"bitmapPath"`
	AutoSave   bool   `json:"autoSave"`
}

// Default returns the stock settings: a 1024x1024 grid over {-2,2,-2,2} at 1000 iterations.
func Default() Config {
	return Config{
		Width:           1024,
		Height:          1024,
		MaxIterations:   1000,
		HistoryCapacity: 1000,
		HistoryOverflow: history.Reject.String(),
		Palette:         palette.Clamp.String(),
		Workers:         runtime.NumCPU(),
		Region:          "full",
		BitmapPath:      bitmap.DefaultPath,
	}
}

// Bind registers a flag for every field, defaulting to the current values.
func (c *Config) Bind(flags *pflag.FlagSet) {
	flags.IntVar(&c.Width, "width", c.Width, "grid width in pixels")
	flags.IntVar(&c.Height, "height", c.Height, "grid height in pixels")
	flags.IntVarP(&c.MaxIterations, "iterations", "n", c.MaxIterations, "maximum iterations per pixel")
	flags.IntVar(&c.HistoryCapacity, "history", c.HistoryCapacity, "zoom history capacity")
	flags.StringVar(&c.HistoryOverflow, "history-overflow", c.HistoryOverflow, "what a zoom does when history is full: reject or evict")
	flags.StringVar(&c.Palette, "palette", c.Palette, "out-of-range colour channels: clamp or wrap")
	flags.IntVarP(&c.Workers, "workers", "j", c.Workers, "render goroutines; 1 renders synchronously")
	flags.StringVarP(&c.Region, "region", "r", c.Region, fmt.Sprintf("root view, one of %v", viewport.RegionNames()))
	flags.StringVar(&c.Bounds, "bounds", c.Bounds, "explicit root view as startX,endX,startY,endY")
	flags.StringVarP(&c.BitmapPath, "out", "o", c.BitmapPath, "bitmap export path")
	flags.BoolVar(&c.AutoSave, "autosave", c.AutoSave, "export after every completed render")
}

// Resolve loads the JSON file at path over the defaults and applies every flag the user set.
//
// An empty path falls back to the user config directory, where a missing file is not an error.
func Resolve(flags *pflag.FlagSet, path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	if err := cfg.load(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	overlay := pflag.NewFlagSet("overlay", pflag.ContinueOnError)
	cfg.Bind(overlay)

	var setErr error
	flags.Visit(func(f *pflag.Flag) {
		if overlay.Lookup(f.Name) == nil || setErr != nil {
			return
		}
		setErr = overlay.Set(f.Name, f.Value.String())
	})
	if setErr != nil {
		return Config{}, setErr
	}

	return cfg, cfg.Validate()
}

func (c *Config) load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// Save writes the config as indented JSON.
func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Validate checks every field and the root view.
func (c Config) Validate() error {
	if err := escape.ValidateBound(c.MaxIterations); err != nil {
		return err
	}
	if c.HistoryCapacity < 1 {
		return fmt.Errorf("history capacity %d, must be at least 1", c.HistoryCapacity)
	}
	if _, err := c.Overflow(); err != nil {
		return err
	}
	if _, err := c.PalettePolicy(); err != nil {
		return err
	}
	_, err := c.Root()
	return err
}

func (c Config) Overflow() (history.Overflow, error) {
	return history.ParseOverflow(c.HistoryOverflow)
}

func (c Config) PalettePolicy() (palette.Policy, error) {
	return palette.ParsePolicy(c.Palette)
}

// Root returns the validated root viewport.
func (c Config) Root() (viewport.Viewport, error) {
	b, err := c.rootBounds()
	if err != nil {
		return viewport.Viewport{}, err
	}
	return viewport.New(b, c.Width, c.Height)
}

func (c Config) rootBounds() (viewport.Bounds, error) {
	if c.Bounds == "" {
		return viewport.Region(c.Region)
	}

	parts := strings.Split(c.Bounds, ",")
	if len(parts) != 4 {
		return viewport.Bounds{}, fmt.Errorf("%w: bounds %q, want startX,endX,startY,endY", viewport.ErrInvalidViewport, c.Bounds)
	}

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return viewport.Bounds{}, fmt.Errorf("%w: bounds %q: %v", viewport.ErrInvalidViewport, c.Bounds, err)
		}
		v[i] = f
	}

	return viewport.Bounds{StartX: v[0], EndX: v[1], StartY: v[2], EndY: v[3]}, nil
}

func root() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appName), nil
}

// DefaultPath is the config file in the user config directory.
func DefaultPath() (string, error) {
	r, err := root()
	if err != nil {
		return "", err
	}
	return filepath.Join(r, configFileName), nil
}

// LogPath is the default log file of the interactive explorer.
func LogPath() (string, error) {
	r, err := root()
	if err != nil {
		return "", err
	}
	return filepath.Join(r, "logs", "explore.log"), nil
}
