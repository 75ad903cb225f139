// Package bitmap writes rendered frames to image files.
package bitmap

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// DefaultPath is where frames are exported when no path is configured.
const DefaultPath = "Fractal.bmp"

// Encode writes img to w as an uncompressed BMP. Opaque RGBA frames are stored as 24-bit.
func Encode(w io.Writer, img image.Image) error {
	return bmp.Encode(w, img)
}

// Save writes img to path, as PNG when the path ends in .png and as BMP otherwise.
//
// The file is written next to its destination and renamed into place, so readers never
// see a partly written frame.
func Save(path string, img image.Image) error {
	encode := Encode
	if strings.EqualFold(filepath.Ext(path), ".png") {
		encode = png.Encode
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if err := encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}
