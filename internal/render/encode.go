package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"
)

// WriteImage encodes an image to the path, choosing the format from the file
// extension. Supported: .png, .tif/.tiff.
func WriteImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		if err := png.Encode(f, img); err != nil {
			return fmt.Errorf("encoding %s: %w", path, err)
		}
	case ".tif", ".tiff":
		if err := tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return fmt.Errorf("encoding %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported image format %q", filepath.Ext(path))
	}
	return f.Close()
}
