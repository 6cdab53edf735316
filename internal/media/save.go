package media

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// SaveImage encodes img into dir under the given relative filename. The
// encoding format is inferred from the filename extension. The parent
// directory is created if missing.
func SaveImage(img image.Image, dir, filename string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create image directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, filename)
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image %s: %w", filename, err)
	}
	return nil
}
