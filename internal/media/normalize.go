package media

import (
	"image"

	"github.com/disintegration/imaging"
)

const (
	// MaxImageSize bounds uploaded originals to a working resolution.
	MaxImageSize = 1280
	// ThumbnailSize bounds the derived thumbnail.
	ThumbnailSize = 300
)

// Normalize bounds the decoded bitmap to the working resolution. Uploads
// larger than MaxImageSize in either dimension are downscaled with Lanczos
// while preserving aspect ratio; smaller uploads and all sketches are kept
// at native resolution. The caller's bitmap is never mutated.
func Normalize(d *Decoded) image.Image {
	if d.Source == SourceSketch {
		return imaging.Clone(d.Image)
	}
	b := d.Image.Bounds()
	if b.Dx() <= MaxImageSize && b.Dy() <= MaxImageSize {
		return imaging.Clone(d.Image)
	}
	// imaging.Fit preserves aspect ratio and never upscales.
	return imaging.Fit(d.Image, MaxImageSize, MaxImageSize, imaging.Lanczos)
}

// Thumbnail derives a small aspect-preserving copy of an already-normalized
// image. The input image is left untouched.
func Thumbnail(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= ThumbnailSize && b.Dy() <= ThumbnailSize {
		return imaging.Clone(img)
	}
	return imaging.Fit(img, ThumbnailSize, ThumbnailSize, imaging.Lanczos)
}
