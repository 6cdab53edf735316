// Package media implements the image ingestion pipeline: decoding an image
// from an uploaded file or an inline-drawn data URL, bounding it to the
// working resolution, deriving a thumbnail and allocating storage filenames.
package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	// Register the decoders for the supported upload formats
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Source tells where an image came from. Uploads are bounded to the working
// resolution; sketches are already canvas-bounded and kept as-is.
type Source int

const (
	SourceUpload Source = iota
	SourceSketch
)

func (s Source) String() string {
	if s == SourceSketch {
		return "sketch"
	}
	return "upload"
}

// Decoded is the result of a successful decode: the bitmap plus its origin.
type Decoded struct {
	Image    image.Image
	Source   Source
	Filename string // original filename, upload case only
}

// DecodeError reports bad or unsupported image input. Callers are expected
// to treat it as "no image attached" rather than failing the request.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode failed: %s: %v", e.Reason, e.Err)
	}
	return "decode failed: " + e.Reason
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// AllowedFile reports whether the filename carries one of the accepted
// upload extensions (png, jpg, jpeg, gif), case-insensitively.
func AllowedFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif":
		return true
	}
	return false
}

// DecodeUpload decodes an uploaded image stream. The filename's extension is
// checked against the allowed set before any bytes are read.
func DecodeUpload(filename string, r io.Reader) (*Decoded, error) {
	if !AllowedFile(filename) {
		return nil, &DecodeError{Reason: fmt.Sprintf("unsupported file extension in %q", filename)}
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, &DecodeError{Reason: "malformed image payload", Err: err}
	}

	return &Decoded{Image: img, Source: SourceUpload, Filename: filename}, nil
}

// DecodeSketch decodes an inline-drawn image submitted as a data URL of the
// form "<prefix>,<base64 payload>". The prefix before the first comma is not
// interpreted; the payload is base64-decoded and then decoded as pixels.
func DecodeSketch(dataURL string) (*Decoded, error) {
	_, encoded, found := strings.Cut(dataURL, ",")
	if !found {
		return nil, &DecodeError{Reason: "sketch data has no comma separator"}
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, &DecodeError{Reason: "bad base64 encoding", Err: err}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Reason: "corrupt sketch pixel data", Err: err}
	}

	return &Decoded{Image: img, Source: SourceSketch}, nil
}
