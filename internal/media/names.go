package media

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const timestampLayout = "20060102_150405"

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// Names holds the allocated storage filenames for an image and its thumbnail.
type Names struct {
	Image     string
	Thumbnail string
}

// AllocateNames derives collision-resistant relative storage filenames for
// an original image and its thumbnail. Second-resolution timestamps alone
// can collide under rapid uploads, so a short random fragment is appended.
// The returned names never contain path separators or traversal segments.
func AllocateNames(source Source, originalName string, now time.Time) Names {
	timestamp := now.Format(timestampLayout)
	suffix := uuid.NewString()[:8]

	var name string
	if source == SourceSketch {
		name = "sketch_" + timestamp + "_" + suffix + ".png"
	} else {
		safe := SanitizeFilename(originalName)
		ext := strings.ToLower(filepath.Ext(safe))
		stem := strings.TrimSuffix(safe, filepath.Ext(safe))
		name = stem + "_" + timestamp + "_" + suffix + ext
	}

	return Names{Image: name, Thumbnail: "thumb_" + name}
}

// SanitizeFilename reduces an incoming filename to a filesystem-safe form:
// any directory part is stripped and unsafe characters are replaced.
func SanitizeFilename(filename string) string {
	// Strip both separator styles before taking the base name, so a
	// Windows-style path does not survive on other platforms.
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filepath.Clean("/" + filename))
	filename = unsafeChars.ReplaceAllString(filename, "_")
	// No hidden files and no bare dots left over from traversal attempts.
	filename = strings.TrimLeft(filename, ".")
	if filename == "" {
		filename = "image"
	}
	return filename
}
