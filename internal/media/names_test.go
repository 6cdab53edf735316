package media

import (
	"strings"
	"testing"
	"time"
)

var testTime = time.Date(2024, 3, 15, 10, 30, 45, 0, time.UTC)

func TestAllocateNamesSketch(t *testing.T) {
	names := AllocateNames(SourceSketch, "", testTime)

	if !strings.HasPrefix(names.Image, "sketch_20240315_103045_") {
		t.Errorf("sketch name = %q, want sketch_20240315_103045_ prefix", names.Image)
	}
	if !strings.HasSuffix(names.Image, ".png") {
		t.Errorf("sketch name = %q, want .png extension", names.Image)
	}
	if names.Thumbnail != "thumb_"+names.Image {
		t.Errorf("thumbnail name = %q, want thumb_ prefix of %q", names.Thumbnail, names.Image)
	}
}

func TestAllocateNamesUpload(t *testing.T) {
	names := AllocateNames(SourceUpload, "My Photo.JPG", testTime)

	if !strings.HasPrefix(names.Image, "My_Photo_20240315_103045_") {
		t.Errorf("upload name = %q, want sanitized stem with timestamp", names.Image)
	}
	if !strings.HasSuffix(names.Image, ".jpg") {
		t.Errorf("upload name = %q, want lowercased .jpg extension", names.Image)
	}
	if names.Thumbnail != "thumb_"+names.Image {
		t.Errorf("thumbnail name = %q, want thumb_ prefix", names.Thumbnail)
	}
}

func TestAllocateNamesUnique(t *testing.T) {
	// Two allocations within the same second must not collide.
	a := AllocateNames(SourceUpload, "photo.png", testTime)
	b := AllocateNames(SourceUpload, "photo.png", testTime)
	if a.Image == b.Image {
		t.Errorf("same-second allocations collided: %q", a.Image)
	}
}

func TestAllocateNamesNoTraversal(t *testing.T) {
	for _, name := range []string{"../../etc/passwd.png", `..\..\boot.gif`, "/tmp/abs.jpg"} {
		names := AllocateNames(SourceUpload, name, testTime)
		for _, out := range []string{names.Image, names.Thumbnail} {
			if strings.ContainsAny(out, `/\`) || strings.Contains(out, "..") {
				t.Errorf("allocated name %q from %q contains traversal segments", out, name)
			}
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"photo.png", "photo.png"},
		{"my photo (1).png", "my_photo__1_.png"},
		{"../../x.png", "x.png"},
		{"кадр.png", "____.png"},
		{"", "image"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
