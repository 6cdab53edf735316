package models

import "time"

// DefaultDescription is used when a frame is created without one.
const DefaultDescription = "No description"

// Frame represents a single storyboard shot within a project
type Frame struct {
	ID            int       `json:"id"`
	ProjectID     int       `json:"project_id"`
	Description   string    `json:"description"`
	CharacterName string    `json:"character_name,omitempty"`
	ShootTime     string    `json:"shoot_time,omitempty"`
	Location      string    `json:"location,omitempty"`
	ImagePath     string    `json:"image_path,omitempty"`
	ThumbnailPath string    `json:"thumbnail_path,omitempty"`
	Position      int       `json:"position"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HasImage reports whether an image was attached when the frame was created.
func (f *Frame) HasImage() bool {
	return f.ImagePath != ""
}

// ThumbnailSource tells how a frame's thumbnail filename was obtained.
// Older database revisions had no thumbnail_path column, so the name was
// derived from the image filename by the thumb_ prefix convention.
type ThumbnailSource int

const (
	ThumbnailNone ThumbnailSource = iota
	ThumbnailExplicit
	ThumbnailConventional
)

// ThumbnailRef is a schema-version-aware reference to a frame's thumbnail.
type ThumbnailRef struct {
	Source   ThumbnailSource
	Filename string
}

// Thumbnail resolves the thumbnail filename for the frame. It prefers the
// stored thumbnail_path and falls back to the historical naming convention
// when the column value is empty but an image is present.
func (f *Frame) Thumbnail() ThumbnailRef {
	if f.ThumbnailPath != "" {
		return ThumbnailRef{Source: ThumbnailExplicit, Filename: f.ThumbnailPath}
	}
	if f.ImagePath != "" {
		return ThumbnailRef{Source: ThumbnailConventional, Filename: "thumb_" + f.ImagePath}
	}
	return ThumbnailRef{Source: ThumbnailNone}
}
