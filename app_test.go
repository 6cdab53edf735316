package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"photoshootPlanner/internal/models"
)

// newTestApp builds an App backed by a temp-dir database and storage root.
func newTestApp(t *testing.T) *App {
	t.Helper()

	if AppLogger == nil {
		AppLogger = NewLogger("ERROR", io.Discard)
	}

	dir := t.TempDir()
	config := &Config{
		DataDir:        dir,
		UploadDir:      filepath.Join(dir, "uploads"),
		ThumbnailDir:   filepath.Join(dir, "uploads", "thumbs"),
		DatabasePath:   filepath.Join(dir, "test.db"),
		Port:           "0",
		MaxUploadBytes: 16 << 20,
		LogLevel:       "ERROR",
		Environment:    "test",
	}
	if err := config.EnsureDirs(); err != nil {
		t.Fatalf("failed to create test dirs: %v", err)
	}

	app := &App{Config: config}

	db, err := OpenDatabase(config.DatabasePath)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	app.DB = db
	t.Cleanup(func() { db.Close() })

	if err := app.initDatabase(); err != nil {
		t.Fatalf("failed to init test database: %v", err)
	}

	return app
}

// seedUserCounter makes each seeded username unique, since user.username
// carries a UNIQUE constraint and some tests seed more than one project.
var seedUserCounter int64

// seedProject creates a user and a project for it.
func seedProject(t *testing.T, app *App) *models.Project {
	t.Helper()

	user, err := app.CreateUser(fmt.Sprintf("tester%d", atomic.AddInt64(&seedUserCounter, 1)))
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	project, err := app.CreateProject(user.ID, "Test Shoot")
	if err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return project
}

// seedFrame creates a frame with the given stored filenames.
func seedFrame(t *testing.T, app *App, projectID int, description, imagePath, thumbPath string) *models.Frame {
	t.Helper()

	frame, err := app.CreateFrame(projectID, description, "", "", "", imagePath, thumbPath)
	if err != nil {
		t.Fatalf("failed to seed frame: %v", err)
	}
	return frame
}

func testPNGBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 30, G: 60, B: 90, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

// writeStoredFile puts a file into the storage root so deletion paths have
// something to remove.
func writeStoredFile(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("image bytes"), 0644); err != nil {
		t.Fatalf("failed to write stored file: %v", err)
	}
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// multipartForm builds a multipart request body from text fields and an
// optional file field.
func multipartForm(t *testing.T, fields map[string]string, fileField, fileName string, fileData []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("failed to write form field %s: %v", k, err)
		}
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		if err != nil {
			t.Fatalf("failed to create file field: %v", err)
		}
		if _, err := part.Write(fileData); err != nil {
			t.Fatalf("failed to write file data: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &body, writer.FormDataContentType()
}
