package main

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"time"

	"photoshootPlanner/internal/models"
)

// frameColumns is the select list shared by every frame query.
const frameColumns = `id, project_id, description, character_name, shoot_time, location,
	image_path, thumbnail_path, position, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFrame(row rowScanner) (*models.Frame, error) {
	var f models.Frame
	var character, shootTime, location, imagePath, thumbPath sql.NullString
	err := row.Scan(&f.ID, &f.ProjectID, &f.Description, &character, &shootTime,
		&location, &imagePath, &thumbPath, &f.Position, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	f.CharacterName = character.String
	f.ShootTime = shootTime.String
	f.Location = location.String
	f.ImagePath = imagePath.String
	f.ThumbnailPath = thumbPath.String
	return &f, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// CreateFrame inserts a new frame for the project. Image filenames may be
// empty when ingestion produced no image; the record is created regardless.
func (app *App) CreateFrame(projectID int, description, characterName, shootTime, location, imagePath, thumbnailPath string) (*models.Frame, error) {
	if _, err := app.GetProject(projectID); err != nil {
		return nil, err
	}

	if description == "" {
		description = models.DefaultDescription
	}

	now := time.Now()
	res, err := app.DB.Exec(`
		INSERT INTO frame (project_id, description, character_name, shoot_time, location,
			image_path, thumbnail_path, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?)
	`, projectID, description, nullable(characterName), nullable(shootTime), nullable(location),
		nullable(imagePath), nullable(thumbnailPath), now, now)
	if err != nil {
		return nil, WrapStoreError(ErrTypeConstraint, "failed to create frame record", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, WrapStoreError(ErrTypeConnection, "failed to read new frame id", err)
	}

	return app.GetFrame(int(id))
}

// GetFrame retrieves a frame by ID
func (app *App) GetFrame(id int) (*models.Frame, error) {
	frame, err := scanFrame(app.DB.QueryRow(`SELECT `+frameColumns+` FROM frame WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, WrapStoreError(ErrTypeNotFound, "frame not found", nil)
	}
	if err != nil {
		return nil, WrapStoreError(ErrTypeConnection, "failed to query frame", err)
	}
	return frame, nil
}

// ListFrames returns the project's frames in export order: position
// ascending, ties broken by id for determinism.
func (app *App) ListFrames(projectID int) ([]models.Frame, error) {
	rows, err := app.DB.Query(`SELECT `+frameColumns+` FROM frame WHERE project_id = ? ORDER BY position, id`, projectID)
	if err != nil {
		return nil, WrapStoreError(ErrTypeConnection, "failed to query frames", err)
	}
	defer rows.Close()

	var frames []models.Frame
	for rows.Next() {
		f, err := scanFrame(rows)
		if err != nil {
			return nil, WrapStoreError(ErrTypeConnection, "failed to scan frame row", err)
		}
		frames = append(frames, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapStoreError(ErrTypeConnection, "frame row iteration failed", err)
	}
	return frames, nil
}

// RenameFrame updates only the frame's description.
func (app *App) RenameFrame(id int, description string) error {
	res, err := app.DB.Exec(`UPDATE frame SET description = ?, updated_at = ? WHERE id = ?`,
		description, time.Now(), id)
	if err != nil {
		return WrapStoreError(ErrTypeConstraint, "failed to rename frame", err)
	}
	return requireRowAffected(res, "frame")
}

// FrameUpdate carries a partial frame edit; nil fields are left unchanged.
type FrameUpdate struct {
	Description   *string `json:"description"`
	CharacterName *string `json:"character_name"`
	ShootTime     *string `json:"shoot_time"`
	Location      *string `json:"location"`
}

// UpdateFrameInfo applies a partial metadata edit to a frame.
func (app *App) UpdateFrameInfo(id int, update FrameUpdate) error {
	set := "updated_at = ?"
	args := []interface{}{time.Now()}

	if update.Description != nil {
		set += ", description = ?"
		args = append(args, *update.Description)
	}
	if update.CharacterName != nil {
		set += ", character_name = ?"
		args = append(args, nullable(*update.CharacterName))
	}
	if update.ShootTime != nil {
		set += ", shoot_time = ?"
		args = append(args, nullable(*update.ShootTime))
	}
	if update.Location != nil {
		set += ", location = ?"
		args = append(args, nullable(*update.Location))
	}
	args = append(args, id)

	res, err := app.DB.Exec(`UPDATE frame SET `+set+` WHERE id = ?`, args...)
	if err != nil {
		return WrapStoreError(ErrTypeConstraint, "failed to update frame", err)
	}
	return requireRowAffected(res, "frame")
}

// DeleteFrame removes the frame's stored files best-effort and then its
// record. File removal failures are logged and never block the record
// deletion.
func (app *App) DeleteFrame(id int) error {
	frame, err := app.GetFrame(id)
	if err != nil {
		return err
	}

	app.removeFrameFiles(frame)

	if _, err := app.DB.Exec(`DELETE FROM frame WHERE id = ?`, id); err != nil {
		return WrapStoreError(ErrTypeConstraint, "failed to delete frame record", err)
	}
	return nil
}

// ReorderFrames rewrites positions 0..n-1 for the given frame ids in one
// transaction. Frames not named in the list keep their positions.
func (app *App) ReorderFrames(order []int) error {
	return app.WithTransaction(func(tx *sql.Tx) error {
		now := time.Now()
		for idx, frameID := range order {
			if _, err := tx.Exec(`UPDATE frame SET position = ?, updated_at = ? WHERE id = ?`, idx, now, frameID); err != nil {
				return WrapStoreError(ErrTypeConstraint, "failed to update frame position", err)
			}
		}
		return nil
	})
}

// removeFrameFiles deletes the frame's original and thumbnail from storage,
// best-effort. The thumbnail is resolved schema-version-aware: the stored
// thumbnail_path when present, else the thumb_ naming convention, and each
// candidate is probed in the thumbs directory and the historical flat
// uploads layout.
func (app *App) removeFrameFiles(frame *models.Frame) {
	if frame.ImagePath == "" {
		return
	}

	paths := []string{filepath.Join(app.Config.UploadDir, frame.ImagePath)}
	if ref := frame.Thumbnail(); ref.Source != models.ThumbnailNone {
		paths = append(paths,
			filepath.Join(app.Config.ThumbnailDir, ref.Filename),
			filepath.Join(app.Config.UploadDir, ref.Filename),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := os.Remove(path); err != nil {
			log.Printf("Failed to delete stored file %s: %v", path, err)
		}
	}
}

func requireRowAffected(res sql.Result, resource string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return WrapStoreError(ErrTypeConnection, "failed to check affected rows", err)
	}
	if n == 0 {
		return WrapStoreError(ErrTypeNotFound, resource+" not found", nil)
	}
	return nil
}
