package main

import (
	"database/sql"
	"time"

	"photoshootPlanner/internal/models"
)

// CreateProject creates a new project owned by the given user.
func (app *App) CreateProject(userID int, name string) (*models.Project, error) {
	if _, err := app.GetUser(userID); err != nil {
		return nil, err
	}

	now := time.Now()
	res, err := app.DB.Exec(`
		INSERT INTO project (name, user_id, created_at, updated_at) VALUES (?, ?, ?, ?)
	`, name, userID, now, now)
	if err != nil {
		return nil, WrapStoreError(ErrTypeConstraint, "failed to create project record", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, WrapStoreError(ErrTypeConnection, "failed to read new project id", err)
	}
	return app.GetProject(int(id))
}

// GetProject retrieves a project by ID
func (app *App) GetProject(id int) (*models.Project, error) {
	var p models.Project
	err := app.DB.QueryRow(`
		SELECT id, name, user_id, created_at, updated_at FROM project WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &p.UserID, &p.CreatedAt, &p.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, WrapStoreError(ErrTypeNotFound, "project not found", nil)
	}
	if err != nil {
		return nil, WrapStoreError(ErrTypeConnection, "failed to query project", err)
	}
	return &p, nil
}

// ListProjects returns all projects owned by the user.
func (app *App) ListProjects(userID int) ([]models.Project, error) {
	rows, err := app.DB.Query(`
		SELECT id, name, user_id, created_at, updated_at FROM project WHERE user_id = ? ORDER BY id
	`, userID)
	if err != nil {
		return nil, WrapStoreError(ErrTypeConnection, "failed to query projects", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, WrapStoreError(ErrTypeConnection, "failed to scan project row", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapStoreError(ErrTypeConnection, "project row iteration failed", err)
	}
	return projects, nil
}

// RenameProject updates the project's name.
func (app *App) RenameProject(id int, name string) error {
	res, err := app.DB.Exec(`UPDATE project SET name = ?, updated_at = ? WHERE id = ?`,
		name, time.Now(), id)
	if err != nil {
		return WrapStoreError(ErrTypeConstraint, "failed to rename project", err)
	}
	return requireRowAffected(res, "project")
}

// DeleteProject removes the project and all its frames. The record cascade
// is atomic; stored files are cleaned up best-effort after the records are
// gone, so an interruption can leak a file but never leave an orphaned
// record.
func (app *App) DeleteProject(id int) error {
	if _, err := app.GetProject(id); err != nil {
		return err
	}

	frames, err := app.ListFrames(id)
	if err != nil {
		return err
	}

	err = app.WithTransaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM frame WHERE project_id = ?`, id); err != nil {
			return WrapStoreError(ErrTypeConstraint, "failed to delete project frames", err)
		}
		if _, err := tx.Exec(`DELETE FROM project WHERE id = ?`, id); err != nil {
			return WrapStoreError(ErrTypeConstraint, "failed to delete project record", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for i := range frames {
		app.removeFrameFiles(&frames[i])
	}
	return nil
}
