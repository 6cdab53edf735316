package main

import (
	"database/sql"
	"time"

	"photoshootPlanner/internal/models"
)

// CreateUser creates a new user with a unique username.
func (app *App) CreateUser(username string) (*models.User, error) {
	now := time.Now()
	res, err := app.DB.Exec(`INSERT INTO user (username, created_at) VALUES (?, ?)`, username, now)
	if err != nil {
		return nil, WrapStoreError(ErrTypeConstraint, "failed to create user record", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, WrapStoreError(ErrTypeConnection, "failed to read new user id", err)
	}
	return app.GetUser(int(id))
}

// GetUser retrieves a user by ID
func (app *App) GetUser(id int) (*models.User, error) {
	var u models.User
	err := app.DB.QueryRow(`SELECT id, username, created_at FROM user WHERE id = ?`, id).
		Scan(&u.ID, &u.Username, &u.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, WrapStoreError(ErrTypeNotFound, "user not found", nil)
	}
	if err != nil {
		return nil, WrapStoreError(ErrTypeConnection, "failed to query user", err)
	}
	return &u, nil
}

// ListUsers returns all users.
func (app *App) ListUsers() ([]models.User, error) {
	rows, err := app.DB.Query(`SELECT id, username, created_at FROM user ORDER BY id`)
	if err != nil {
		return nil, WrapStoreError(ErrTypeConnection, "failed to query users", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.CreatedAt); err != nil {
			return nil, WrapStoreError(ErrTypeConnection, "failed to scan user row", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapStoreError(ErrTypeConnection, "user row iteration failed", err)
	}
	return users, nil
}

// RenameUser updates the user's username.
func (app *App) RenameUser(id int, username string) error {
	res, err := app.DB.Exec(`UPDATE user SET username = ? WHERE id = ?`, username, id)
	if err != nil {
		return WrapStoreError(ErrTypeConstraint, "failed to rename user", err)
	}
	return requireRowAffected(res, "user")
}

// DeleteUser removes the user, all their projects and all frames of those
// projects. Records are removed in one transaction (frames, then projects,
// then the user); stored files are cleaned up best-effort afterwards.
func (app *App) DeleteUser(id int) error {
	if _, err := app.GetUser(id); err != nil {
		return err
	}

	projects, err := app.ListProjects(id)
	if err != nil {
		return err
	}

	var frames []models.Frame
	for _, p := range projects {
		pf, err := app.ListFrames(p.ID)
		if err != nil {
			return err
		}
		frames = append(frames, pf...)
	}

	err = app.WithTransaction(func(tx *sql.Tx) error {
		for _, p := range projects {
			if _, err := tx.Exec(`DELETE FROM frame WHERE project_id = ?`, p.ID); err != nil {
				return WrapStoreError(ErrTypeConstraint, "failed to delete project frames", err)
			}
		}
		if _, err := tx.Exec(`DELETE FROM project WHERE user_id = ?`, id); err != nil {
			return WrapStoreError(ErrTypeConstraint, "failed to delete user projects", err)
		}
		if _, err := tx.Exec(`DELETE FROM user WHERE id = ?`, id); err != nil {
			return WrapStoreError(ErrTypeConstraint, "failed to delete user record", err)
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
