package main

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// OpenDatabase opens the SQLite store with WAL journaling and a bounded
// busy-wait, so concurrent mutations from different requests serialize on
// the single-writer lock instead of failing immediately.
func OpenDatabase(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=10000&_foreign_keys=on", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func (app *App) initDatabase() error {
	query := `
		CREATE TABLE IF NOT EXISTS user (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS project (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			user_id INTEGER,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			FOREIGN KEY(user_id) REFERENCES user(id)
		);

		CREATE TABLE IF NOT EXISTS frame (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id INTEGER,
			description TEXT,
			image_path TEXT,
			character_name TEXT,
			shoot_time TEXT,
			location TEXT,
			position INTEGER DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			FOREIGN KEY(project_id) REFERENCES project(id)
		);
	`
	if _, err := app.DB.Exec(query); err != nil {
		return err
	}

	return app.ensureThumbnailColumn()
}

// ensureThumbnailColumn upgrades databases created before the frame table
// carried a thumbnail_path column. Rows written by the old revision keep a
// NULL thumbnail_path; reads fall back to the thumb_ naming convention for
// them (see models.Frame.Thumbnail).
func (app *App) ensureThumbnailColumn() error {
	rows, err := app.DB.Query(`PRAGMA table_info(frame)`)
	if err != nil {
		return fmt.Errorf("failed to inspect frame schema: %v", err)
	}
	defer rows.Close()

	hasColumn := false
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return fmt.Errorf("failed to scan frame schema row: %v", err)
		}
		if name == "thumbnail_path" {
			hasColumn = true
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if !hasColumn {
		if _, err := app.DB.Exec(`ALTER TABLE frame ADD COLUMN thumbnail_path TEXT`); err != nil {
			return fmt.Errorf("failed to add thumbnail_path column: %v", err)
		}
		AppLogger.Info("Migrated frame table: added thumbnail_path column")
	}

	return nil
}
