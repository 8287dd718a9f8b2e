package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every registry schema statement. Statements are idempotent
// and run on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id            TEXT PRIMARY KEY,
		path          TEXT NOT NULL UNIQUE,
		name          TEXT NOT NULL DEFAULT '',
		registered_at TEXT NOT NULL,
		last_seen_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_last_seen ON projects(last_seen_at)`,
}
