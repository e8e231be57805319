package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE statements are re-run on every open.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id                 TEXT PRIMARY KEY,
		start_time         TEXT NOT NULL,
		end_time           TEXT,
		pre_session_data   TEXT NOT NULL DEFAULT '{}',
		post_session_notes TEXT NOT NULL DEFAULT '',
		duration_min       INTEGER,
		problems           TEXT NOT NULL DEFAULT '[]'
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sessions_start_time ON sessions(start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_end_time ON sessions(end_time)`,

	`CREATE TABLE IF NOT EXISTS problems (
		id           TEXT PRIMARY KEY,
		session_id   TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		name         TEXT NOT NULL,
		french_grade TEXT NOT NULL DEFAULT '',
		color_grade  TEXT NOT NULL DEFAULT '',
		flash        INTEGER NOT NULL DEFAULT 0,
		send         INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_problems_session ON problems(session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_problems_name ON problems(name)`,
	`CREATE INDEX IF NOT EXISTS idx_problems_french_grade ON problems(french_grade)`,
	`CREATE INDEX IF NOT EXISTS idx_problems_color_grade ON problems(color_grade)`,
	`CREATE INDEX IF NOT EXISTS idx_problems_flash ON problems(flash)`,
	`CREATE INDEX IF NOT EXISTS idx_problems_send ON problems(send)`,
	`CREATE INDEX IF NOT EXISTS idx_problems_created_at ON problems(created_at)`,

	`CREATE TABLE IF NOT EXISTS attempts (
		id         TEXT PRIMARY KEY,
		problem_id TEXT NOT NULL REFERENCES problems(id) ON DELETE CASCADE,
		session_id TEXT NOT NULL,
		timestamp  TEXT NOT NULL,
		type       TEXT NOT NULL
		           CHECK(type IN ('attempt','flash','send'))
	)`,

	`ALTER TABLE attempts ADD COLUMN notes TEXT NOT NULL DEFAULT ''`,

	`CREATE INDEX IF NOT EXISTS idx_attempts_problem ON attempts(problem_id)`,
	`CREATE INDEX IF NOT EXISTS idx_attempts_session ON attempts(session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_attempts_timestamp ON attempts(timestamp)`,
	`CREATE INDEX IF NOT EXISTS idx_attempts_type ON attempts(type)`,
}
