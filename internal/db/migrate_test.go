package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"sessions", "problems", "attempts"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_sessions_start_time",
		"idx_sessions_end_time",
		"idx_problems_session",
		"idx_problems_name",
		"idx_problems_french_grade",
		"idx_problems_color_grade",
		"idx_problems_flash",
		"idx_problems_send",
		"idx_problems_created_at",
		"idx_attempts_problem",
		"idx_attempts_session",
		"idx_attempts_timestamp",
		"idx_attempts_type",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_AttemptTypeConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO sessions (id, start_time) VALUES ('s1', '2025-01-01T10:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO problems (id, session_id, name, created_at) VALUES ('p1', 's1', 'Crimpy', '2025-01-01T10:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO attempts (id, problem_id, session_id, timestamp, type) VALUES ('a1', 'p1', 's1', '2025-01-01T10:01:00Z', 'onsight')`)
	assert.Error(t, err)

	_, err = db.Exec(`INSERT INTO attempts (id, problem_id, session_id, timestamp, type) VALUES ('a2', 'p1', 's1', '2025-01-01T10:01:00Z', 'send')`)
	assert.NoError(t, err)
}

func TestMigrate_ForeignKeysCascade(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO sessions (id, start_time) VALUES ('s1', '2025-01-01T10:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO problems (id, session_id, name, created_at) VALUES ('p1', 's1', 'Crimpy', '2025-01-01T10:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO problems (id, session_id, name, created_at) VALUES ('p2', 'missing', 'Slab', '2025-01-01T10:00:00Z')`)
	assert.Error(t, err, "problem must reference an existing session")

	_, err = db.Exec(`DELETE FROM sessions WHERE id = 's1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM problems`).Scan(&n))
	assert.Equal(t, 0, n)
}
