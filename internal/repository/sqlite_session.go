package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/boulderlog/boulderlog/internal/db"
	"github.com/boulderlog/boulderlog/internal/domain"
	"github.com/boulderlog/boulderlog/internal/live"
)

// SQLiteSessionRepo stores sessions with their pre-session data and problem
// snapshot as JSON columns.
type SQLiteSessionRepo struct {
	db     db.DBTX
	notify Notifier
}

func NewSQLiteSessionRepo(db db.DBTX, notify Notifier) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: db, notify: notifierOrNop(notify)}
}

var sessionIndexed = map[string]bool{"id": true, "start_time": true, "end_time": true}

const sessionColumns = `id, start_time, end_time, pre_session_data, post_session_notes, duration_min, problems`

func (r *SQLiteSessionRepo) Put(ctx context.Context, s *domain.Session) error {
	pre, err := json.Marshal(s.PreSessionData)
	if err != nil {
		return fmt.Errorf("encoding pre-session data: %w", err)
	}
	problems := s.Problems
	if problems == nil {
		problems = []domain.SessionProblem{}
	}
	snapshot, err := json.Marshal(problems)
	if err != nil {
		return fmt.Errorf("encoding problem snapshot: %w", err)
	}

	query := `INSERT INTO sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			pre_session_data = excluded.pre_session_data,
			post_session_notes = excluded.post_session_notes,
			duration_min = excluded.duration_min,
			problems = excluded.problems`
	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		formatTime(s.StartTime),
		nullableTimeToString(s.EndTime),
		string(pre),
		s.PostSessionNotes,
		nullableIntToValue(s.Duration),
		string(snapshot),
	)
	if err != nil {
		return fmt.Errorf("putting session: %w", err)
	}
	r.notify.Touch(live.Sessions)
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return s, err
}

// List returns every session, newest first.
func (r *SQLiteSessionRepo) List(ctx context.Context) ([]*domain.Session, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+sessionColumns+` FROM sessions ORDER BY start_time DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()
	return scanSessions(rows)
}

func (r *SQLiteSessionRepo) ListWhere(ctx context.Context, field string, value any) ([]*domain.Session, error) {
	where, args, err := whereClause("sessions", sessionIndexed, field, value)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE `+where+` ORDER BY rowid`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sessions by %s: %w", field, err)
	}
	defer rows.Close()
	return scanSessions(rows)
}

// FindActive returns the first-inserted session without an end time.
func (r *SQLiteSessionRepo) FindActive(ctx context.Context) (*domain.Session, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE end_time IS NULL ORDER BY rowid LIMIT 1`)
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("active session: %w", domain.ErrNotFound)
	}
	return s, err
}

func (r *SQLiteSessionRepo) DeleteWhere(ctx context.Context, field string, value any) (int64, error) {
	where, args, err := whereClause("sessions", sessionIndexed, field, value)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE `+where, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting sessions by %s: %w", field, err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		r.notify.Touch(live.Sessions)
	}
	return n, nil
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var (
		s                      domain.Session
		startStr, pre, problem string
		endStr                 sql.NullString
		duration               sql.NullInt64
	)
	if err := row.Scan(&s.ID, &startStr, &endStr, &pre, &s.PostSessionNotes, &duration, &problem); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}

	var err error
	if s.StartTime, err = parseTime(startStr); err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	if s.EndTime, err = parseNullableTime(endStr); err != nil {
		return nil, fmt.Errorf("parsing end_time: %w", err)
	}
	if duration.Valid {
		d := int(duration.Int64)
		s.Duration = &d
	}
	if err := json.Unmarshal([]byte(pre), &s.PreSessionData); err != nil {
		return nil, fmt.Errorf("decoding pre-session data: %w", err)
	}
	if err := json.Unmarshal([]byte(problem), &s.Problems); err != nil {
		return nil, fmt.Errorf("decoding problem snapshot: %w", err)
	}
	if s.Problems == nil {
		s.Problems = []domain.SessionProblem{}
	}
	return &s, nil
}

func scanSessions(rows *sql.Rows) ([]*domain.Session, error) {
	var sessions []*domain.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}
