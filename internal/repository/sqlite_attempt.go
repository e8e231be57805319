package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/boulderlog/boulderlog/internal/db"
	"github.com/boulderlog/boulderlog/internal/domain"
	"github.com/boulderlog/boulderlog/internal/live"
)

type SQLiteAttemptRepo struct {
	db     db.DBTX
	notify Notifier
}

func NewSQLiteAttemptRepo(db db.DBTX, notify Notifier) *SQLiteAttemptRepo {
	return &SQLiteAttemptRepo{db: db, notify: notifierOrNop(notify)}
}

var attemptIndexed = map[string]bool{
	"id": true, "problem_id": true, "session_id": true, "timestamp": true, "type": true,
}

const attemptColumns = `id, problem_id, session_id, timestamp, type, notes`

func (r *SQLiteAttemptRepo) Put(ctx context.Context, a *domain.Attempt) error {
	query := `INSERT INTO attempts (` + attemptColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			problem_id = excluded.problem_id,
			session_id = excluded.session_id,
			timestamp = excluded.timestamp,
			type = excluded.type,
			notes = excluded.notes`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.ProblemID,
		a.SessionID,
		formatTime(a.Timestamp),
		string(a.Type),
		a.Notes,
	)
	if err != nil {
		return fmt.Errorf("putting attempt: %w", err)
	}
	r.notify.Touch(live.Attempts)
	return nil
}

func (r *SQLiteAttemptRepo) GetByID(ctx context.Context, id string) (*domain.Attempt, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+attemptColumns+` FROM attempts WHERE id = ?`, id)
	a, err := scanAttempt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("attempt %s: %w", id, domain.ErrNotFound)
	}
	return a, err
}

// ListWhere returns matching attempts in logging order: by timestamp, ties
// broken by insertion.
func (r *SQLiteAttemptRepo) ListWhere(ctx context.Context, field string, value any) ([]*domain.Attempt, error) {
	where, args, err := whereClause("attempts", attemptIndexed, field, value)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+attemptColumns+` FROM attempts WHERE `+where+` ORDER BY timestamp, rowid`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying attempts by %s: %w", field, err)
	}
	defer rows.Close()

	var attempts []*domain.Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating attempts: %w", err)
	}
	return attempts, nil
}

func (r *SQLiteAttemptRepo) DeleteWhere(ctx context.Context, field string, value any) (int64, error) {
	where, args, err := whereClause("attempts", attemptIndexed, field, value)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM attempts WHERE `+where, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting attempts by %s: %w", field, err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		r.notify.Touch(live.Attempts)
	}
	return n, nil
}

func scanAttempt(row rowScanner) (*domain.Attempt, error) {
	var (
		a          domain.Attempt
		ts, typStr string
	)
	if err := row.Scan(&a.ID, &a.ProblemID, &a.SessionID, &ts, &typStr, &a.Notes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning attempt: %w", err)
	}
	var err error
	if a.Timestamp, err = parseTime(ts); err != nil {
		return nil, fmt.Errorf("parsing timestamp: %w", err)
	}
	a.Type = domain.AttemptType(typStr)
	return &a, nil
}

// derefAttempts flattens a query result into an ordered history.
func derefAttempts(in []*domain.Attempt) []domain.Attempt {
	out := make([]domain.Attempt, 0, len(in))
	for _, a := range in {
		out = append(out, *a)
	}
	return out
}
