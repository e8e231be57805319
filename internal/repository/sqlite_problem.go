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

// SQLiteProblemRepo stores the problems climbed in each session. Attempts are
// not part of the row; see SQLiteAttemptRepo.
type SQLiteProblemRepo struct {
	db     db.DBTX
	notify Notifier
}

func NewSQLiteProblemRepo(db db.DBTX, notify Notifier) *SQLiteProblemRepo {
	return &SQLiteProblemRepo{db: db, notify: notifierOrNop(notify)}
}

var problemIndexed = map[string]bool{
	"id": true, "session_id": true, "name": true, "french_grade": true,
	"color_grade": true, "flash": true, "send": true, "created_at": true,
}

const problemColumns = `id, session_id, name, french_grade, color_grade, flash, send, created_at`

func (r *SQLiteProblemRepo) Put(ctx context.Context, p *domain.SessionProblem) error {
	query := `INSERT INTO problems (` + problemColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			session_id = excluded.session_id,
			name = excluded.name,
			french_grade = excluded.french_grade,
			color_grade = excluded.color_grade,
			flash = excluded.flash,
			send = excluded.send,
			created_at = excluded.created_at`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.SessionID,
		p.Name,
		p.FrenchGrade,
		p.ColorGrade,
		boolToInt(p.Flash),
		boolToInt(p.Send),
		formatTime(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("putting problem: %w", err)
	}
	r.notify.Touch(live.Problems)
	return nil
}

func (r *SQLiteProblemRepo) GetByID(ctx context.Context, id string) (*domain.SessionProblem, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+problemColumns+` FROM problems WHERE id = ?`, id)
	p, err := scanProblem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("problem %s: %w", id, domain.ErrNotFound)
	}
	return p, err
}

// ListWhere returns matching problems in insertion order.
func (r *SQLiteProblemRepo) ListWhere(ctx context.Context, field string, value any) ([]*domain.SessionProblem, error) {
	where, args, err := whereClause("problems", problemIndexed, field, value)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+problemColumns+` FROM problems WHERE `+where+` ORDER BY rowid`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying problems by %s: %w", field, err)
	}
	defer rows.Close()

	var problems []*domain.SessionProblem
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, err
		}
		problems = append(problems, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating problems: %w", err)
	}
	return problems, nil
}

func (r *SQLiteProblemRepo) DeleteWhere(ctx context.Context, field string, value any) (int64, error) {
	where, args, err := whereClause("problems", problemIndexed, field, value)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM problems WHERE `+where, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting problems by %s: %w", field, err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		r.notify.Touch(live.Problems)
	}
	return n, nil
}

func scanProblem(row rowScanner) (*domain.SessionProblem, error) {
	var (
		p            domain.SessionProblem
		flash, send  int
		createdAtStr string
	)
	err := row.Scan(&p.ID, &p.SessionID, &p.Name, &p.FrenchGrade, &p.ColorGrade, &flash, &send, &createdAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning problem: %w", err)
	}
	p.Flash = intToBool(flash)
	p.Send = intToBool(send)
	if p.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	p.Attempts = []domain.Attempt{}
	return &p, nil
}
