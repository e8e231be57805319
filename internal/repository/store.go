package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/boulderlog/boulderlog/internal/db"
	"github.com/boulderlog/boulderlog/internal/domain"
	"github.com/boulderlog/boulderlog/internal/live"
)

// Tables groups the three repositories over one DBTX.
type Tables struct {
	Sessions *SQLiteSessionRepo
	Problems *SQLiteProblemRepo
	Attempts *SQLiteAttemptRepo
}

func NewTables(tx db.DBTX, notify Notifier) *Tables {
	return &Tables{
		Sessions: NewSQLiteSessionRepo(tx, notify),
		Problems: NewSQLiteProblemRepo(tx, notify),
		Attempts: NewSQLiteAttemptRepo(tx, notify),
	}
}

// Store is the record store: the three tables, transactional writes and
// change notification.
type Store struct {
	db  *sql.DB
	uow db.UnitOfWork
	hub *live.Hub
}

type StoreOption func(*Store)

// WithUnitOfWork replaces the transaction runner.
func WithUnitOfWork(uow db.UnitOfWork) StoreOption {
	return func(s *Store) { s.uow = uow }
}

func NewStore(database *sql.DB, opts ...StoreOption) *Store {
	s := &Store{
		db:  database,
		uow: db.NewSQLiteUnitOfWork(database),
		hub: live.NewHub(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Hub() *live.Hub {
	return s.hub
}

// Tables returns repositories outside any transaction. Their writes notify
// subscribers immediately.
func (s *Store) Tables() *Tables {
	return NewTables(s.db, s.hub)
}

// WithinTx runs fn in one transaction. Subscribers hear about the touched
// tables only after a successful commit.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, t *Tables) error) error {
	batch := live.NewBatch()
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, NewTables(tx, batch))
	})
	if err != nil {
		return err
	}
	s.hub.Publish(batch.Tables()...)
	return nil
}

// Subscribe registers for change signals on tables.
func (s *Store) Subscribe(ctx context.Context, tables ...live.Table) *live.Subscription {
	return s.hub.Subscribe(ctx, tables...)
}

func (s *Store) FindActiveSession(ctx context.Context) (*domain.Session, error) {
	return s.Tables().Sessions.FindActive(ctx)
}

func (s *Store) Hydrate(ctx context.Context, sessionID string) (*domain.Session, error) {
	return Hydrate(ctx, s.Tables(), sessionID)
}

// Hydrate loads a session and replaces its snapshot with the problem rows of
// the session, each carrying its attempt rows.
func Hydrate(ctx context.Context, t *Tables, sessionID string) (*domain.Session, error) {
	sess, err := t.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	problems, err := t.Problems.ListWhere(ctx, "session_id", sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading problems of session %s: %w", sessionID, err)
	}
	sess.Problems = make([]domain.SessionProblem, 0, len(problems))
	for _, p := range problems {
		attempts, err := t.Attempts.ListWhere(ctx, "problem_id", p.ID)
		if err != nil {
			return nil, fmt.Errorf("loading attempts of problem %s: %w", p.ID, err)
		}
		p.Attempts = derefAttempts(attempts)
		sess.Problems = append(sess.Problems, *p)
	}
	return sess, nil
}

// CascadeDeleteSession removes a session with its problems and attempts in
// one transaction.
func (s *Store) CascadeDeleteSession(ctx context.Context, sessionID string) error {
	return s.WithinTx(ctx, func(ctx context.Context, t *Tables) error {
		if _, err := t.Sessions.GetByID(ctx, sessionID); err != nil {
			return err
		}
		if _, err := t.Attempts.DeleteWhere(ctx, "session_id", sessionID); err != nil {
			return err
		}
		if _, err := t.Problems.DeleteWhere(ctx, "session_id", sessionID); err != nil {
			return err
		}
		if _, err := t.Sessions.DeleteWhere(ctx, "id", sessionID); err != nil {
			return err
		}
		return nil
	})
}
