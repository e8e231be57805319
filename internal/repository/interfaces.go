package repository

import (
	"context"

	"github.com/boulderlog/boulderlog/internal/domain"
)

// Every repository offers the same generic operations: insert-or-replace by
// id, lookup by id, equality queries over indexed fields and bulk delete.

type SessionRepo interface {
	Put(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	List(ctx context.Context) ([]*domain.Session, error)
	ListWhere(ctx context.Context, field string, value any) ([]*domain.Session, error)
	FindActive(ctx context.Context) (*domain.Session, error)
	DeleteWhere(ctx context.Context, field string, value any) (int64, error)
}

type ProblemRepo interface {
	Put(ctx context.Context, p *domain.SessionProblem) error
	GetByID(ctx context.Context, id string) (*domain.SessionProblem, error)
	ListWhere(ctx context.Context, field string, value any) ([]*domain.SessionProblem, error)
	DeleteWhere(ctx context.Context, field string, value any) (int64, error)
}

type AttemptRepo interface {
	Put(ctx context.Context, a *domain.Attempt) error
	GetByID(ctx context.Context, id string) (*domain.Attempt, error)
	ListWhere(ctx context.Context, field string, value any) ([]*domain.Attempt, error)
	DeleteWhere(ctx context.Context, field string, value any) (int64, error)
}

var (
	_ SessionRepo = (*SQLiteSessionRepo)(nil)
	_ ProblemRepo = (*SQLiteProblemRepo)(nil)
	_ AttemptRepo = (*SQLiteAttemptRepo)(nil)
)
