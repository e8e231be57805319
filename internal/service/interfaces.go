package service

import (
	"context"

	"github.com/boulderlog/boulderlog/internal/domain"
)

// SessionService runs the session workflows. Every write workflow is one
// transaction; callers never observe a problem row without its snapshot
// entry or an attempt without its recomputed flags.
type SessionService interface {
	StartSession(ctx context.Context, data domain.PreSessionData) (*domain.Session, error)
	EndSession(ctx context.Context, sessionID, notes string) (*domain.Session, error)
	AddProblem(ctx context.Context, sessionID, name, frenchGrade, colorGrade string) (*domain.SessionProblem, error)
	AddAttempt(ctx context.Context, sessionID, problemID string, typ domain.AttemptType, notes string) (*domain.SessionProblem, error)

	Active(ctx context.Context) (*domain.Session, error)
	Get(ctx context.Context, id string) (*domain.Session, error)
	List(ctx context.Context) ([]*domain.Session, error)
	ResolveID(ctx context.Context, prefix string) (string, error)
	Delete(ctx context.Context, id string) error

	CheckSnapshot(ctx context.Context, id string) ([]SnapshotDrift, error)
	RepairSnapshot(ctx context.Context, id string) (*domain.Session, error)

	Export(ctx context.Context, id string) (string, error)
	Push(ctx context.Context, id string) error
}

// CatalogService keeps the problem catalog and projects in memory.
type CatalogService interface {
	AddProblem(ctx context.Context, name, frenchGrade, colorGrade string) (*domain.Problem, error)
	ImportSessions(ctx context.Context, sessions []*domain.Session) error
	List(ctx context.Context, order CatalogOrder) []*domain.Problem
	ToggleProject(ctx context.Context, id string) (*domain.Problem, error)
	ToggleCompleted(ctx context.Context, id string) (*domain.Problem, error)
	Delete(ctx context.Context, id string) error

	StartProject(ctx context.Context, problemID, notes string) (*domain.Project, error)
	CompleteProject(ctx context.Context, id string) (*domain.Project, error)
	AbandonProject(ctx context.Context, id string) (*domain.Project, error)
	Projects(ctx context.Context) []*domain.Project
}
