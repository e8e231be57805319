// Package sheets is the remote spreadsheet sync collaborator. Only a no-op
// implementation exists.
package sheets

import (
	"context"

	"github.com/boulderlog/boulderlog/internal/domain"
)

// Remote mirrors records to a spreadsheet.
type Remote interface {
	GetSessions(ctx context.Context) ([]domain.Session, error)
	GetProblems(ctx context.Context) ([]domain.Problem, error)
	GetAttempts(ctx context.Context) ([]domain.Attempt, error)
	GetProjects(ctx context.Context) ([]domain.Project, error)

	SaveSession(ctx context.Context, s *domain.Session) error
	SaveProblem(ctx context.Context, p *domain.Problem) error
	SaveAttempt(ctx context.Context, a *domain.Attempt) error
	SaveProject(ctx context.Context, p *domain.Project) error
}

// Config identifies the target spreadsheet.
type Config struct {
	SpreadsheetID string `yaml:"spreadsheet_id"`
	APIKey        string `yaml:"api_key"`
}

func (c Config) Configured() bool {
	return c.SpreadsheetID != "" && c.APIKey != ""
}

// NoopRemote accepts every save and returns empty lists.
type NoopRemote struct {
	Config Config
}

func NewNoopRemote(cfg Config) *NoopRemote {
	return &NoopRemote{Config: cfg}
}

var _ Remote = (*NoopRemote)(nil)

func (*NoopRemote) GetSessions(context.Context) ([]domain.Session, error) { return nil, nil }
func (*NoopRemote) GetProblems(context.Context) ([]domain.Problem, error) { return nil, nil }
func (*NoopRemote) GetAttempts(context.Context) ([]domain.Attempt, error) { return nil, nil }
func (*NoopRemote) GetProjects(context.Context) ([]domain.Project, error) { return nil, nil }

func (*NoopRemote) SaveSession(context.Context, *domain.Session) error { return nil }
func (*NoopRemote) SaveProblem(context.Context, *domain.Problem) error { return nil }
func (*NoopRemote) SaveAttempt(context.Context, *domain.Attempt) error { return nil }
func (*NoopRemote) SaveProject(context.Context, *domain.Project) error { return nil }
