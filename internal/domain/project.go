package domain

import "time"

// Project marks a catalog problem as a long-term goal.
type Project struct {
	ID        string
	ProblemID string
	StartDate time.Time
	EndDate   *time.Time
	Status    ProjectStatus
	Notes     string
}

func (p *Project) IsOpen() bool {
	return p.Status == ProjectActive
}

// Complete closes an active project as achieved.
func (p *Project) Complete(now time.Time) error {
	return p.close(ProjectCompleted, now)
}

// Abandon closes an active project without achieving it.
func (p *Project) Abandon(now time.Time) error {
	return p.close(ProjectAbandoned, now)
}

func (p *Project) close(status ProjectStatus, now time.Time) error {
	if !p.IsOpen() {
		return validationError("project %s is already %s", p.ID, p.Status)
	}
	end := now
	p.Status = status
	p.EndDate = &end
	return nil
}

// Progress is 100 for a completed problem and 50 for one still being worked.
func (p *Project) Progress(problem *Problem) int {
	if problem == nil {
		return 0
	}
	if problem.Completed {
		return 100
	}
	return 50
}
