package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/boulderlog/boulderlog/internal/domain"
)

// CatalogOrder selects how List orders the catalog.
type CatalogOrder string

const (
	OrderByDate       CatalogOrder = "date"
	OrderByDifficulty CatalogOrder = "difficulty"
	OrderByProject    CatalogOrder = "project"
)

// ParseCatalogOrder accepts date, difficulty or project.
func ParseCatalogOrder(s string) (CatalogOrder, error) {
	switch o := CatalogOrder(strings.ToLower(s)); o {
	case OrderByDate, OrderByDifficulty, OrderByProject:
		return o, nil
	}
	return "", fmt.Errorf("%w: sort %q must be date, difficulty or project", domain.ErrValidation, s)
}

type catalogService struct {
	mu       sync.Mutex
	problems []*domain.Problem
	projects []*domain.Project
	opts     options
}

func NewCatalogService(opts ...Option) CatalogService {
	return &catalogService{opts: applyOptions(opts)}
}

func (c *catalogService) AddProblem(ctx context.Context, name, frenchGrade, colorGrade string) (p *domain.Problem, err error) {
	defer observeUseCase(ctx, c.opts.observer, "catalog-add-problem", time.Now(), map[string]any{"name": name}, &err)

	p = &domain.Problem{
		ID:          c.opts.newID(),
		Name:        strings.TrimSpace(name),
		FrenchGrade: frenchGrade,
		ColorGrade:  colorGrade,
		CreatedAt:   c.opts.now(),
	}
	if err = p.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.problems = append(c.problems, p)
	return copyProblem(p), nil
}

// ImportSessions folds logged session problems into the catalog. Problems
// with the same name and grades are one catalog entry.
func (c *catalogService) ImportSessions(ctx context.Context, sessions []*domain.Session) error {
	ordered := append([]*domain.Session(nil), sessions...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartTime.Before(ordered[j].StartTime)
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, sess := range ordered {
		for i := range sess.Problems {
			sp := &sess.Problems[i]
			entry := c.findLocked(sp.Name, sp.FrenchGrade, sp.ColorGrade)
			if entry == nil {
				e := sp.CatalogEntry()
				c.problems = append(c.problems, &e)
				continue
			}
			entry.TotalAttempts += len(sp.Attempts)
			entry.Completed = entry.Completed || sp.Completed()
			entry.LastSessionID = sess.ID
		}
	}
	return nil
}

func (c *catalogService) findLocked(name, frenchGrade, colorGrade string) *domain.Problem {
	for _, p := range c.problems {
		if strings.EqualFold(p.Name, name) && p.FrenchGrade == frenchGrade && p.ColorGrade == colorGrade {
			return p
		}
	}
	return nil
}

// List returns copies of the catalog. Date order is newest first,
// difficulty order hardest first, project order puts projects first.
func (c *catalogService) List(_ context.Context, order CatalogOrder) []*domain.Problem {
	c.mu.Lock()
	out := make([]*domain.Problem, 0, len(c.problems))
	for _, p := range c.problems {
		out = append(out, copyProblem(p))
	}
	c.mu.Unlock()

	switch order {
	case OrderByDifficulty:
		sort.SliceStable(out, func(i, j int) bool {
			return domain.FrenchGradeRank(out[i].FrenchGrade) > domain.FrenchGradeRank(out[j].FrenchGrade)
		})
	case OrderByProject:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].IsProject && !out[j].IsProject
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

func (c *catalogService) ToggleProject(_ context.Context, id string) (*domain.Problem, error) {
	return c.update(id, func(p *domain.Problem) { p.IsProject = !p.IsProject })
}

func (c *catalogService) ToggleCompleted(_ context.Context, id string) (*domain.Problem, error) {
	return c.update(id, func(p *domain.Problem) { p.Completed = !p.Completed })
}

func (c *catalogService) update(id string, fn func(*domain.Problem)) (*domain.Problem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.problems {
		if p.ID == id {
			fn(p)
			return copyProblem(p), nil
		}
	}
	return nil, fmt.Errorf("catalog problem %s: %w", id, domain.ErrNotFound)
}

func (c *catalogService) Delete(ctx context.Context, id string) (err error) {
	defer observeUseCase(ctx, c.opts.observer, "catalog-delete-problem", time.Now(), map[string]any{"problem_id": id}, &err)

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range c.problems {
		if p.ID == id {
			c.problems = append(c.problems[:i], c.problems[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("catalog problem %s: %w", id, domain.ErrNotFound)
}

// StartProject opens a project on a catalog problem and marks the problem as
// a project. A problem has at most one open project.
func (c *catalogService) StartProject(ctx context.Context, problemID, notes string) (pr *domain.Project, err error) {
	defer observeUseCase(ctx, c.opts.observer, "start-project", time.Now(), map[string]any{"problem_id": problemID}, &err)

	c.mu.Lock()
	defer c.mu.Unlock()

	var problem *domain.Problem
	for _, p := range c.problems {
		if p.ID == problemID {
			problem = p
		}
	}
	if problem == nil {
		return nil, fmt.Errorf("catalog problem %s: %w", problemID, domain.ErrNotFound)
	}
	for _, existing := range c.projects {
		if existing.ProblemID == problemID && existing.IsOpen() {
			return nil, fmt.Errorf("%w: problem %s already has an open project", domain.ErrInvariantViolation, problemID)
		}
	}

	pr = &domain.Project{
		ID:        c.opts.newID(),
		ProblemID: problemID,
		StartDate: c.opts.now(),
		Status:    domain.ProjectActive,
		Notes:     notes,
	}
	problem.IsProject = true
	c.projects = append(c.projects, pr)
	cp := *pr
	return &cp, nil
}

func (c *catalogService) CompleteProject(_ context.Context, id string) (*domain.Project, error) {
	return c.closeProject(id, func(p *domain.Project) error { return p.Complete(c.opts.now()) }, true)
}

func (c *catalogService) AbandonProject(_ context.Context, id string) (*domain.Project, error) {
	return c.closeProject(id, func(p *domain.Project) error { return p.Abandon(c.opts.now()) }, false)
}

func (c *catalogService) closeProject(id string, fn func(*domain.Project) error, completed bool) (*domain.Project, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, pr := range c.projects {
		if pr.ID != id {
			continue
		}
		if err := fn(pr); err != nil {
			return nil, err
		}
		for _, p := range c.problems {
			if p.ID == pr.ProblemID {
				p.Completed = p.Completed || completed
			}
		}
		cp := *pr
		return &cp, nil
	}
	return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
}

func (c *catalogService) Projects(context.Context) []*domain.Project {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*domain.Project, 0, len(c.projects))
	for _, pr := range c.projects {
		cp := *pr
		out = append(out, &cp)
	}
	return out
}

func copyProblem(p *domain.Problem) *domain.Problem {
	cp := *p
	return &cp
}
