package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/boulderlog/boulderlog/internal/domain"
)

// resolveSessionID expands an id prefix, or picks the active session when
// input is empty.
func resolveSessionID(ctx context.Context, app *App, input string) (string, error) {
	if strings.TrimSpace(input) != "" {
		return app.Sessions.ResolveID(ctx, input)
	}
	sess, err := app.Sessions.Active(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("no active session: %w", domain.ErrSessionNotActive)
	}
	if err != nil {
		return "", err
	}
	return sess.ID, nil
}

// resolveProblem finds a problem of sess by exact id, unique id prefix or
// case-insensitive name.
func resolveProblem(sess *domain.Session, input string) (*domain.SessionProblem, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("%w: problem is required", domain.ErrValidation)
	}

	var matches []*domain.SessionProblem
	for i := range sess.Problems {
		p := &sess.Problems[i]
		if p.ID == input {
			return p, nil
		}
		if strings.HasPrefix(p.ID, input) || strings.EqualFold(p.Name, input) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("problem %q: %w", input, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %q matches %d problems, use the id", domain.ErrValidation, input, len(matches))
	}
}
