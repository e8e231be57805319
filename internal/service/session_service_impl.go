package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/boulderlog/boulderlog/internal/domain"
	"github.com/boulderlog/boulderlog/internal/export"
	"github.com/boulderlog/boulderlog/internal/repository"
	"github.com/boulderlog/boulderlog/internal/sheets"
)

type sessionService struct {
	store  *repository.Store
	remote sheets.Remote
	opts   options
}

func NewSessionService(store *repository.Store, remote sheets.Remote, opts ...Option) SessionService {
	if remote == nil {
		remote = sheets.NewNoopRemote(sheets.Config{})
	}
	return &sessionService{store: store, remote: remote, opts: applyOptions(opts)}
}

func (s *sessionService) StartSession(ctx context.Context, data domain.PreSessionData) (sess *domain.Session, err error) {
	fields := map[string]any{}
	defer observeUseCase(ctx, s.opts.observer, "start-session", time.Now(), fields, &err)

	if err = data.Validate(); err != nil {
		return nil, err
	}
	if data.Goals == nil {
		data.Goals = []string{}
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, t *repository.Tables) error {
		active, err := t.Sessions.FindActive(ctx)
		switch {
		case err == nil:
			return fmt.Errorf("session %s is still open: %w", active.ID, domain.ErrActiveSessionExists)
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}

		sess = &domain.Session{
			ID:             s.opts.newID(),
			StartTime:      s.opts.now(),
			PreSessionData: data,
			Problems:       []domain.SessionProblem{},
		}
		return t.Sessions.Put(ctx, sess)
	})
	if err != nil {
		return nil, err
	}
	fields["session_id"] = sess.ID
	return sess, nil
}

func (s *sessionService) EndSession(ctx context.Context, sessionID, notes string) (sess *domain.Session, err error) {
	fields := map[string]any{"session_id": sessionID}
	defer observeUseCase(ctx, s.opts.observer, "end-session", time.Now(), fields, &err)

	err = s.store.WithinTx(ctx, func(ctx context.Context, t *repository.Tables) error {
		sess, err = requireActive(ctx, t, sessionID)
		if err != nil {
			return err
		}
		if err := sess.End(s.opts.now(), notes); err != nil {
			return err
		}
		return t.Sessions.Put(ctx, sess)
	})
	if err != nil {
		return nil, err
	}
	fields["duration_min"] = *sess.Duration
	return sess, nil
}

func (s *sessionService) AddProblem(ctx context.Context, sessionID, name, frenchGrade, colorGrade string) (problem *domain.SessionProblem, err error) {
	fields := map[string]any{"session_id": sessionID}
	defer observeUseCase(ctx, s.opts.observer, "add-problem", time.Now(), fields, &err)

	err = s.store.WithinTx(ctx, func(ctx context.Context, t *repository.Tables) error {
		sess, err := requireActive(ctx, t, sessionID)
		if err != nil {
			return err
		}
		problem, err = domain.NewSessionProblem(s.opts.newID(), sessionID, name, frenchGrade, colorGrade, s.opts.now())
		if err != nil {
			return err
		}
		if err := t.Problems.Put(ctx, problem); err != nil {
			return err
		}
		sess.Problems = append(sess.Problems, *problem)
		return t.Sessions.Put(ctx, sess)
	})
	if err != nil {
		return nil, err
	}
	fields["problem_id"] = problem.ID
	return problem, nil
}

// AddAttempt appends an attempt and recomputes the problem's flags from its
// full history. Attempts after completion are accepted; callers that want to
// block them check SessionProblem.CanLog first.
func (s *sessionService) AddAttempt(ctx context.Context, sessionID, problemID string, typ domain.AttemptType, notes string) (problem *domain.SessionProblem, err error) {
	fields := map[string]any{"session_id": sessionID, "problem_id": problemID, "type": string(typ)}
	defer observeUseCase(ctx, s.opts.observer, "add-attempt", time.Now(), fields, &err)

	if _, err = domain.ParseAttemptType(string(typ)); err != nil {
		return nil, err
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, t *repository.Tables) error {
		sess, err := requireActive(ctx, t, sessionID)
		if err != nil {
			return err
		}
		problem, err = t.Problems.GetByID(ctx, problemID)
		if err != nil {
			return err
		}
		if problem.SessionID != sessionID {
			return fmt.Errorf("problem %s in session %s: %w", problemID, sessionID, domain.ErrNotFound)
		}

		rows, err := t.Attempts.ListWhere(ctx, "problem_id", problemID)
		if err != nil {
			return err
		}
		history := flatten(rows)

		ts := s.opts.now()
		if ts.Before(problem.CreatedAt) {
			ts = problem.CreatedAt
		}
		if n := len(history); n > 0 && ts.Before(history[n-1].Timestamp) {
			ts = history[n-1].Timestamp
		}
		attempt := &domain.Attempt{
			ID:        s.opts.newID(),
			ProblemID: problemID,
			SessionID: sessionID,
			Timestamp: ts,
			Type:      typ,
			Notes:     notes,
		}
		if err := t.Attempts.Put(ctx, attempt); err != nil {
			return err
		}

		problem.ApplyHistory(append(history, *attempt))
		if err := t.Problems.Put(ctx, problem); err != nil {
			return err
		}

		if i := sess.FindProblem(problemID); i >= 0 {
			sess.Problems[i] = *problem
		} else {
			rebuilt, err := repository.Hydrate(ctx, t, sessionID)
			if err != nil {
				return err
			}
			sess.Problems = rebuilt.Problems
		}
		return t.Sessions.Put(ctx, sess)
	})
	if err != nil {
		return nil, err
	}
	fields["status"] = string(problem.Status())
	return problem, nil
}

func (s *sessionService) Active(ctx context.Context) (*domain.Session, error) {
	return s.store.FindActiveSession(ctx)
}

// Get returns the session rebuilt from its problem and attempt rows.
func (s *sessionService) Get(ctx context.Context, id string) (*domain.Session, error) {
	return s.store.Hydrate(ctx, id)
}

func (s *sessionService) List(ctx context.Context) ([]*domain.Session, error) {
	return s.store.Tables().Sessions.List(ctx)
}

// ResolveID expands a unique id prefix to a full session id.
func (s *sessionService) ResolveID(ctx context.Context, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("%w: session id is required", domain.ErrValidation)
	}
	sessions, err := s.List(ctx)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, sess := range sessions {
		if sess.ID == prefix {
			return sess.ID, nil
		}
		if strings.HasPrefix(sess.ID, prefix) {
			matches = append(matches, sess.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("session %s: %w", prefix, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: session prefix %q matches %d sessions", domain.ErrValidation, prefix, len(matches))
	}
}

func (s *sessionService) Delete(ctx context.Context, id string) (err error) {
	defer observeUseCase(ctx, s.opts.observer, "delete-session", time.Now(), map[string]any{"session_id": id}, &err)
	return s.store.CascadeDeleteSession(ctx, id)
}

// SnapshotDrift describes one difference between a session's embedded
// problem list and its problem rows.
type SnapshotDrift struct {
	ProblemID string
	Reason    string
}

func (d SnapshotDrift) String() string {
	return d.ProblemID + ": " + d.Reason
}

func (s *sessionService) CheckSnapshot(ctx context.Context, id string) ([]SnapshotDrift, error) {
	stored, err := s.store.Tables().Sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	hydrated, err := s.store.Hydrate(ctx, id)
	if err != nil {
		return nil, err
	}
	return compareSnapshot(stored.Problems, hydrated.Problems), nil
}

func (s *sessionService) RepairSnapshot(ctx context.Context, id string) (sess *domain.Session, err error) {
	fields := map[string]any{"session_id": id}
	defer observeUseCase(ctx, s.opts.observer, "repair-snapshot", time.Now(), fields, &err)

	err = s.store.WithinTx(ctx, func(ctx context.Context, t *repository.Tables) error {
		stored, err := t.Sessions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		sess, err = repository.Hydrate(ctx, t, id)
		if err != nil {
			return err
		}
		drift := compareSnapshot(stored.Problems, sess.Problems)
		fields["drift"] = len(drift)
		if len(drift) == 0 {
			return nil
		}
		return t.Sessions.Put(ctx, sess)
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *sessionService) Export(ctx context.Context, id string) (string, error) {
	sess, err := s.store.Hydrate(ctx, id)
	if err != nil {
		return "", fmt.Errorf("exporting session: %w", err)
	}
	return export.FormatSession(sess), nil
}

// Push hands a hydrated session, its problems and attempts to the remote.
func (s *sessionService) Push(ctx context.Context, id string) (err error) {
	defer observeUseCase(ctx, s.opts.observer, "push-session", time.Now(), map[string]any{"session_id": id}, &err)

	sess, err := s.store.Hydrate(ctx, id)
	if err != nil {
		return err
	}
	if err = s.remote.SaveSession(ctx, sess); err != nil {
		return fmt.Errorf("pushing session %s: %w", id, err)
	}
	for i := range sess.Problems {
		p := &sess.Problems[i]
		entry := p.CatalogEntry()
		if err = s.remote.SaveProblem(ctx, &entry); err != nil {
			return fmt.Errorf("pushing problem %s: %w", p.ID, err)
		}
		for j := range p.Attempts {
			if err = s.remote.SaveAttempt(ctx, &p.Attempts[j]); err != nil {
				return fmt.Errorf("pushing attempt %s: %w", p.Attempts[j].ID, err)
			}
		}
	}
	return nil
}

func requireActive(ctx context.Context, t *repository.Tables, sessionID string) (*domain.Session, error) {
	sess, err := t.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.IsActive() {
		return nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrSessionNotActive)
	}
	return sess, nil
}

func flatten(rows []*domain.Attempt) []domain.Attempt {
	out := make([]domain.Attempt, 0, len(rows)+1)
	for _, a := range rows {
		out = append(out, *a)
	}
	return out
}

func compareSnapshot(snapshot, rows []domain.SessionProblem) []SnapshotDrift {
	var drift []SnapshotDrift
	byID := make(map[string]domain.SessionProblem, len(snapshot))
	for _, p := range snapshot {
		byID[p.ID] = p
	}
	for _, want := range rows {
		got, ok := byID[want.ID]
		if !ok {
			drift = append(drift, SnapshotDrift{ProblemID: want.ID, Reason: "missing from snapshot"})
			continue
		}
		delete(byID, want.ID)
		switch {
		case got.Flash != want.Flash || got.Send != want.Send:
			drift = append(drift, SnapshotDrift{ProblemID: want.ID, Reason: "flags differ"})
		case len(got.Attempts) != len(want.Attempts):
			drift = append(drift, SnapshotDrift{
				ProblemID: want.ID,
				Reason:    fmt.Sprintf("snapshot has %d attempts, rows have %d", len(got.Attempts), len(want.Attempts)),
			})
		}
	}
	for _, p := range snapshot {
		if _, ok := byID[p.ID]; ok {
			drift = append(drift, SnapshotDrift{ProblemID: p.ID, Reason: "no problem row"})
		}
	}
	return drift
}
