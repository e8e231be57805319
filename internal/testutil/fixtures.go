package testutil

import (
	"time"

	"github.com/boulderlog/boulderlog/internal/domain"
	"github.com/google/uuid"
)

// Session options
type SessionOption func(*domain.Session)

func WithStartTime(t time.Time) SessionOption {
	return func(s *domain.Session) {
		s.StartTime = t
	}
}

// WithEnded closes the session after the given number of minutes.
func WithEnded(minutes int) SessionOption {
	return func(s *domain.Session) {
		end := s.StartTime.Add(time.Duration(minutes) * time.Minute)
		s.EndTime = &end
		s.Duration = &minutes
	}
}

func WithGoals(goals ...string) SessionOption {
	return func(s *domain.Session) {
		s.PreSessionData.Goals = goals
	}
}

func WithSnapshot(problems ...domain.SessionProblem) SessionOption {
	return func(s *domain.Session) {
		s.Problems = problems
	}
}

func NewTestSession(opts ...SessionOption) *domain.Session {
	s := &domain.Session{
		ID:             uuid.New().String(),
		StartTime:      time.Now().UTC().Truncate(time.Millisecond),
		PreSessionData: domain.DefaultPreSessionData(),
		Problems:       []domain.SessionProblem{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Problem options
type ProblemOption func(*domain.SessionProblem)

func WithFrenchGrade(g string) ProblemOption {
	return func(p *domain.SessionProblem) {
		p.FrenchGrade = g
	}
}

func WithColorGrade(g string) ProblemOption {
	return func(p *domain.SessionProblem) {
		p.ColorGrade = g
	}
}

func WithFlags(flash, send bool) ProblemOption {
	return func(p *domain.SessionProblem) {
		p.Flash = flash
		p.Send = send
	}
}

func WithCreatedAt(t time.Time) ProblemOption {
	return func(p *domain.SessionProblem) {
		p.CreatedAt = t
	}
}

func NewTestProblem(sessionID, name string, opts ...ProblemOption) *domain.SessionProblem {
	p := &domain.SessionProblem{
		ID:          uuid.New().String(),
		Name:        name,
		FrenchGrade: "6a",
		SessionID:   sessionID,
		CreatedAt:   time.Now().UTC().Truncate(time.Millisecond),
		Attempts:    []domain.Attempt{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Attempt options
type AttemptOption func(*domain.Attempt)

func WithTimestamp(t time.Time) AttemptOption {
	return func(a *domain.Attempt) {
		a.Timestamp = t
	}
}

func WithAttemptNotes(n string) AttemptOption {
	return func(a *domain.Attempt) {
		a.Notes = n
	}
}

func NewTestAttempt(p *domain.SessionProblem, typ domain.AttemptType, opts ...AttemptOption) *domain.Attempt {
	a := &domain.Attempt{
		ID:        uuid.New().String(),
		ProblemID: p.ID,
		SessionID: p.SessionID,
		Timestamp: time.Now().UTC().Truncate(time.Millisecond),
		Type:      typ,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
