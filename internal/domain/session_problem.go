package domain

import (
	"strings"
	"time"
)

// SessionProblem is a problem climbed during one session together with its
// ordered attempt history.
type SessionProblem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	FrenchGrade string    `json:"frenchGrade,omitempty"`
	ColorGrade  string    `json:"colorGrade,omitempty"`
	SessionID   string    `json:"sessionId"`
	CreatedAt   time.Time `json:"createdAt"`
	Flash       bool      `json:"flash"`
	Send        bool      `json:"send"`
	Attempts    []Attempt `json:"attempts"`
}

// NewSessionProblem validates the name and grades and returns a problem with
// no attempts.
func NewSessionProblem(id, sessionID, name, frenchGrade, colorGrade string, createdAt time.Time) (*SessionProblem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("problem name is required")
	}
	if err := ValidateGrades(frenchGrade, colorGrade); err != nil {
		return nil, err
	}
	if cg, ok := LookupColorGrade(colorGrade); ok {
		colorGrade = cg.Name
	}
	return &SessionProblem{
		ID:          id,
		Name:        name,
		FrenchGrade: frenchGrade,
		ColorGrade:  colorGrade,
		SessionID:   sessionID,
		CreatedAt:   createdAt,
		Attempts:    []Attempt{},
	}, nil
}

// ApplyHistory replaces the embedded attempts with the given ordered history
// and recomputes the flags. A flag that is already set stays set.
func (p *SessionProblem) ApplyHistory(history []Attempt) {
	p.Attempts = append([]Attempt{}, history...)
	if len(history) > 0 && history[0].Type == AttemptTypeFlash {
		p.Flash = true
	}
	for _, a := range history {
		if a.Type == AttemptTypeSend {
			p.Send = true
			break
		}
	}
}

func (p *SessionProblem) Status() ProblemStatus {
	switch {
	case p.Flash:
		return ProblemFlashed
	case p.Send:
		return ProblemSent
	case len(p.Attempts) > 0:
		return ProblemInProgress
	default:
		return ProblemNotAttempted
	}
}

// Completed reports whether the problem has been flashed or sent.
func (p *SessionProblem) Completed() bool {
	return p.Flash || p.Send
}

// CanLog reports whether an attempt of type t should be offered for this
// problem. A flash is only possible as the first attempt of an uncompleted
// problem and nothing but plain attempts follows completion.
func (p *SessionProblem) CanLog(t AttemptType) bool {
	switch t {
	case AttemptTypeFlash:
		return !p.Completed() && len(p.Attempts) == 0
	case AttemptTypeSend:
		return !p.Completed()
	default:
		return true
	}
}

// GradeLabel joins the problem's grades for display.
func (p *SessionProblem) GradeLabel() string {
	switch {
	case p.FrenchGrade != "" && p.ColorGrade != "":
		return p.FrenchGrade + " / " + p.ColorGrade
	case p.FrenchGrade != "":
		return p.FrenchGrade
	default:
		return p.ColorGrade
	}
}

// CatalogEntry describes the problem as a catalog record seen in one session.
func (p *SessionProblem) CatalogEntry() Problem {
	return Problem{
		ID:             p.ID,
		Name:           p.Name,
		FrenchGrade:    p.FrenchGrade,
		ColorGrade:     p.ColorGrade,
		Completed:      p.Completed(),
		TotalAttempts:  len(p.Attempts),
		CreatedAt:      p.CreatedAt,
		FirstSessionID: p.SessionID,
		LastSessionID:  p.SessionID,
	}
}
