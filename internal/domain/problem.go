package domain

import (
	"strings"
	"time"
)

// Problem is a catalog entry for a boulder tracked across sessions.
type Problem struct {
	ID             string
	Name           string
	FrenchGrade    string
	ColorGrade     string
	IsProject      bool
	Completed      bool
	TotalAttempts  int
	CreatedAt      time.Time
	FirstSessionID string
	LastSessionID  string
}

func (p *Problem) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return validationError("problem name is required")
	}
	return ValidateGrades(p.FrenchGrade, p.ColorGrade)
}
