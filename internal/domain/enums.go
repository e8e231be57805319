package domain

import "fmt"

type AttemptType string

const (
	AttemptTypeAttempt AttemptType = "attempt"
	AttemptTypeFlash   AttemptType = "flash"
	AttemptTypeSend    AttemptType = "send"
)

// ValidAttemptTypes is the canonical set of accepted attempt type strings.
var ValidAttemptTypes = map[AttemptType]bool{
	AttemptTypeAttempt: true,
	AttemptTypeFlash:   true,
	AttemptTypeSend:    true,
}

// ParseAttemptType converts user input into an AttemptType.
func ParseAttemptType(s string) (AttemptType, error) {
	t := AttemptType(s)
	if !ValidAttemptTypes[t] {
		return "", fmt.Errorf("%w: attempt type %q must be one of attempt, flash, send", ErrValidation, s)
	}
	return t, nil
}

type Nutrition string

const (
	NutritionPoor     Nutrition = "poor"
	NutritionModerate Nutrition = "moderate"
	NutritionGood     Nutrition = "good"
)

type StressLevel string

const (
	StressLow    StressLevel = "low"
	StressMedium StressLevel = "medium"
	StressHigh   StressLevel = "high"
)

// ProblemStatus is the completion state of a problem within one session.
type ProblemStatus string

const (
	ProblemNotAttempted ProblemStatus = "not_attempted"
	ProblemInProgress   ProblemStatus = "in_progress"
	ProblemFlashed      ProblemStatus = "flashed"
	ProblemSent         ProblemStatus = "sent"
)

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectAbandoned ProjectStatus = "abandoned"
)
