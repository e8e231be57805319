package domain

import "time"

// Attempt is one logged try at a problem. Attempts are append-only.
type Attempt struct {
	ID        string      `json:"id"`
	ProblemID string      `json:"problemId"`
	SessionID string      `json:"sessionId"`
	Timestamp time.Time   `json:"timestamp"`
	Type      AttemptType `json:"type"`
	Notes     string      `json:"notes,omitempty"`
}
