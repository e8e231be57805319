package domain

import (
	"math"
	"time"
)

// Session is one gym visit. Problems is a snapshot of the session's problem
// rows and may be rebuilt from them at any time.
type Session struct {
	ID               string           `json:"id"`
	StartTime        time.Time        `json:"startTime"`
	EndTime          *time.Time       `json:"endTime,omitempty"`
	PreSessionData   PreSessionData   `json:"preSessionData"`
	PostSessionNotes string           `json:"postSessionNotes,omitempty"`
	Duration         *int             `json:"duration,omitempty"`
	Problems         []SessionProblem `json:"problems"`
}

func (s *Session) IsActive() bool {
	return s.EndTime == nil
}

// End closes the session at now and records its duration in whole minutes.
func (s *Session) End(now time.Time, notes string) error {
	if !s.IsActive() {
		return ErrSessionNotActive
	}
	end := now
	minutes := DurationMinutes(s.StartTime, end)
	s.EndTime = &end
	s.Duration = &minutes
	s.PostSessionNotes = notes
	return nil
}

// DurationMinutes rounds the elapsed time to the nearest minute, halves away
// from zero. Negative spans clamp to zero.
func DurationMinutes(start, end time.Time) int {
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	return int(math.Round(d.Minutes()))
}

// FindProblem returns the index of the snapshot entry with id, or -1.
func (s *Session) FindProblem(id string) int {
	for i := range s.Problems {
		if s.Problems[i].ID == id {
			return i
		}
	}
	return -1
}

// SessionStats summarises the outcome of a session.
type SessionStats struct {
	UniqueProblems int
	TotalAttempts  int
	Flashes        int
	Sends          int
	SuccessRate    int // percent of problems flashed or sent
}

func (s *Session) Stats() SessionStats {
	var st SessionStats
	completed := 0
	for i := range s.Problems {
		p := &s.Problems[i]
		st.UniqueProblems++
		st.TotalAttempts += len(p.Attempts)
		if p.Flash {
			st.Flashes++
		}
		if p.Send {
			st.Sends++
		}
		if p.Completed() {
			completed++
		}
	}
	if st.UniqueProblems > 0 {
		st.SuccessRate = int(math.Round(float64(completed) * 100 / float64(st.UniqueProblems)))
	}
	return st
}
