package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionEnd_RoundsDuration(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	s := &Session{ID: "s1", StartTime: start}
	require.True(t, s.IsActive())

	require.NoError(t, s.End(start.Add(90*time.Second), "tired"))
	assert.False(t, s.IsActive())
	require.NotNil(t, s.Duration)
	assert.Equal(t, 2, *s.Duration)
	assert.Equal(t, "tired", s.PostSessionNotes)
}

func TestSessionEnd_AlreadyEnded(t *testing.T) {
	start := time.Now()
	s := &Session{ID: "s1", StartTime: start}
	require.NoError(t, s.End(start.Add(time.Hour), ""))

	err := s.End(start.Add(2*time.Hour), "again")
	assert.ErrorIs(t, err, ErrSessionNotActive)
	assert.ErrorIs(t, err, ErrInvariantViolation)
	assert.Equal(t, 60, *s.Duration)
}

func TestDurationMinutes(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DurationMinutes(start, start.Add(29*time.Second)))
	assert.Equal(t, 1, DurationMinutes(start, start.Add(30*time.Second)))
	assert.Equal(t, 2, DurationMinutes(start, start.Add(90*time.Second)))
	assert.Equal(t, 95, DurationMinutes(start, start.Add(95*time.Minute)))
	assert.Equal(t, 0, DurationMinutes(start, start.Add(-time.Minute)))
}

func TestSessionStats(t *testing.T) {
	s := &Session{Problems: []SessionProblem{
		{ID: "a", Flash: true, Attempts: attempts(AttemptTypeFlash)},
		{ID: "b", Send: true, Attempts: attempts(AttemptTypeAttempt, AttemptTypeSend)},
		{ID: "c", Attempts: attempts(AttemptTypeAttempt)},
	}}

	st := s.Stats()
	assert.Equal(t, 3, st.UniqueProblems)
	assert.Equal(t, 4, st.TotalAttempts)
	assert.Equal(t, 1, st.Flashes)
	assert.Equal(t, 1, st.Sends)
	assert.Equal(t, 67, st.SuccessRate)

	assert.Equal(t, SessionStats{}, (&Session{}).Stats())
}

func TestFindProblem(t *testing.T) {
	s := &Session{Problems: []SessionProblem{{ID: "a"}, {ID: "b"}}}
	assert.Equal(t, 1, s.FindProblem("b"))
	assert.Equal(t, -1, s.FindProblem("z"))
}
