package formatter

import (
	"testing"
	"time"

	"github.com/boulderlog/boulderlog/internal/domain"
	"github.com/stretchr/testify/assert"
)

func sampleSession(now time.Time) *domain.Session {
	start := now.Add(-90 * time.Minute)
	return &domain.Session{
		ID:        "5f0c7e2a-1111-2222-3333-444455556666",
		StartTime: start,
		PreSessionData: func() domain.PreSessionData {
			d := domain.DefaultPreSessionData()
			d.Goals = []string{"Technique", "Power"}
			return d
		}(),
		Problems: []domain.SessionProblem{
			{
				ID: "p1", Name: "Crimpy", FrenchGrade: "6a", ColorGrade: "Napakka",
				Flash: true, Send: true,
				Attempts: []domain.Attempt{{ID: "a1", Type: domain.AttemptTypeFlash, Timestamp: start}},
			},
			{ID: "p2", Name: "Sloper", ColorGrade: "Haastava"},
		},
	}
}

func TestFormatSessionDetail_Active(t *testing.T) {
	now := time.Date(2026, 2, 7, 18, 0, 0, 0, time.UTC)
	out := FormatSessionDetail(sampleSession(now), now)

	assert.Contains(t, out, "Active")
	assert.Contains(t, out, "5f0c7e2a")
	assert.Contains(t, out, "1h 30m")
	assert.Contains(t, out, "Crimpy")
	assert.Contains(t, out, "Flashed")
	assert.Contains(t, out, "Technique, Power")
	assert.Contains(t, out, "50%")
}

func TestFormatSessionDetail_Ended(t *testing.T) {
	now := time.Date(2026, 2, 7, 18, 0, 0, 0, time.UTC)
	s := sampleSession(now)
	s.Problems = nil
	assert.NoError(t, s.End(now, "tired fingers"))

	out := FormatSessionDetail(s, now)
	assert.Contains(t, out, "Ended")
	assert.Contains(t, out, "No problems logged yet.")
	assert.Contains(t, out, "tired fingers")
}

func TestFormatSessionList(t *testing.T) {
	now := time.Date(2026, 2, 7, 18, 0, 0, 0, time.UTC)
	out := FormatSessionList([]*domain.Session{sampleSession(now)}, now)
	assert.Contains(t, out, "PROBLEMS")
	assert.Contains(t, out, "active")
	assert.Contains(t, out, "Technique")
}

func TestFormatGrades(t *testing.T) {
	out := FormatGrades()
	assert.Contains(t, out, "8b+")
	assert.Contains(t, out, "Erittäin Vaikea")
	assert.Contains(t, out, "#FF69B4")
}

func TestFormatCatalog(t *testing.T) {
	out := FormatCatalog([]*domain.Problem{{
		ID: "c1", Name: "Roof", FrenchGrade: "7a", IsProject: true,
		CreatedAt: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
	}})
	assert.Contains(t, out, "Roof")
	assert.Contains(t, out, "2026-01-03")
}
