// Package export renders a hydrated session as a flat comma separated report.
package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/boulderlog/boulderlog/internal/domain"
)

// TimestampLayout is the ISO-8601 form used for every time in the report.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatSession writes the four report sections in order: session details,
// pre-session data, problems and attempts. Fields are not escaped.
func FormatSession(s *domain.Session) string {
	var rows []string

	rows = append(rows,
		"Session Details",
		"Start Time,"+formatTimestamp(s.StartTime),
		"End Time,"+formatOptionalTimestamp(s.EndTime),
		"Duration (minutes),"+formatOptionalInt(s.Duration),
	)

	d := s.PreSessionData
	rows = append(rows,
		"",
		"Pre-session Data",
		"sleepQuality,"+strconv.Itoa(d.SleepQuality),
		"energyLevel,"+strconv.Itoa(d.EnergyLevel),
		"fingerSoreness,"+strconv.Itoa(d.FingerSoreness),
		"motivation,"+strconv.Itoa(d.Motivation),
		"restDays,"+strconv.Itoa(d.RestDays),
		"nutrition,"+string(d.Nutrition),
		"stress,"+string(d.Stress),
		"goals,"+strings.Join(d.Goals, "; "),
		"additionalNotes,"+d.AdditionalNotes,
	)

	rows = append(rows, "", "Problems", "Name,French Grade,Color Grade,Flash,Send,Attempts")
	for _, p := range s.Problems {
		rows = append(rows, strings.Join([]string{
			p.Name,
			p.FrenchGrade,
			p.ColorGrade,
			yesNo(p.Flash),
			yesNo(p.Send),
			strconv.Itoa(len(p.Attempts)),
		}, ","))
	}

	rows = append(rows, "", "Attempts", "Problem Name,Type,Timestamp")
	for _, p := range s.Problems {
		for _, a := range p.Attempts {
			rows = append(rows, strings.Join([]string{p.Name, string(a.Type), formatTimestamp(a.Timestamp)}, ","))
		}
	}

	return strings.Join(rows, "\n")
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func formatOptionalTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTimestamp(*t)
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
