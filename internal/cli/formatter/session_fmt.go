package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/boulderlog/boulderlog/internal/domain"
)

// FormatSessionDetail renders one hydrated session: header facts, stats,
// the pre-session questionnaire and the problems logged so far.
func FormatSessionDetail(s *domain.Session, now time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s\n", SessionStatePill(s.IsActive()), TruncID(s.ID)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Started:"), HumanDateFrom(s.StartTime, now)))
	if s.IsActive() {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Elapsed:"), FormatMinutes(domain.DurationMinutes(s.StartTime, now))))
	} else {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Ended:"), HumanDateFrom(*s.EndTime, now)))
		if s.Duration != nil {
			b.WriteString(fmt.Sprintf("%s %s\n", Dim("Duration:"), FormatMinutes(*s.Duration)))
		}
	}

	st := s.Stats()
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s problems  %s attempts  %s flashes  %s sends  %s success\n",
		Bold(fmt.Sprint(st.UniqueProblems)),
		Bold(fmt.Sprint(st.TotalAttempts)),
		StyleYellow.Render(fmt.Sprint(st.Flashes)),
		StyleGreen.Render(fmt.Sprint(st.Sends)),
		Bold(fmt.Sprintf("%d%%", st.SuccessRate))))

	d := s.PreSessionData
	b.WriteString("\n" + Header("Pre-session") + "\n")
	b.WriteString(fmt.Sprintf("sleep %d  energy %d  fingers %d  motivation %d  rest %dd\n",
		d.SleepQuality, d.EnergyLevel, d.FingerSoreness, d.Motivation, d.RestDays))
	b.WriteString(fmt.Sprintf("nutrition %s  stress %s\n", d.Nutrition, d.Stress))
	if len(d.Goals) > 0 {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Goals:"), strings.Join(d.Goals, ", ")))
	}
	if d.AdditionalNotes != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Notes:"), d.AdditionalNotes))
	}

	b.WriteString("\n" + Header("Problems") + "\n")
	if len(s.Problems) == 0 {
		b.WriteString(Dim("No problems logged yet.") + "\n")
	} else {
		b.WriteString(RenderTable(ProblemHeaders, ProblemRows(s.Problems)))
	}

	if s.PostSessionNotes != "" {
		b.WriteString(fmt.Sprintf("\n%s %s\n", Dim("Post-session notes:"), s.PostSessionNotes))
	}
	return b.String()
}

var ProblemHeaders = []string{"ID", "NAME", "FRENCH", "COLOR", "ATTEMPTS", "STATUS"}

func ProblemRows(problems []domain.SessionProblem) [][]string {
	rows := make([][]string, 0, len(problems))
	for i := range problems {
		p := &problems[i]
		rows = append(rows, []string{
			TruncID(p.ID),
			p.Name,
			domain.CoalesceStr(p.FrenchGrade, Dim("--")),
			ColorSwatch(p.ColorGrade),
			fmt.Sprint(len(p.Attempts)),
			ProblemStatusPill(p.Status()),
		})
	}
	return rows
}

// FormatSessionList renders sessions newest first with their stats.
func FormatSessionList(sessions []*domain.Session, now time.Time) string {
	headers := []string{"ID", "STARTED", "DURATION", "PROBLEMS", "FLASHES", "SENDS", "GOALS"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		st := s.Stats()
		duration := StyleGreen.Render("active")
		if s.Duration != nil {
			duration = FormatMinutes(*s.Duration)
		}
		rows = append(rows, []string{
			TruncID(s.ID),
			HumanDateFrom(s.StartTime, now),
			duration,
			fmt.Sprint(st.UniqueProblems),
			fmt.Sprint(st.Flashes),
			fmt.Sprint(st.Sends),
			Dim(Truncate(strings.Join(s.PreSessionData.Goals, ", "), 40)),
		})
	}
	return RenderTable(headers, rows)
}

// FormatGrades lists the French scale and the gym colour circuits.
func FormatGrades() string {
	var b strings.Builder
	b.WriteString(Header("French") + "\n")
	b.WriteString(strings.Join(domain.FrenchGrades, "  ") + "\n\n")

	b.WriteString(Header("Gym colors") + "\n")
	rows := make([][]string, 0, len(domain.ColorGrades))
	for _, cg := range domain.ColorGrades {
		rows = append(rows, []string{ColorSwatch(cg.Name), cg.Color, cg.Range})
	}
	b.WriteString(RenderTable([]string{"COLOR", "HEX", "RANGE"}, rows))
	return b.String()
}

// FormatCatalog renders catalog problems in the given order.
func FormatCatalog(problems []*domain.Problem) string {
	headers := []string{"ID", "NAME", "FRENCH", "COLOR", "ATTEMPTS", "PROJECT", "DONE", "ADDED"}
	rows := make([][]string, 0, len(problems))
	for _, p := range problems {
		rows = append(rows, []string{
			TruncID(p.ID),
			p.Name,
			domain.CoalesceStr(p.FrenchGrade, Dim("--")),
			ColorSwatch(p.ColorGrade),
			fmt.Sprint(p.TotalAttempts),
			Check(p.IsProject),
			Check(p.Completed),
			p.CreatedAt.Format("2006-01-02"),
		})
	}
	return RenderTable(headers, rows)
}
