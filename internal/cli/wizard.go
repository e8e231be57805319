package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/boulderlog/boulderlog/internal/cli/formatter"
	"github.com/boulderlog/boulderlog/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func boulderHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// scaleSelect offers the integers lo..hi as a select bound to value.
func scaleSelect(title string, lo, hi int, value *int) *huh.Select[int] {
	options := make([]huh.Option[int], 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		options = append(options, huh.NewOption(strconv.Itoa(i), i))
	}
	return huh.NewSelect[int]().Title(title).Options(options...).Value(value)
}

// preSessionFields holds form-bound values for the check-in questionnaire.
type preSessionFields struct {
	data  domain.PreSessionData
	goals string
}

// preSessionForm builds the check-in questionnaire shown before a session
// starts. Goals are entered comma separated.
func preSessionForm(f *preSessionFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			scaleSelect("Sleep quality", 1, 10, &f.data.SleepQuality),
			scaleSelect("Energy level", 1, 10, &f.data.EnergyLevel),
			scaleSelect("Finger soreness", 1, 10, &f.data.FingerSoreness),
			scaleSelect("Motivation", 1, 10, &f.data.Motivation),
		),
		huh.NewGroup(
			scaleSelect("Rest days since last session", 0, 7, &f.data.RestDays),
			huh.NewSelect[domain.Nutrition]().
				Title("Nutrition").
				Options(
					huh.NewOption("Poor", domain.NutritionPoor),
					huh.NewOption("Moderate", domain.NutritionModerate),
					huh.NewOption("Good", domain.NutritionGood),
				).
				Value(&f.data.Nutrition),
			huh.NewSelect[domain.StressLevel]().
				Title("Stress").
				Options(
					huh.NewOption("Low", domain.StressLow),
					huh.NewOption("Medium", domain.StressMedium),
					huh.NewOption("High", domain.StressHigh),
				).
				Value(&f.data.Stress),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Session goals").
				Description("Comma separated").
				Value(&f.goals),
			huh.NewText().
				Title("Additional notes").
				Value(&f.data.AdditionalNotes),
		),
	).WithTheme(boulderHuhTheme()).WithShowHelp(false)
}

// result folds the free-text goals into the questionnaire data.
func (f *preSessionFields) result() domain.PreSessionData {
	d := f.data
	d.Goals = splitGoals(f.goals)
	return d
}

func splitGoals(s string) []string {
	goals := []string{}
	for _, g := range strings.Split(s, ",") {
		if g = strings.TrimSpace(g); g != "" {
			goals = append(goals, g)
		}
	}
	return goals
}

// addProblemFields holds form-bound values for the add problem form.
type addProblemFields struct {
	name        string
	frenchGrade string
	colorGrade  string
}

func addProblemForm(f *addProblemFields) *huh.Form {
	french := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, g := range domain.FrenchGrades {
		french = append(french, huh.NewOption(g, g))
	}
	colors := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, cg := range domain.ColorGrades {
		colors = append(colors, huh.NewOption(fmt.Sprintf("%s (%s)", cg.Name, cg.Range), cg.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Problem name").
				Value(&f.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().Title("French grade").Options(french...).Value(&f.frenchGrade),
			huh.NewSelect[string]().Title("Gym color").Options(colors...).Value(&f.colorGrade).
				Validate(func(s string) error {
					return domain.ValidateGrades(f.frenchGrade, s)
				}),
		),
	).WithTheme(boulderHuhTheme()).WithShowHelp(false)
}
