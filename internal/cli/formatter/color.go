package formatter

import (
	"fmt"
	"strings"

	"github.com/boulderlog/boulderlog/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// ColorSwatch renders a colour grade name preceded by a block in the
// circuit's hold colour. Unknown names render dimmed.
func ColorSwatch(name string) string {
	if name == "" {
		return StyleDim.Render("--")
	}
	cg, ok := domain.LookupColorGrade(name)
	if !ok {
		return StyleDim.Render(name)
	}
	block := lipgloss.NewStyle().Foreground(lipgloss.Color(cg.Color)).Render("■")
	return block + " " + cg.Name
}

// ProblemStatusPill returns a colored indicator for a problem's completion state.
func ProblemStatusPill(status domain.ProblemStatus) string {
	switch status {
	case domain.ProblemFlashed:
		return StyleYellow.Render("⚡ Flashed")
	case domain.ProblemSent:
		return StyleGreen.Render("✔ Sent")
	case domain.ProblemInProgress:
		return StyleBlue.Render("● Working")
	default:
		return StyleDim.Render("○ New")
	}
}

// ProjectStatusPill returns a colored indicator for project status.
func ProjectStatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ Completed")
	case domain.ProjectAbandoned:
		return StyleDim.Render("✖ Abandoned")
	default:
		return StyleDim.Render(string(status))
	}
}

// SessionStatePill marks a session as active or ended.
func SessionStatePill(active bool) string {
	if active {
		return StyleGreen.Render("● Active")
	}
	return StyleDim.Render("✔ Ended")
}
