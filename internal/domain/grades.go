package domain

import "strings"

// FrenchGrades lists the supported French bouldering grades, easiest first.
var FrenchGrades = []string{
	"3", "3+", "4", "4+", "5", "5+",
	"6a", "6a+", "6b", "6b+", "6c", "6c+",
	"7a", "7a+", "7b", "7b+", "7c", "7c+",
	"8a", "8a+", "8b", "8b+",
}

// ColorGrade is a gym-specific difficulty label.
type ColorGrade struct {
	Name  string
	Color string // hex
	Range string // approximate French range
}

// ColorGrades lists the gym's colour circuits, easiest first.
var ColorGrades = []ColorGrade{
	{Name: "Aloittelija", Color: "#FFFF00", Range: "3-4+"},
	{Name: "Helppo", Color: "#00FF00", Range: "4+-5"},
	{Name: "Leppoisa", Color: "#0000FF", Range: "5+-6a"},
	{Name: "Napakka", Color: "#FF69B4", Range: "6a+-6b+"},
	{Name: "Haastava", Color: "#FF0000", Range: "6c-7a"},
	{Name: "Vaikea", Color: "#800080", Range: "7a+-7b"},
	{Name: "Erittäin Vaikea", Color: "#000000", Range: "7b+->"},
}

// FrenchGradeRank returns the position of g on the French scale, or -1.
func FrenchGradeRank(g string) int {
	for i, fg := range FrenchGrades {
		if fg == g {
			return i
		}
	}
	return -1
}

// LookupColorGrade finds a colour grade by name, ignoring case.
func LookupColorGrade(name string) (ColorGrade, bool) {
	for _, cg := range ColorGrades {
		if strings.EqualFold(cg.Name, name) {
			return cg, true
		}
	}
	return ColorGrade{}, false
}

// ValidateGrades requires at least one grading system and rejects unknown
// values. Empty strings mean "not graded in that system".
func ValidateGrades(frenchGrade, colorGrade string) error {
	if frenchGrade == "" && colorGrade == "" {
		return validationError("a problem needs a french grade or a color grade")
	}
	if frenchGrade != "" && FrenchGradeRank(frenchGrade) < 0 {
		return validationError("unknown french grade %q", frenchGrade)
	}
	if colorGrade != "" {
		if _, ok := LookupColorGrade(colorGrade); !ok {
			return validationError("unknown color grade %q", colorGrade)
		}
	}
	return nil
}
