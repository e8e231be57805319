package cli

import (
	"fmt"
	"strings"

	"github.com/boulderlog/boulderlog/internal/domain"
	"github.com/spf13/pflag"
)

// choiceFlag is a pflag.Value restricted to a fixed set of string values.
type choiceFlag[T ~string] struct {
	value   *T
	choices []T
	name    string
}

var (
	_ pflag.Value = (*choiceFlag[domain.AttemptType])(nil)
	_ pflag.Value = (*choiceFlag[domain.Nutrition])(nil)
)

func newChoiceFlag[T ~string](value *T, name string, choices ...T) *choiceFlag[T] {
	return &choiceFlag[T]{value: value, choices: choices, name: name}
}

func (f *choiceFlag[T]) String() string {
	if f.value == nil {
		return ""
	}
	return string(*f.value)
}

func (f *choiceFlag[T]) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range f.choices {
		if string(c) == s {
			*f.value = c
			return nil
		}
	}
	names := make([]string, len(f.choices))
	for i, c := range f.choices {
		names[i] = string(c)
	}
	return fmt.Errorf("must be one of %s", strings.Join(names, ", "))
}

func (f *choiceFlag[T]) Type() string {
	return f.name
}

func attemptTypeFlag(value *domain.AttemptType) *choiceFlag[domain.AttemptType] {
	return newChoiceFlag(value, "type", domain.AttemptTypeAttempt, domain.AttemptTypeFlash, domain.AttemptTypeSend)
}

func nutritionFlag(value *domain.Nutrition) *choiceFlag[domain.Nutrition] {
	return newChoiceFlag(value, "nutrition", domain.NutritionPoor, domain.NutritionModerate, domain.NutritionGood)
}

func stressFlag(value *domain.StressLevel) *choiceFlag[domain.StressLevel] {
	return newChoiceFlag(value, "stress", domain.StressLow, domain.StressMedium, domain.StressHigh)
}

// bindPreSessionFlags registers the questionnaire fields on fs, defaulting to
// DefaultPreSessionData.
func bindPreSessionFlags(fs *pflag.FlagSet, d *domain.PreSessionData) {
	fs.IntVar(&d.SleepQuality, "sleep", d.SleepQuality, "Sleep quality (1-10)")
	fs.IntVar(&d.EnergyLevel, "energy", d.EnergyLevel, "Energy level (1-10)")
	fs.IntVar(&d.FingerSoreness, "fingers", d.FingerSoreness, "Finger soreness (1-10)")
	fs.IntVar(&d.Motivation, "motivation", d.Motivation, "Motivation (1-10)")
	fs.IntVar(&d.RestDays, "rest-days", d.RestDays, "Rest days since the last session (0-7)")
	fs.Var(nutritionFlag(&d.Nutrition), "nutrition", "Nutrition: poor, moderate or good")
	fs.Var(stressFlag(&d.Stress), "stress", "Stress: low, medium or high")
	fs.StringSliceVar(&d.Goals, "goal", d.Goals, "Session goal (repeatable)")
	fs.StringVar(&d.AdditionalNotes, "notes", "", "Additional notes")
}
