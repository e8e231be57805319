package domain

// PreSessionData is the check-in questionnaire filled in before climbing.
type PreSessionData struct {
	SleepQuality    int         `json:"sleepQuality"`
	EnergyLevel     int         `json:"energyLevel"`
	FingerSoreness  int         `json:"fingerSoreness"`
	Motivation      int         `json:"motivation"`
	RestDays        int         `json:"restDays"`
	Nutrition       Nutrition   `json:"nutrition"`
	Stress          StressLevel `json:"stress"`
	Goals           []string    `json:"goals"`
	AdditionalNotes string      `json:"additionalNotes"`
}

// DefaultPreSessionData returns the questionnaire's starting values.
func DefaultPreSessionData() PreSessionData {
	return PreSessionData{
		SleepQuality:   5,
		EnergyLevel:    5,
		FingerSoreness: 5,
		Motivation:     5,
		RestDays:       1,
		Nutrition:      NutritionModerate,
		Stress:         StressMedium,
		Goals:          []string{},
	}
}

func (d PreSessionData) Validate() error {
	ratings := []struct {
		name  string
		value int
	}{
		{"sleep quality", d.SleepQuality},
		{"energy level", d.EnergyLevel},
		{"finger soreness", d.FingerSoreness},
		{"motivation", d.Motivation},
	}
	for _, r := range ratings {
		if r.value < 1 || r.value > 10 {
			return validationError("%s must be between 1 and 10, got %d", r.name, r.value)
		}
	}
	if d.RestDays < 0 || d.RestDays > 7 {
		return validationError("rest days must be between 0 and 7, got %d", d.RestDays)
	}
	switch d.Nutrition {
	case NutritionPoor, NutritionModerate, NutritionGood:
	default:
		return validationError("nutrition %q must be poor, moderate or good", d.Nutrition)
	}
	switch d.Stress {
	case StressLow, StressMedium, StressHigh:
	default:
		return validationError("stress %q must be low, medium or high", d.Stress)
	}
	return nil
}
