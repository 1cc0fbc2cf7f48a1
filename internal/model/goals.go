package model

// GoalProgress is a value measured against a numeric target.
// Percent is clamped to [0, 100] for display; Remainder keeps the sign so
// callers can say "over by" when IsOver is set.
type GoalProgress struct {
	Current   float64 `json:"current"`
	Target    float64 `json:"target"`
	Percent   int     `json:"percent"`
	IsOver    bool    `json:"is_over"`
	Remainder float64 `json:"remainder"`
}

// HabitGoal configures one tracked habit. A Target of 0 or 1 makes the habit
// boolean (any completion qualifies the day); larger targets are counted.
type HabitGoal struct {
	Name   string  `toml:"name" json:"name"`
	Target float64 `toml:"target,omitempty" json:"target,omitempty"`
}

// Goals holds the user's configured targets. Zero means unset.
type Goals struct {
	WeeklyWorkouts     float64            `toml:"weekly_workouts,omitempty" json:"weekly_workouts,omitempty"`
	DailyCalories      float64            `toml:"daily_calories,omitempty" json:"daily_calories,omitempty"`
	DailyProteinG      float64            `toml:"daily_protein_g,omitempty" json:"daily_protein_g,omitempty"`
	MonthlyBudget      float64            `toml:"monthly_budget,omitempty" json:"monthly_budget,omitempty"`
	CategoryBudgets    map[string]float64 `toml:"category_budgets,omitempty" json:"category_budgets,omitempty"`
	SleepHours         float64            `toml:"sleep_hours,omitempty" json:"sleep_hours,omitempty"`
	WeeklyContacts     float64            `toml:"weekly_contacts,omitempty" json:"weekly_contacts,omitempty"`
	AnnualTravelBudget float64            `toml:"annual_travel_budget,omitempty" json:"annual_travel_budget,omitempty"`
	Habits             []HabitGoal        `toml:"habits,omitempty" json:"habits,omitempty"`
}

// HabitTarget returns the configured target for a habit, or 0 when the habit
// has no goal entry.
func (g Goals) HabitTarget(name string) float64 {
	for _, h := range g.Habits {
		if h.Name == name {
			return h.Target
		}
	}
	return 0
}
