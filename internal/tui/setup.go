package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/pulse/internal/config"
	"github.com/theirongolddev/pulse/internal/model"
	"github.com/theirongolddev/pulse/internal/tui/theme"
)

// setupValues holds the first-run form answers. Numeric goals stay strings
// while the form is open so empty input can mean "unset".
type setupValues struct {
	dataDir        string
	theme          string
	weeklyWorkouts string
	dailyCalories  string
	monthlyBudget  string
	sleepHours     string
	habits         string // comma separated
}

func formatGoal(v float64) string {
	if v <= 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseGoal reads an optional non-negative number. Empty means unset.
func parseGoal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("enter a positive number or leave empty")
	}
	return v, nil
}

func validateGoal(s string) error {
	_, err := parseGoal(s)
	return err
}

// newSetupForm builds the first-run wizard, prefilled from goals.
func newSetupForm(recordCount int, dataDir string, goals model.Goals, vals *setupValues) *huh.Form {
	*vals = setupValues{
		dataDir:        dataDir,
		theme:          theme.Active.Name,
		weeklyWorkouts: formatGoal(goals.WeeklyWorkouts),
		dailyCalories:  formatGoal(goals.DailyCalories),
		monthlyBudget:  formatGoal(goals.MonthlyBudget),
		sleepHours:     formatGoal(goals.SleepHours),
		habits:         config.FormatHabits(goals.Habits),
	}

	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, t := range theme.All {
		themeOpts[i] = huh.NewOption(t.Name, t.Name)
	}

	welcome := fmt.Sprintf("Found %d records in %s.\nSet a few goals now; every value can be changed later in Settings.",
		recordCount, dataDir)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to pulse").
				Description(welcome),
			huh.NewInput().
				Title("Data directory").
				Description("Where the export service writes records").
				Value(&vals.dataDir),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.theme),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Workouts per week").
				Value(&vals.weeklyWorkouts).
				Validate(validateGoal),
			huh.NewInput().
				Title("Daily calories").
				Value(&vals.dailyCalories).
				Validate(validateGoal),
			huh.NewInput().
				Title("Sleep hours per night").
				Value(&vals.sleepHours).
				Validate(validateGoal),
			huh.NewInput().
				Title("Monthly budget").
				Description("Leave empty to skip budget tracking").
				Value(&vals.monthlyBudget).
				Validate(validateGoal),
			huh.NewInput().
				Title("Habits").
				Description("Comma separated, name:target for counted habits (water:8)").
				Value(&vals.habits),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(false)
}

// applySetup merges the form answers into cfg. Validation already ran in
// the form, so parse failures leave the existing value.
func applySetup(cfg *config.Config, vals setupValues) {
	if dir := strings.TrimSpace(vals.dataDir); dir != "" {
		cfg.General.DataDir = dir
	}
	if theme.Valid(vals.theme) {
		cfg.Appearance.Theme = vals.theme
	}
	set := func(dst *float64, s string) {
		if v, err := parseGoal(s); err == nil {
			*dst = v
		}
	}
	set(&cfg.Goals.WeeklyWorkouts, vals.weeklyWorkouts)
	set(&cfg.Goals.DailyCalories, vals.dailyCalories)
	set(&cfg.Goals.SleepHours, vals.sleepHours)
	set(&cfg.Goals.MonthlyBudget, vals.monthlyBudget)
	cfg.Goals.Habits = config.ParseHabits(vals.habits)
}

func (a *App) saveSetupConfig() error {
	cfg := loadConfigOrDefault()
	if a.setupVals != nil {
		applySetup(&cfg, *a.setupVals)
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)
	a.goals = cfg.Goals
	return nil
}
