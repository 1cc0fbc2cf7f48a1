package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/pulse/internal/cli"
	"github.com/theirongolddev/pulse/internal/tui/components"
	"github.com/theirongolddev/pulse/internal/tui/theme"
)

// renderFitnessTab shows workouts and nutrition side by side.
func (a App) renderFitnessTab(cw int) string {
	t := theme.Active
	f := a.dash.Fitness
	m := a.dash.Meals
	var b strings.Builder

	top := f.TopExercise
	if top == "" {
		top = "-"
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Workouts (7d)", Value: cli.FormatNumber(int64(f.Workouts)), Delta: "streak " + cli.FormatStreak(f.Streak)},
		{Label: "Active time", Value: cli.FormatMinutes(f.TotalMinutes), Delta: "avg " + cli.FormatMinutes(f.AvgDuration)},
		{Label: "Volume", Value: cli.FormatCount(f.TotalVolume), Delta: "top " + top},
		{Label: "Calories today", Value: cli.FormatCount(m.TodayCalories), Delta: cli.FormatCount(m.TodayProtein) + "g protein"},
	}, cw))
	b.WriteString("\n")

	b.WriteString(components.ContentCard("Targets", renderGoals([]goalRow{
		{"Workouts this week", f.WeeklyGoal, false, countCaption(f.WeeklyGoal)},
		{"Calories today", m.CalorieGoal, true, cli.FormatRemainder(m.CalorieGoal, cli.FormatCount)},
		{"Protein today", m.ProteinGoal, false, cli.FormatRemainder(m.ProteinGoal, cli.FormatCount)},
	}, cw), cw))
	b.WriteString("\n")

	chartH := a.chartHeight()
	b.WriteString(a.sideBySide(cw, func(lw, rw int) (string, string) {
		left := components.ContentCard(
			"Training volume (7d)",
			components.BucketChart(f.Series, components.BucketSum, t.ModuleColor("fitness"), components.CardInnerWidth(lw), chartH),
			lw,
		)
		right := components.ContentCard(
			fmt.Sprintf("Calories (7d) · %d meals this month, %s/day", m.MonthMeals, cli.FormatCount(m.AvgDailyCalories)),
			components.BucketChart(m.Series, components.BucketSum, t.ModuleColor("meals"), components.CardInnerWidth(rw), chartH),
			rw,
		)
		return left, right
	}))

	return b.String()
}
