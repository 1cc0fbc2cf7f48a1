package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/pulse/internal/cli"
	"github.com/theirongolddev/pulse/internal/model"
	"github.com/theirongolddev/pulse/internal/tui/components"
	"github.com/theirongolddev/pulse/internal/tui/theme"
)

// goalRow is one line of a goals card.
type goalRow struct {
	label   string
	p       model.GoalProgress
	budget  bool
	caption string
}

// renderGoals renders goal bars inside a card of the given outer width.
// Rows without a target are listed as unset instead of drawing empty bars.
func renderGoals(rows []goalRow, outerWidth int) string {
	t := theme.Active
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	labelW := 0
	for _, r := range rows {
		labelW = max(labelW, len(r.label))
	}
	innerW := components.CardInnerWidth(outerWidth)
	barW := max(innerW-labelW-28, 8)

	var b strings.Builder
	var unset []string
	for _, r := range rows {
		if r.p.Target <= 0 {
			unset = append(unset, r.label)
			continue
		}
		b.WriteString(components.GoalBar(r.label, r.p, r.budget, r.caption, labelW, barW))
		b.WriteString("\n")
	}
	if len(unset) > 0 {
		b.WriteString(dimStyle.Render(truncStr("No goal: "+strings.Join(unset, ", "), innerW)))
	}
	return b.String()
}

// countCaption formats "current / target" for count goals.
func countCaption(p model.GoalProgress) string {
	return cli.FormatCount(p.Current) + " / " + cli.FormatCount(p.Target)
}

func moneyCaption(p model.GoalProgress) string {
	return cli.FormatRemainder(p, cli.FormatAmount)
}

// sideBySide lays two cards out in one row, or stacked on narrow screens.
func (a App) sideBySide(cw int, render func(left, right int) (string, string)) string {
	if a.isCompactLayout() {
		l, r := render(cw, cw)
		var parts []string
		for _, c := range []string{l, r} {
			if c != "" {
				parts = append(parts, c)
			}
		}
		return strings.Join(parts, "\n")
	}
	halves := components.LayoutRow(cw, 2)
	l, r := render(halves[0], halves[1])
	return components.CardRow([]string{l, r})
}

func (a App) chartHeight() int {
	if a.isCompactLayout() {
		return 6
	}
	return 8
}

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	d := a.dash
	var b strings.Builder

	// Row 1: headline numbers
	mood := "-"
	if d.Wellness.Entries > 0 {
		mood = cli.FormatAverage(d.Wellness.AvgMood, true)
	}
	metrics := []components.Metric{
		{
			Label: "Tasks (7d)",
			Value: fmt.Sprintf("%d done", d.Tasks.Completed),
			Delta: fmt.Sprintf("%d open · %d today", d.Tasks.Open, d.Tasks.CompletedToday),
		},
		{
			Label: "Habits today",
			Value: fmt.Sprintf("%d / %d", d.Habits.CompletedToday, len(d.Habits.Habits)),
			Delta: "streak " + cli.FormatStreak(d.Habits.HabitsStreak),
		},
		{
			Label: "Workouts (7d)",
			Value: cli.FormatNumber(int64(d.Fitness.Workouts)),
			Delta: cli.FormatMinutes(d.Fitness.TotalMinutes) + " active",
		},
		{
			Label: "Spent (month)",
			Value: cli.FormatMoney(d.Finance.MonthExpenses),
			Delta: "net " + cli.FormatMoney(d.Finance.NetSavings),
		},
		{
			Label: "Mood (14d)",
			Value: mood,
			Delta: fmt.Sprintf("%d check-ins", d.Wellness.Entries),
		},
	}
	if a.isCompactLayout() {
		metrics = metrics[:4]
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	// Row 2: goals
	rows := []goalRow{
		{"Workouts this week", d.Fitness.WeeklyGoal, false, countCaption(d.Fitness.WeeklyGoal)},
		{"Calories today", d.Meals.CalorieGoal, true, countCaption(d.Meals.CalorieGoal)},
		{"Protein today", d.Meals.ProteinGoal, false, countCaption(d.Meals.ProteinGoal)},
		{"Contacts this week", d.Contacts.WeeklyGoal, false, countCaption(d.Contacts.WeeklyGoal)},
		{"Sleep average", d.Wellness.SleepGoal, false, cli.FormatAverage(d.Wellness.SleepGoal.Current, d.Wellness.Entries > 0) + "h"},
		{"Monthly budget", d.Finance.Budget, true, moneyCaption(d.Finance.Budget)},
		{"Travel budget", d.Travel.Budget, true, moneyCaption(d.Travel.Budget)},
	}
	b.WriteString(components.ContentCard("Goals", renderGoals(rows, cw), cw))
	b.WriteString("\n")

	// Row 3: task and contact activity
	chartH := a.chartHeight()
	b.WriteString(a.sideBySide(cw, func(lw, rw int) (string, string) {
		left := components.ContentCard(
			"Tasks completed (7d)",
			components.BucketChart(d.Tasks.Series, components.BucketSum, t.ModuleColor("tasks"), components.CardInnerWidth(lw), chartH),
			lw,
		)
		right := components.ContentCard(
			fmt.Sprintf("Contacts by week (%d people, 30d)", d.Contacts.PeopleReached),
			components.BucketChart(d.Contacts.Series, components.BucketCount, t.ModuleColor("contacts"), components.CardInnerWidth(rw), chartH),
			rw,
		)
		return left, right
	}))

	return b.String()
}
