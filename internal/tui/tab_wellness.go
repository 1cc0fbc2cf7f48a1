package tui

import (
	"strings"

	"github.com/theirongolddev/pulse/internal/cli"
	"github.com/theirongolddev/pulse/internal/tui/components"
	"github.com/theirongolddev/pulse/internal/tui/theme"
)

func (a App) renderWellnessTab(cw int) string {
	t := theme.Active
	w := a.dash.Wellness
	measured := w.Entries > 0
	var b strings.Builder

	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Check-ins (14d)", Value: cli.FormatNumber(int64(w.Entries))},
		{Label: "Mood", Value: cli.FormatAverage(w.AvgMood, measured)},
		{Label: "Sleep", Value: cli.FormatAverage(w.AvgSleep, measured) + "h"},
		{Label: "Energy", Value: cli.FormatAverage(w.AvgEnergy, measured)},
		{Label: "Journal streak", Value: cli.FormatStreak(w.JournalStreak)},
	}, cw))
	b.WriteString("\n")

	b.WriteString(components.ContentCard("Sleep", renderGoals([]goalRow{
		{"Average vs goal", w.SleepGoal, false, cli.FormatRemainder(w.SleepGoal, func(v float64) string {
			return cli.FormatAverage(v, true) + "h"
		})},
	}, cw), cw))
	b.WriteString("\n")

	b.WriteString(components.ContentCard(
		"Mood (14d)",
		components.BucketChart(w.Series, components.BucketAverage, t.ModuleColor("wellness"), components.CardInnerWidth(cw), a.chartHeight()+2),
		cw,
	))
	return b.String()
}
