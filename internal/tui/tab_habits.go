package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/pulse/internal/cli"
	"github.com/theirongolddev/pulse/internal/model"
	"github.com/theirongolddev/pulse/internal/pipeline"
	"github.com/theirongolddev/pulse/internal/tui/components"
	"github.com/theirongolddev/pulse/internal/tui/theme"
)

const habitHistoryDays = 14

// habitsState tracks the habit list selection.
type habitsState struct {
	cursor int
}

func (s *habitsState) move(delta, n int) {
	if n == 0 {
		s.cursor = 0
		return
	}
	s.cursor = max(0, min(s.cursor+delta, n-1))
}

func (a App) renderHabitsTab(cw, h int) string {
	t := theme.Active
	st := a.dash.Habits

	if len(st.Habits) == 0 {
		mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return components.ContentCard("Habits",
			mutedStyle.Render("No habits logged yet. Add some under [goals.habits] or run pulse setup."), cw)
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Done today", Value: fmt.Sprintf("%d / %d", st.CompletedToday, len(st.Habits)), Delta: cli.FormatPercent(st.TodayRate)},
		{Label: "Any-habit streak", Value: cli.FormatStreak(st.HabitsStreak)},
		{Label: "Check-ins (7d)", Value: cli.FormatNumber(int64(seriesCount(st.Series)))},
	}, cw))
	b.WriteString("\n")

	listH := max(h-lipgloss.Height(b.String())-1, 6)

	if a.isCompactLayout() {
		b.WriteString(a.renderHabitList(cw, listH/2))
		b.WriteString("\n")
		b.WriteString(a.renderHabitDetail(cw))
		return b.String()
	}

	widths := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		a.renderHabitList(widths[0], listH),
		a.renderHabitDetail(widths[1]),
	}))
	return b.String()
}

func seriesCount(series []model.Bucket) int {
	n := 0
	for _, b := range series {
		n += b.Count
	}
	return n
}

// renderHabitList draws the scrollable habit list with today's status.
func (a App) renderHabitList(w, h int) string {
	t := theme.Active
	habits := a.dash.Habits.Habits
	innerW := components.CardInnerWidth(w)

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	doneStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	todoStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	streakStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	visible := max(h-3, 1)
	offset := 0
	if a.habits.cursor >= visible {
		offset = a.habits.cursor - visible + 1
	}
	end := min(offset+visible, len(habits))

	nameW := max(innerW-7, 8)
	var body strings.Builder
	for i := offset; i < end; i++ {
		hs := habits[i]
		mark := todoStyle.Render("○ ")
		if hs.TodayProgress.Percent >= 100 {
			mark = doneStyle.Render("● ")
		}
		name := fmt.Sprintf("%-*s", nameW, truncStr(hs.Name, nameW))
		streak := fmt.Sprintf(" %3dd", hs.Streak)

		if i == a.habits.cursor {
			line := mark + selStyle.Render(name) + selStyle.Render(streak)
			if pad := innerW - lipgloss.Width(line); pad > 0 {
				line += selStyle.Render(strings.Repeat(" ", pad))
			}
			body.WriteString(line)
		} else {
			body.WriteString(mark + rowStyle.Render(name) + streakStyle.Render(streak))
		}
		if i < end-1 {
			body.WriteString("\n")
		}
	}

	title := fmt.Sprintf("Habits [%d/%d]", a.habits.cursor+1, len(habits))
	return components.ContentCard(title, body.String(), w)
}

// renderHabitDetail shows the selected habit's streaks and recent history.
func (a App) renderHabitDetail(w int) string {
	t := theme.Active
	habits := a.dash.Habits.Habits
	if a.habits.cursor >= len(habits) {
		return ""
	}
	hs := habits[a.habits.cursor]

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var body strings.Builder
	body.WriteString(renderGoals([]goalRow{
		{"Today", hs.TodayProgress, false, countCaption(hs.TodayProgress)},
	}, w))
	body.WriteString(labelStyle.Render("Current streak: ") + valueStyle.Render(cli.FormatStreak(hs.Streak)) + "\n")
	body.WriteString(labelStyle.Render("Longest streak: ") + valueStyle.Render(cli.FormatStreak(hs.LongestStreak)) + "\n")
	body.WriteString(labelStyle.Render("Last 7 days:    ") + valueStyle.Render(cli.FormatPercent(hs.CompletionRate)) + "\n\n")

	series := pipeline.HabitSeries(a.records, hs.Name, habitHistoryDays, a.now)
	body.WriteString(components.BucketChart(series, components.BucketSum, t.ModuleColor("habits"),
		components.CardInnerWidth(w), a.chartHeight()))

	return components.ContentCard(hs.Name, body.String(), w)
}
