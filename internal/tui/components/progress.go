package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/pulse/internal/model"
	"github.com/theirongolddev/pulse/internal/tui/theme"
)

// ProgressBar renders the file-loading bar with a percentage.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	filled := max(0, min(int(pct*float64(width)), width))

	var barColor lipgloss.Color
	switch {
	case pct >= 0.8:
		barColor = t.AccentBright
	case pct >= 0.5:
		barColor = t.Accent
	default:
		barColor = t.Cyan
	}

	filledStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// GoalColor picks a bar color for goal progress. budget flips the scale:
// for spending goals approaching the target is a warning, for everything
// else it is good news.
func GoalColor(p model.GoalProgress, budget bool) lipgloss.Color {
	t := theme.Active
	if p.Target <= 0 {
		return t.TextDim
	}
	if budget {
		switch {
		case p.IsOver:
			return t.Red
		case p.Percent >= 90:
			return t.Orange
		case p.Percent >= 70:
			return t.Yellow
		}
		return t.Green
	}
	switch {
	case p.Percent >= 100:
		return t.GreenBright
	case p.Percent >= 50:
		return t.Accent
	}
	return t.Cyan
}

// GoalBar renders a labeled goal bar: label, bar, percent, then the caption
// (for example "3 / 4" or "$20.00 left").
func GoalBar(label string, p model.GoalProgress, budget bool, caption string, labelW, barWidth int) string {
	t := theme.Active
	color := GoalColor(p, budget)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(barWidth, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	captionStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(float64(p.Percent)/100) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3d%%", p.Percent)) +
		spaceStyle.Render("  ") +
		captionStyle.Render(caption)
}
