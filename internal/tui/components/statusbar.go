package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/pulse/internal/tui/theme"
)

// StatusInfo is what the bottom bar reports.
type StatusInfo struct {
	Today       string
	DataAge     string
	ParseErrors int
	Refreshing  bool
	AutoRefresh bool
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, info StatusInfo) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)
	warn := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	left := " [?]help  [r]efresh  [q]uit"

	var right []string
	if info.ParseErrors > 0 {
		right = append(right, warn.Render(plural(info.ParseErrors, "bad line")))
	}
	switch {
	case info.Refreshing:
		right = append(right, "refreshing…")
	case info.AutoRefresh:
		right = append(right, "auto")
	}
	if info.Today != "" {
		right = append(right, info.Today)
	}
	if info.DataAge != "" {
		right = append(right, "loaded in "+info.DataAge)
	}
	rightStr := strings.Join(right, " │ ") + " "

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(rightStr), 0)
	return style.Render(left + strings.Repeat(" ", padding) + rightStr)
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
