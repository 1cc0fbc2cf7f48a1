package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/pulse/internal/tui/theme"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tab indexes.
const (
	TabOverview = iota
	TabHabits
	TabFitness
	TabFinance
	TabWellness
	TabSettings
)

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Habits", Key: 'h', KeyPos: 0},
	{Name: "Fitness", Key: 'f', KeyPos: 0},
	{Name: "Money", Key: 'm', KeyPos: 0},
	{Name: "Wellness", Key: 'w', KeyPos: 0},
	{Name: "Settings", Key: 'x', KeyPos: -1}, // x is not in "Settings"
}

// TabVisualWidth returns the rendered width of a tab, padding included.
// Inactive tabs whose key is not part of the name get a "[k]" suffix.
func TabVisualWidth(tab Tab, active bool) int {
	w := lipgloss.Width(tab.Name) + 2
	if !active && tab.KeyPos < 0 {
		w += 3
	}
	return w
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Accent).
		Bold(true).
		Padding(0, 1)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)
	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)
	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)
	pad := inactiveStyle.Render(" ")

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		switch {
		case i == activeIdx:
			parts[i] = activeStyle.Render(tab.Name)
		case tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name):
			parts[i] = pad +
				inactiveStyle.Render(tab.Name[:tab.KeyPos]) +
				keyStyle.Render(tab.Name[tab.KeyPos:tab.KeyPos+1]) +
				inactiveStyle.Render(tab.Name[tab.KeyPos+1:]) +
				pad
		default:
			parts[i] = pad + inactiveStyle.Render(tab.Name) +
				dimStyle.Render("[") + keyStyle.Render(string(tab.Key)) + dimStyle.Render("]") +
				pad
		}
	}

	row := strings.Join(parts, dimStyle.Render("│"))
	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(row)
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
