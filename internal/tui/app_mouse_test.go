package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/pulse/internal/tui/components"
)

func TestTabAtXMatchesTabWidths(t *testing.T) {
	n := len(components.Tabs)
	for active := 0; active < n; active++ {
		a := App{activeTab: active}
		pos := 0

		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			x := pos + w/2 // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w + 1 // separator
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Fatalf("active=%d x past last tab -> %d, want -1", active, got)
		}
	}
}

func TestMouseClickSelectsTab(t *testing.T) {
	a := loadedApp(t)
	x := components.TabVisualWidth(components.Tabs[0], true) + 2 // inside Habits

	m, _ := a.Update(tea.MouseMsg{X: x, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if got := m.(App).activeTab; got != components.TabHabits {
		t.Fatalf("activeTab = %d, want %d", got, components.TabHabits)
	}
}

func TestMouseWheelMovesHabitCursor(t *testing.T) {
	a := loadedApp(t)
	a.activeTab = components.TabHabits

	m, _ := a.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	a = m.(App)
	if a.habits.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", a.habits.cursor)
	}
	for range 5 {
		m, _ = a.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown})
		a = m.(App)
	}
	if a.habits.cursor != len(a.dash.Habits.Habits)-1 {
		t.Fatalf("cursor = %d, want clamp at %d", a.habits.cursor, len(a.dash.Habits.Habits)-1)
	}
}
