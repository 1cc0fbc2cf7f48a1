package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/pulse/internal/cli"
	"github.com/theirongolddev/pulse/internal/config"
	"github.com/theirongolddev/pulse/internal/model"
	"github.com/theirongolddev/pulse/internal/tui/components"
	"github.com/theirongolddev/pulse/internal/tui/theme"
)

const (
	settingsFieldTheme = iota
	settingsFieldDays
	settingsFieldWorkouts
	settingsFieldCalories
	settingsFieldProtein
	settingsFieldBudget
	settingsFieldSleep
	settingsFieldContacts
	settingsFieldAutoRefresh
	settingsFieldRefreshInterval
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

// goalField maps a settings row onto the goal it edits.
func goalField(g *model.Goals, field int) *float64 {
	switch field {
	case settingsFieldWorkouts:
		return &g.WeeklyWorkouts
	case settingsFieldCalories:
		return &g.DailyCalories
	case settingsFieldProtein:
		return &g.DailyProteinG
	case settingsFieldBudget:
		return &g.MonthlyBudget
	case settingsFieldSleep:
		return &g.SleepHours
	case settingsFieldContacts:
		return &g.WeeklyContacts
	}
	return nil
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	cfg := loadConfigOrDefault()
	a.settings.editing = true
	a.settings.saved = false

	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40

	switch a.settings.cursor {
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(cfg.Appearance.Theme)
	case settingsFieldDays:
		ti.Placeholder = "30"
		ti.SetValue(strconv.Itoa(cfg.General.DefaultDays))
	case settingsFieldAutoRefresh:
		ti.Placeholder = "true or false"
		ti.SetValue(strconv.FormatBool(a.autoRefresh))
	case settingsFieldRefreshInterval:
		ti.Placeholder = "60 (seconds, minimum 10)"
		ti.SetValue(strconv.Itoa(int(a.refreshInterval.Seconds())))
	default:
		ti.Placeholder = "leave empty to clear"
		if p := goalField(&cfg.Goals, a.settings.cursor); p != nil {
			ti.SetValue(formatGoal(*p))
		}
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave applies the edited value. Invalid input is reported through
// saveErr and leaves the config untouched.
func (a *App) settingsSave() {
	cfg := loadConfigOrDefault()
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldTheme:
		if !theme.Valid(val) {
			a.settings.saveErr = fmt.Errorf("unknown theme %q", val)
			return
		}
		cfg.Appearance.Theme = val
		theme.SetActive(val)
	case settingsFieldDays:
		d, err := strconv.Atoi(val)
		if err != nil || d < 1 {
			a.settings.saveErr = fmt.Errorf("days must be a positive whole number")
			return
		}
		cfg.General.DefaultDays = d
	case settingsFieldAutoRefresh:
		on, err := strconv.ParseBool(val)
		if err != nil {
			a.settings.saveErr = fmt.Errorf("auto refresh must be true or false")
			return
		}
		cfg.TUI.AutoRefresh = on
		a.autoRefresh = on
	case settingsFieldRefreshInterval:
		sec, err := strconv.Atoi(val)
		if err != nil || time.Duration(sec)*time.Second < minRefreshInterval {
			a.settings.saveErr = fmt.Errorf("interval must be at least %d seconds", int(minRefreshInterval.Seconds()))
			return
		}
		cfg.TUI.RefreshIntervalSec = sec
		a.refreshInterval = time.Duration(sec) * time.Second
	default:
		v, err := parseGoal(val)
		if err != nil {
			a.settings.saveErr = err
			return
		}
		if p := goalField(&cfg.Goals, a.settings.cursor); p != nil {
			*p = v
		}
		a.goals = cfg.Goals
		a.recompute()
	}

	a.settings.saveErr = config.Save(cfg)
}

func goalDisplay(v float64, format func(float64) string) string {
	if v <= 0 {
		return "(not set)"
	}
	return format(v)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := loadConfigOrDefault()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	plain := func(v float64) string { return cli.FormatCount(v) }
	g := a.goals

	fields := []struct {
		label string
		value string
	}{
		{"Theme", cfg.Appearance.Theme},
		{"Default Days", strconv.Itoa(cfg.General.DefaultDays)},
		{"Workouts / week", goalDisplay(g.WeeklyWorkouts, plain)},
		{"Calories / day", goalDisplay(g.DailyCalories, plain)},
		{"Protein g / day", goalDisplay(g.DailyProteinG, plain)},
		{"Monthly Budget", goalDisplay(g.MonthlyBudget, cli.FormatAmount)},
		{"Sleep hours", goalDisplay(g.SleepHours, plain)},
		{"Contacts / week", goalDisplay(g.WeeklyContacts, plain)},
		{"Auto Refresh", strconv.FormatBool(a.autoRefresh)},
		{"Refresh Interval", fmt.Sprintf("%ds", int(a.refreshInterval.Seconds()))},
	}

	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker + label + value)
			used := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			if pad := components.CardInnerWidth(cw) - used; pad > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Data directory:  ") + valueStyle.Render(a.opts.DataDir) + "\n")
	infoBody.WriteString(labelStyle.Render("Records loaded:  ") + valueStyle.Render(cli.FormatNumber(int64(len(a.records)))) + "\n")
	infoBody.WriteString(labelStyle.Render("Load time:       ") + valueStyle.Render(fmt.Sprintf("%.1fs", a.loadTime.Seconds())) + "\n")
	infoBody.WriteString(labelStyle.Render("Config file:     ") + valueStyle.Render(config.ConfigPath()))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))
	return b.String()
}
