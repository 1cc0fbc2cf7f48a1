// Package tui provides the interactive Bubble Tea dashboard for pulse.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/pulse/internal/calendar"
	"github.com/theirongolddev/pulse/internal/cli"
	"github.com/theirongolddev/pulse/internal/config"
	"github.com/theirongolddev/pulse/internal/logging"
	"github.com/theirongolddev/pulse/internal/model"
	"github.com/theirongolddev/pulse/internal/pipeline"
	"github.com/theirongolddev/pulse/internal/store"
	"github.com/theirongolddev/pulse/internal/tui/components"
	"github.com/theirongolddev/pulse/internal/tui/theme"
)

// Options configures where the dashboard reads records from.
type Options struct {
	DataDir  string
	Location *time.Location
	Today    string // pins the reference date when set, YYYY-MM-DD
	UseCache bool
}

// DataLoadedMsg is sent when the initial load finishes.
type DataLoadedMsg struct {
	Records     []model.Record
	ParseErrors int
	LoadTime    time.Duration
	Err         error
}

// ProgressMsg reports file parsing progress.
type ProgressMsg struct {
	Current int
	Total   int
}

// RefreshDataMsg is sent when a background data refresh completes.
type RefreshDataMsg struct {
	Records     []model.Record
	ParseErrors int
	LoadTime    time.Duration
	Err         error
}

// App is the root Bubble Tea model.
type App struct {
	opts Options

	// Data
	records     []model.Record
	parseErrors int
	loaded      bool
	loadTime    time.Duration
	loadErr     error

	// Composed state for the current reference date
	goals model.Goals
	now   calendar.Date
	dash  model.Dashboard

	// Auto-refresh state
	autoRefresh     bool
	refreshInterval time.Duration
	lastRefresh     time.Time
	refreshing      bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	habits   habitsState
	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues // shared with the form across App copies
	needSetup bool

	// Loading, channel-based progress subscription
	spinner     spinner.Model
	progress    int
	progressMax int
	loadSub     chan tea.Msg // progress + completion messages from loader goroutine
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5

	minRefreshInterval = 10 * time.Second
)

// loadConfigOrDefault loads config, returning defaults on error so the
// dashboard can always start even if the file is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		logging.For(logging.ComponentTUI).Warn("config unreadable, using defaults", logging.Err(err))
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	cfg := loadConfigOrDefault()
	theme.SetActive(cfg.Appearance.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		opts:            opts,
		goals:           cfg.Goals,
		needSetup:       !config.Exists(),
		autoRefresh:     cfg.TUI.AutoRefresh,
		refreshInterval: refreshInterval(cfg.TUI.RefreshIntervalSec),
		spinner:         sp,
		loadSub:         make(chan tea.Msg, 1),
	}
}

func refreshInterval(sec int) time.Duration {
	d := time.Duration(sec) * time.Second
	if d < minRefreshInterval {
		return 60 * time.Second
	}
	return d
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.opts, a.loadSub),
		a.spinner.Tick,
		tickCmd(),
	)
}

// today resolves the reference date. A pinned date that fails to parse
// falls back to the wall clock; the command validates it before we start.
func (a App) today() calendar.Date {
	if a.opts.Today != "" {
		if d, err := calendar.Parse(a.opts.Today); err == nil {
			return d
		}
	}
	return calendar.FromTime(time.Now().In(a.opts.Location))
}

func (a *App) recompute() {
	a.now = a.today()
	a.dash = pipeline.ComposeDashboard(a.records, a.goals, a.now)
	a.dash.GeneratedAt = time.Now()

	if n := len(a.dash.Habits.Habits); a.habits.cursor >= n {
		a.habits.cursor = max(n-1, 0)
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		return a.updateMouse(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)

	case DataLoadedMsg:
		a.records = msg.Records
		a.parseErrors = msg.ParseErrors
		a.loadErr = msg.Err
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.lastRefresh = time.Now()
		a.recompute()

		if a.needSetup {
			a.setupVals = &setupValues{}
			a.setupForm = newSetupForm(len(a.records), a.opts.DataDir, a.goals, a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case ProgressMsg:
		a.progress = msg.Current
		a.progressMax = msg.Total
		return a, waitForLoadMsg(a.loadSub)

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if !a.loaded {
			return a, tea.Batch(cmds...)
		}

		// Roll over to the new day even when nothing on disk changed.
		if a.today() != a.now {
			a.recompute()
		}
		if a.autoRefresh && !a.refreshing && time.Since(a.lastRefresh) >= a.refreshInterval {
			a.refreshing = true
			cmds = append(cmds, refreshDataCmd(a.opts))
		}
		return a, tea.Batch(cmds...)

	case RefreshDataMsg:
		a.refreshing = false
		a.lastRefresh = time.Now()
		a.loadErr = msg.Err
		if msg.Err == nil {
			a.records = msg.Records
			a.parseErrors = msg.ParseErrors
			a.loadTime = msg.LoadTime
			a.recompute()
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
		return a, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == components.TabHabits {
			a.habits.move(-1, len(a.dash.Habits.Habits))
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == components.TabHabits {
			a.habits.move(1, len(a.dash.Habits.Habits))
		}
	case tea.MouseButtonLeft:
		if msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}

	// First-run setup wizard intercepts all keys
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// Settings tab has its own keybindings (text input)
	if a.activeTab == components.TabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch a.activeTab {
	case components.TabHabits:
		n := len(a.dash.Habits.Habits)
		switch key {
		case "j", "down":
			a.habits.move(1, n)
			return a, nil
		case "k", "up":
			a.habits.move(-1, n)
			return a, nil
		case "g":
			a.habits.cursor = 0
			return a, nil
		case "G":
			a.habits.cursor = max(n-1, 0)
			return a, nil
		}
	case components.TabSettings:
		switch key {
		case "j", "down":
			a.settings.cursor = min(a.settings.cursor+1, settingsFieldCount-1)
			return a, nil
		case "k", "up":
			a.settings.cursor = max(a.settings.cursor-1, 0)
			return a, nil
		case "enter":
			return a.settingsStartEdit()
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		if !a.refreshing {
			a.refreshing = true
			return a, refreshDataCmd(a.opts)
		}
		return a, nil
	case "R":
		a.autoRefresh = !a.autoRefresh
		cfg := loadConfigOrDefault()
		cfg.TUI.AutoRefresh = a.autoRefresh
		if err := config.Save(cfg); err != nil {
			logging.For(logging.ComponentTUI).Warn("saving auto-refresh", logging.Err(err))
		}
		return a, nil
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if runes := []rune(key); len(runes) == 1 {
		if idx := components.TabIdxByKey(runes[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		if err := a.saveSetupConfig(); err != nil {
			logging.For(logging.ComponentTUI).Warn("saving setup", logging.Err(err))
		}
		a.recompute()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	switch {
	case a.width == 0:
		return ""
	case a.width < minTerminalWidth:
		return a.viewTooNarrow()
	case !a.loaded:
		return a.viewLoading()
	case a.needSetup && a.setupForm != nil:
		return a.setupForm.View()
	case a.showHelp:
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  pulse needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spinnerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	countStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ pulse"))
	b.WriteString(subtitleStyle.Render(" · Personal Dashboard"))
	b.WriteString("\n\n")

	if a.progressMax > 0 {
		barW := max(min(40, a.width-30), 20)
		pct := float64(a.progress) / float64(a.progressMax)
		b.WriteString(spinnerStyle.Render(a.spinner.View()))
		b.WriteString(subtitleStyle.Render(" Reading exports\n\n"))
		b.WriteString(components.ProgressBar(pct, barW))
		b.WriteString("\n")
		b.WriteString(countStyle.Render(cli.FormatNumber(int64(a.progress))))
		b.WriteString(subtitleStyle.Render(" / "))
		b.WriteString(countStyle.Render(cli.FormatNumber(int64(a.progressMax))))
		b.WriteString(subtitleStyle.Render(" files"))
	} else {
		b.WriteString(spinnerStyle.Render(a.spinner.View()))
		b.WriteString(subtitleStyle.Render(" Looking for records..."))
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	section := func(b *strings.Builder, title string, binds [][2]string) {
		b.WriteString(sectionStyle.Render(title))
		b.WriteString("\n")
		for _, bind := range binds {
			fmt.Fprintf(b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind[0])),
				descStyle.Render(bind[1]))
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	section(&b, "Navigation", [][2]string{
		{"o h f m w x", "Jump to tab"},
		{"← → tab", "Previous / Next tab"},
		{"j k g G", "Move through habits / settings"},
	})
	b.WriteString("\n")
	section(&b, "Actions", [][2]string{
		{"Enter", "Edit setting"},
		{"Esc", "Cancel edit"},
		{"r", "Refresh data"},
		{"R", "Toggle auto-refresh"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	})
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + date pill
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pillAccent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	pill := pillStyle.Render(" ") +
		pillAccent.Render(a.now.Format("Mon Jan 2, 2006")) +
		pillStyle.Render(" │ "+a.opts.Location.String()+" │ ") +
		pillAccent.Render(cli.FormatNumber(int64(len(a.records)))) +
		pillStyle.Render(" records ")
	if a.loadErr != nil {
		pill += lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Render("│ " + a.loadErr.Error())
	}
	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(pill)

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, components.StatusInfo{
		Today:       a.now.String(),
		DataAge:     fmt.Sprintf("%.1fs", a.loadTime.Seconds()),
		ParseErrors: a.parseErrors,
		Refreshing:  a.refreshing,
		AutoRefresh: a.autoRefresh,
	})

	// 3. Content zone height
	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	// 4. Tab content
	var content string
	switch a.activeTab {
	case components.TabOverview:
		content = a.renderOverviewTab(cw)
	case components.TabHabits:
		content = a.renderHabitsTab(cw, contentH)
	case components.TabFitness:
		content = a.renderFitnessTab(cw)
	case components.TabFinance:
		content = a.renderFinanceTab(cw)
	case components.TabWellness:
		content = a.renderWellnessTab(cw)
	case components.TabSettings:
		content = a.renderSettingsTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines, filled with background
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Loading ────────────────────────────────────────────────────

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// loadRecords reads the export directory through the parse cache, falling
// back to a full parse when the cache cannot be used.
func loadRecords(opts Options, progressFn pipeline.ProgressFunc) ([]model.Record, int, error) {
	log := logging.For(logging.ComponentTUI)
	if opts.UseCache {
		cache, err := store.Open(pipeline.CachePath())
		if err == nil {
			cr, loadErr := pipeline.LoadWithCache(opts.DataDir, opts.Location, cache, progressFn)
			_ = cache.Close()
			if loadErr == nil {
				return cr.Records, cr.ParseErrors, nil
			}
			err = loadErr
		}
		log.Warn("cache unavailable, parsing without it", logging.Err(err))
	}

	result, err := pipeline.Load(opts.DataDir, opts.Location, progressFn)
	if err != nil {
		return nil, 0, err
	}
	return result.Records, result.ParseErrors, nil
}

// loadDataCmd starts the loader in a background goroutine. It streams
// ProgressMsg updates and a final DataLoadedMsg through sub.
func loadDataCmd(opts Options, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			start := time.Now()

			// Non-blocking send so workers aren't stalled; a dropped update
			// is replaced by the next one.
			progressFn := func(current, total int) {
				select {
				case sub <- ProgressMsg{Current: current, Total: total}:
				default:
				}
			}

			records, parseErrors, err := loadRecords(opts, progressFn)
			sub <- DataLoadedMsg{
				Records:     records,
				ParseErrors: parseErrors,
				LoadTime:    time.Since(start),
				Err:         err,
			}
		}()

		// Block until the first message (either ProgressMsg or DataLoadedMsg)
		return <-sub
	}
}

// waitForLoadMsg blocks until the next message arrives from the loader goroutine.
func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

// refreshDataCmd reloads records in the background without progress UI.
func refreshDataCmd(opts Options) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		records, parseErrors, err := loadRecords(opts, nil)
		return RefreshDataMsg{
			Records:     records,
			ParseErrors: parseErrors,
			LoadTime:    time.Since(start),
			Err:         err,
		}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the widths RenderTabBar draws, with a one-column
// separator between tabs.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1
	}
	return -1
}
