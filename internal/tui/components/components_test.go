package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/pulse/internal/model"
	"github.com/theirongolddev/pulse/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRow(t *testing.T) {
	widths := LayoutRow(10, 3)
	if len(widths) != 3 || widths[0] != 4 || widths[1] != 3 || widths[2] != 3 {
		t.Fatalf("LayoutRow(10, 3) = %v, want [4 3 3]", widths)
	}
	if LayoutRow(10, 0) != nil {
		t.Fatal("LayoutRow(10, 0) should be nil")
	}
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := lipgloss.Height(shortCard)
	tallLines := lipgloss.Height(tallCard)
	if shortLines >= tallLines {
		t.Fatal("short card should be shorter than tall card")
	}

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	if len(lines) != tallLines {
		t.Fatalf("joined height = %d, want %d", len(lines), tallLines)
	}
	for i := shortLines; i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Errorf("line %d has no ANSI styling in the padded area", i)
		}
	}

	want := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != want {
			t.Errorf("line %d width = %d, want %d", i, w, want)
		}
	}
}

func TestCardRow_SkipsEmptyCards(t *testing.T) {
	card := ContentCard("Only", "x", 20)
	if got := CardRow([]string{"", card, ""}); got != card {
		t.Errorf("CardRow with empty cards = %q, want the single card", got)
	}
	if CardRow(nil) != "" {
		t.Error("CardRow(nil) should be empty")
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow([]Metric{
		{Label: "Tasks", Value: "4", Delta: "2 today"},
		{Label: "Spent", Value: "$120.00"},
		{Label: "Streak", Value: "5 days"},
	}, 90)
	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 90 {
			t.Errorf("line %d width = %d, want 90", i, w)
		}
	}
}

func TestGoalColor(t *testing.T) {
	th := theme.Active
	tests := []struct {
		name   string
		p      model.GoalProgress
		budget bool
		want   lipgloss.Color
	}{
		{"no target", model.GoalProgress{Current: 5}, false, th.TextDim},
		{"budget over", model.GoalProgress{Target: 80, Percent: 100, IsOver: true}, true, th.Red},
		{"budget close", model.GoalProgress{Target: 80, Percent: 95}, true, th.Orange},
		{"budget fine", model.GoalProgress{Target: 80, Percent: 10}, true, th.Green},
		{"goal met", model.GoalProgress{Target: 3, Percent: 100}, false, th.GreenBright},
		{"goal started", model.GoalProgress{Target: 3, Percent: 33}, false, th.Cyan},
	}
	for _, tt := range tests {
		if got := GoalColor(tt.p, tt.budget); got != tt.want {
			t.Errorf("%s: GoalColor = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestGoalBar(t *testing.T) {
	bar := GoalBar("Workouts", model.GoalProgress{Current: 2, Target: 4, Percent: 50, Remainder: 2}, false, "2 / 4", 10, 20)
	for _, want := range []string{"Workouts", "50%", "2 / 4"} {
		if !strings.Contains(bar, want) {
			t.Errorf("GoalBar missing %q: %q", want, bar)
		}
	}
}

func TestBarChart(t *testing.T) {
	buckets := []model.Bucket{
		{Label: "Mon", Count: 1},
		{Label: "Tue", Count: 4},
		{Label: "Wed", Count: 0},
	}
	out := BucketChart(buckets, BucketCount, theme.Active.Blue, 40, 6)
	if !strings.Contains(out, "Mon") || !strings.Contains(out, "Wed") {
		t.Errorf("chart labels missing:\n%s", out)
	}
	if !strings.Contains(out, "└") {
		t.Errorf("chart axis missing:\n%s", out)
	}

	if got := BarChart([]float64{1, 2}, nil, theme.Active.Blue, 5, 2); lipgloss.Width(got) != 2 {
		t.Errorf("narrow chart should fall back to a 2-wide sparkline, got %q", got)
	}
	if BarChart(nil, nil, theme.Active.Blue, 40, 6) != "" {
		t.Error("empty chart should render nothing")
	}
}

func TestChartTickStep(t *testing.T) {
	tests := []struct {
		max  float64
		want float64
	}{
		{0, 1},
		{10, 2},
		{40, 5},
		{2000, 500},
	}
	for _, tt := range tests {
		if got := chartTickStep(tt.max); got != tt.want {
			t.Errorf("chartTickStep(%v) = %v, want %v", tt.max, got, tt.want)
		}
	}
}

func TestTabs(t *testing.T) {
	if got := TabIdxByKey('m'); got != TabFinance {
		t.Errorf("TabIdxByKey('m') = %d, want %d", got, TabFinance)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
	if TabVisualWidth(Tabs[TabSettings], false) != len("Settings")+5 {
		t.Error("inactive Settings tab should carry its [x] hint")
	}
	if TabVisualWidth(Tabs[TabSettings], true) != len("Settings")+2 {
		t.Error("active Settings tab should not carry its hint")
	}
}

func TestRenderStatusBar(t *testing.T) {
	bar := RenderStatusBar(100, StatusInfo{Today: "2026-10-19", DataAge: "0.2s", ParseErrors: 3, AutoRefresh: true})
	for _, want := range []string{"2026-10-19", "3 bad lines", "auto", "0.2s"} {
		if !strings.Contains(bar, want) {
			t.Errorf("status bar missing %q: %q", want, bar)
		}
	}
	if w := lipgloss.Width(bar); w != 100 {
		t.Errorf("status bar width = %d, want 100", w)
	}
}
