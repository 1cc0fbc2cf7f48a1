package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/pulse/internal/model"
	"github.com/theirongolddev/pulse/internal/tui/theme"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		buf.WriteRune(sparkBlocks[max(0, min(idx, len(sparkBlocks)-1))])
	}

	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// SeriesValue picks the plotted number from a bucket.
type SeriesValue func(model.Bucket) float64

// Series value pickers.
var (
	BucketCount   SeriesValue = func(b model.Bucket) float64 { return float64(b.Count) }
	BucketSum     SeriesValue = func(b model.Bucket) float64 { return b.Sum }
	BucketAverage SeriesValue = func(b model.Bucket) float64 { return b.Average }
)

// BucketChart renders a bar chart of a bucket series, labelled with the
// bucket labels.
func BucketChart(buckets []model.Bucket, value SeriesValue, color lipgloss.Color, width, height int) string {
	values := make([]float64, len(buckets))
	labels := make([]string, len(buckets))
	for i, b := range buckets {
		values[i] = value(b)
		labels[i] = b.Label
	}
	return BarChart(values, labels, color, width, height)
}

// BarChart renders a bar chart with a y axis. Too-small areas fall back to
// a sparkline.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}

	t := theme.Active

	maxVal := 0.0
	for _, v := range values {
		maxVal = math.Max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	tickStep := chartTickStep(maxVal)
	maxIntervals := max(height/2, 2)
	for int(math.Ceil(maxVal/tickStep)) > maxIntervals {
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := max(int(math.Round(ceiling/tickStep)), 1)
	rowsPerTick := max(height/numIntervals, 2)
	chartH := rowsPerTick * numIntervals

	yLabelW := max(len(formatChartLabel(ceiling))+1, 4)
	tickLabels := make(map[int]string, numIntervals)
	for i := 1; i <= numIntervals; i++ {
		tickLabels[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}

	n := len(values)
	chartW := max(width-yLabelW-1, 5)
	gap := 1
	if n == 1 {
		gap = 0
	}
	barW := max((chartW-(n-1)*gap)/n, 1)
	barW = min(barW, 6)
	axisLen := n*barW + (n-1)*gap

	partial := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", yLabelW, tickLabels[row])))
		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(blank.Render(strings.Repeat(" ", gap)))
			}
			switch {
			case v >= rowTop:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > rowBottom:
				idx := int((v - rowBottom) / (rowTop - rowBottom) * 8)
				idx = max(1, min(idx, 8))
				b.WriteString(barStyle.Render(strings.Repeat(string(partial[idx]), barW)))
			default:
				b.WriteString(blank.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└%s", yLabelW, "0", strings.Repeat("─", axisLen))))

	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(axisStyle.Render(axisLabels(labels, barW, gap, axisLen)))
	}

	return b.String()
}

// axisLabels places as many labels under their bars as fit without
// overlapping. The last label is always shown when there is room.
func axisLabels(labels []string, barW, gap, axisLen int) string {
	buf := []rune(strings.Repeat(" ", axisLen))
	lastEnd := -1
	place := func(i int) {
		lbl := []rune(labels[i])
		pos := i * (barW + gap)
		if pos+len(lbl) > axisLen {
			pos = axisLen - len(lbl)
		}
		if pos <= lastEnd || pos < 0 {
			return
		}
		copy(buf[pos:], lbl)
		lastEnd = pos + len(lbl)
	}

	n := len(labels)
	step := 1
	if width := maxLabelWidth(labels) + 1; barW+gap < width {
		step = (width + barW + gap - 1) / (barW + gap)
	}
	for i := 0; i < n-1; i += step {
		place(i)
	}
	place(n - 1)
	return strings.TrimRight(string(buf), " ")
}

func maxLabelWidth(labels []string) int {
	w := 0
	for _, l := range labels {
		w = max(w, len([]rune(l)))
	}
	return w
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	switch frac := rough / base; {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	scaled := func(div float64, suffix string) string {
		if v == math.Trunc(v/div)*div {
			return fmt.Sprintf("%.0f%s", v/div, suffix)
		}
		return fmt.Sprintf("%.1f%s", v/div, suffix)
	}
	switch {
	case v >= 1e6:
		return scaled(1e6, "M")
	case v >= 1e3:
		return scaled(1e3, "k")
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
