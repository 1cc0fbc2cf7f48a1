// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/pulse/internal/model"
)

// FormatCount formats a quantity with human-readable suffixes.
// e.g., 950 -> "950", 1234 -> "1.2K", 1234567 -> "1.2M"
func FormatCount(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case abs >= 10_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	case v == math.Trunc(v):
		return FormatNumber(int64(v))
	default:
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
}

// FormatMoney formats an amount with thousands separators and cents.
// e.g., 1234.5 -> "$1,234.50", -20 -> "-$20.00"
func FormatMoney(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole := d.Truncate(0)
	cents := d.Sub(whole).Shift(2).IntPart()
	return fmt.Sprintf("%s$%s.%02d", sign, FormatNumber(whole.IntPart()), cents)
}

// FormatAmount is FormatMoney for float amounts already rounded to cents.
func FormatAmount(v float64) string {
	return FormatMoney(decimal.NewFromFloat(v))
}

// FormatMinutes formats minutes into a human-readable duration.
// e.g., 125 -> "2h 5m", 45 -> "45m", 0 -> "0m"
func FormatMinutes(mins float64) string {
	if mins <= 0 {
		return "0m"
	}
	total := int64(math.Round(mins))
	hours := total / 60
	rest := total % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, rest)
	}
	return fmt.Sprintf("%dm", rest)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats an integer percentage.
func FormatPercent(p int) string {
	return strconv.Itoa(p) + "%"
}

// FormatAverage formats an average to one decimal place, "-" when nothing
// was measured.
func FormatAverage(v float64, measured bool) string {
	if !measured {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// FormatStreak formats a day count.
func FormatStreak(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// FormatRemainder describes how far a goal is from its target, using format
// for the amounts.
func FormatRemainder(p model.GoalProgress, format func(float64) string) string {
	switch {
	case p.Target <= 0:
		return "no goal set"
	case p.IsOver:
		return "over by " + format(-p.Remainder)
	case p.Remainder == 0:
		return "on target"
	}
	return format(p.Remainder) + " left"
}
