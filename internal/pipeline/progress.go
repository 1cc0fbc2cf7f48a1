package pipeline

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/pulse/internal/model"
)

// Progress measures current against target. Percent rounds half up and is
// clamped to [0, 100]; a target of zero or less reports 0 percent. IsOver is
// strict and Remainder is negative once the target is exceeded.
func Progress(current, target float64) model.GoalProgress {
	p := model.GoalProgress{
		Current:   current,
		Target:    target,
		IsOver:    current > target,
		Remainder: target - current,
	}
	if target > 0 {
		p.Percent = percentOf(current, target)
	}
	return p
}

var hundred = decimal.NewFromInt(100)

// percentOf rounds current*100/target half up, computed in decimal.
func percentOf(current, target float64) int {
	switch {
	case math.IsNaN(current) || current <= 0 || math.IsInf(target, 1):
		return 0
	case current >= target:
		return 100
	}
	pct := decimal.NewFromFloat(current).Mul(hundred).Div(decimal.NewFromFloat(target)).Round(0)
	return clampPercent(pct.InexactFloat64())
}

// Percent is Progress(part, whole).Percent.
func Percent(part, whole float64) int {
	return Progress(part, whole).Percent
}

func clampPercent(v float64) int {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 100:
		return 100
	}
	return int(v)
}

// RoundMoney rounds v to cents, half away from zero.
func RoundMoney(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// SumMoney adds the reported values in decimal and rounds the result once.
func SumMoney(records []model.Record, value ValueFunc) (decimal.Decimal, int) {
	sum := decimal.Zero
	n := 0
	for _, r := range records {
		v, ok := value(r)
		if !ok {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(v))
		n++
	}
	return sum.Round(2), n
}

// Money converts a float total that was already rounded to cents.
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
