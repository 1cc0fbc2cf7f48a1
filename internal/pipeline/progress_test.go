package pipeline

import (
	"math"
	"testing"

	"github.com/theirongolddev/pulse/internal/model"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		current, target float64
		want            model.GoalProgress
	}{
		{50, 100, model.GoalProgress{Current: 50, Target: 100, Percent: 50, Remainder: 50}},
		{100, 80, model.GoalProgress{Current: 100, Target: 80, Percent: 100, IsOver: true, Remainder: -20}},
		{80, 80, model.GoalProgress{Current: 80, Target: 80, Percent: 100, Remainder: 0}},
		{1, 8, model.GoalProgress{Current: 1, Target: 8, Percent: 13, Remainder: 7}}, // 12.5 rounds up
		{1, 3, model.GoalProgress{Current: 1, Target: 3, Percent: 33, Remainder: 2}},
		{29, 200, model.GoalProgress{Current: 29, Target: 200, Percent: 15, Remainder: 171}}, // 14.5 exactly
		{199, 200, model.GoalProgress{Current: 199, Target: 200, Percent: 100, Remainder: 1}}, // 99.5
		{0, 0, model.GoalProgress{}},
		{5, 0, model.GoalProgress{Current: 5, Percent: 0, IsOver: true, Remainder: -5}},
		{-5, 10, model.GoalProgress{Current: -5, Target: 10, Percent: 0, Remainder: 15}},
	}
	for _, tt := range tests {
		if got := Progress(tt.current, tt.target); got != tt.want {
			t.Errorf("Progress(%v, %v) = %+v, want %+v", tt.current, tt.target, got, tt.want)
		}
	}
}

func TestProgress_ClampedForAnyInput(t *testing.T) {
	for _, current := range []float64{0, 0.001, 1, 99.4, 1e6, 1e300, math.MaxFloat64, math.Inf(1), math.Inf(-1), math.NaN()} {
		for _, target := range []float64{0, 1e-9, 0.5, 1, 1000, math.Inf(1)} {
			p := Progress(current, target)
			if p.Percent < 0 || p.Percent > 100 {
				t.Errorf("Progress(%v, %v).Percent = %d", current, target, p.Percent)
			}
		}
	}
}

func TestRoundMoney_HalfAwayFromZero(t *testing.T) {
	tests := map[float64]float64{
		2.675:  2.68,
		-2.675: -2.68,
		0.125:  0.13,
		1.004:  1,
		10:     10,
	}
	for in, want := range tests {
		if got := RoundMoney(in); got != want {
			t.Errorf("RoundMoney(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestSumMoney_NoFloatDrift(t *testing.T) {
	var records []model.Record
	for i := 0; i < 10; i++ {
		records = append(records, model.Record{Values: map[string]float64{"amount": 0.1}})
	}
	records = append(records, model.Record{})

	sum, n := SumMoney(records, Field("amount"))
	if n != 10 {
		t.Errorf("n = %d, want 10", n)
	}
	if sum.String() != "1" {
		t.Errorf("sum = %s, want 1", sum)
	}
}
