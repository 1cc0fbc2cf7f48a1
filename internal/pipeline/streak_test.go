package pipeline

import (
	"testing"

	"github.com/theirongolddev/pulse/internal/calendar"
	"github.com/theirongolddev/pulse/internal/model"
)

// daysBack builds a set holding today minus each offset.
func daysBack(today calendar.Date, offsets ...int) calendar.DateSet {
	s := make(calendar.DateSet)
	for _, o := range offsets {
		s.Add(today.AddDays(-o))
	}
	return s
}

func TestCurrentStreak(t *testing.T) {
	today := calendar.MustParse("2026-10-19")

	tests := []struct {
		name    string
		offsets []int
		want    int
	}{
		{"empty", nil, 0},
		{"today only", []int{0}, 1},
		{"five days ending today", []int{0, 1, 2, 3, 4, 6}, 5},
		{"gap at day three", []int{0, 1, 2, 4, 5}, 3},
		{"starts yesterday when today is missing", []int{1, 2, 3}, 3},
		{"two days ago does not count", []int{2, 3, 4}, 0},
		{"future dates are ignored", []int{-1, -2}, 0},
		{"long run is not capped", seq(400), 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentStreak(daysBack(today, tt.offsets...), today); got != tt.want {
				t.Errorf("CurrentStreak = %d, want %d", got, tt.want)
			}
		})
	}
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestCurrentStreak_SubsetNeverLonger(t *testing.T) {
	today := calendar.MustParse("2026-10-19")
	full := daysBack(today, 0, 1, 2, 3, 5, 6, 7)
	fullStreak := CurrentStreak(full, today)

	for d := range full {
		subset := make(calendar.DateSet)
		for o := range full {
			if o != d {
				subset.Add(o)
			}
		}
		if got := CurrentStreak(subset, today); got > fullStreak {
			t.Errorf("removing %s raised streak to %d (full %d)", d, got, fullStreak)
		}
	}
}

func TestLongestStreak(t *testing.T) {
	today := calendar.MustParse("2026-10-19")

	if got := LongestStreak(nil); got != 0 {
		t.Errorf("LongestStreak(nil) = %d, want 0", got)
	}
	set := daysBack(today, 0, 1, 10, 11, 12, 13, 20)
	if got := LongestStreak(set); got != 4 {
		t.Errorf("LongestStreak = %d, want 4", got)
	}
}

func TestQualifyingTotals(t *testing.T) {
	records := []model.Record{
		rec(model.ModuleHabits, "2026-10-19", "", "water", map[string]float64{"value": 5}),
		rec(model.ModuleHabits, "2026-10-19", "", "water", map[string]float64{"value": 3}),
		rec(model.ModuleHabits, "2026-10-18", "", "water", map[string]float64{"value": 7}),
		rec(model.ModuleHabits, "2026-10-17", "", "water", nil),
	}

	set := QualifyingTotals(records, Field("value"), 8)
	if !set.Has(calendar.MustParse("2026-10-19")) {
		t.Error("2026-10-19 totals 8 and should qualify")
	}
	if set.Has(calendar.MustParse("2026-10-18")) || set.Has(calendar.MustParse("2026-10-17")) {
		t.Errorf("set = %v, want only 2026-10-19", set)
	}
}

func TestQualifyingDatesAndUnion(t *testing.T) {
	records := []model.Record{
		rec(model.ModuleTasks, "2026-10-19", "done", "", nil),
		rec(model.ModuleTasks, "2026-10-18", "open", "", nil),
		rec(model.ModuleTasks, "garbage", "done", "", nil),
	}
	done := QualifyingDates(records, IsKind("done"))
	if done.Len() != 1 {
		t.Fatalf("done dates = %d, want 1", done.Len())
	}

	all := UnionDates(done, QualifyingDates(records, nil), nil)
	if all.Len() != 2 {
		t.Errorf("union = %d dates, want 2", all.Len())
	}
}
