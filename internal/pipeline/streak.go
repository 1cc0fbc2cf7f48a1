package pipeline

import (
	"github.com/theirongolddev/pulse/internal/calendar"
	"github.com/theirongolddev/pulse/internal/model"
)

// CurrentStreak counts consecutive qualifying days ending at today. When
// today has not qualified yet the walk starts at yesterday, so an
// unfinished day does not break a running streak.
func CurrentStreak(dates calendar.DateSet, today calendar.Date) int {
	d := today
	if !dates.Has(d) {
		d = d.AddDays(-1)
	}
	n := 0
	for dates.Has(d) {
		n++
		d = d.AddDays(-1)
	}
	return n
}

// LongestStreak returns the longest run of consecutive days in dates.
func LongestStreak(dates calendar.DateSet) int {
	best := 0
	for d := range dates {
		if dates.Has(d.AddDays(-1)) {
			continue // not the start of a run
		}
		n := 1
		for dates.Has(d.AddDays(n)) {
			n++
		}
		if n > best {
			best = n
		}
	}
	return best
}

// QualifyingDates returns the dates of records matching pred. A nil pred
// accepts every record.
func QualifyingDates(records []model.Record, pred func(model.Record) bool) calendar.DateSet {
	set := make(calendar.DateSet)
	for _, r := range records {
		if pred != nil && !pred(r) {
			continue
		}
		d, err := calendar.Parse(r.Date)
		if err != nil {
			continue
		}
		set.Add(d)
	}
	return set
}

// QualifyingTotals returns the dates whose accumulated value reaches target.
// Dates where no record reported the value never qualify.
func QualifyingTotals(records []model.Record, value ValueFunc, target float64) calendar.DateSet {
	totals := make(map[calendar.Date]float64)
	for _, r := range records {
		v, ok := value(r)
		if !ok {
			continue
		}
		d, err := calendar.Parse(r.Date)
		if err != nil {
			continue
		}
		totals[d] += v
	}

	set := make(calendar.DateSet, len(totals))
	for d, total := range totals {
		if total >= target {
			set.Add(d)
		}
	}
	return set
}

// UnionDates merges sets; a day qualifies if it qualifies in any of them.
func UnionDates(sets ...calendar.DateSet) calendar.DateSet {
	out := make(calendar.DateSet)
	for _, s := range sets {
		for d := range s {
			out.Add(d)
		}
	}
	return out
}
