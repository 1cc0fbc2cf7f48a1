package pipeline

import (
	"fmt"

	"github.com/theirongolddev/pulse/internal/calendar"
	"github.com/theirongolddev/pulse/internal/model"
)

// Unit is the width of one bucket.
type Unit int

const (
	UnitDay Unit = iota
	UnitWeek
	UnitMonth
)

func (u Unit) String() string {
	switch u {
	case UnitDay:
		return "day"
	case UnitWeek:
		return "week"
	case UnitMonth:
		return "month"
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// ParseUnit parses "day", "week" or "month".
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "day", "days", "d":
		return UnitDay, nil
	case "week", "weeks", "w":
		return UnitWeek, nil
	case "month", "months", "m":
		return UnitMonth, nil
	}
	return 0, fmt.Errorf("unknown bucket unit %q (want day, week or month)", s)
}

// MaxBuckets bounds Window.Count for callers that take it from user input.
const MaxBuckets = 1000

// Window describes Count contiguous buckets of one Unit ending at the
// reference date's unit.
type Window struct {
	Count int
	Unit  Unit
}

// ValueFunc extracts the measure a bucket sums. ok=false means the record
// did not carry the measure: it still counts toward Bucket.Count but adds
// nothing to Sum and is left out of the average.
type ValueFunc func(r model.Record) (v float64, ok bool)

// CountOf reports 1 for every record.
func CountOf(model.Record) (float64, bool) { return 1, true }

// Field reads the named measure from Record.Values.
func Field(name string) ValueFunc {
	return func(r model.Record) (float64, bool) {
		return r.Value(name)
	}
}

// Where restricts value to records matching pred.
func Where(pred func(model.Record) bool, value ValueFunc) ValueFunc {
	return func(r model.Record) (float64, bool) {
		if !pred(r) {
			return 0, false
		}
		return value(r)
	}
}

// Bucket partitions records into w.Count calendar buckets. The last bucket
// holds now's day, ISO week or month; buckets with no records are kept so
// charts always have w.Count columns. Results are oldest first.
func Bucket(records []model.Record, w Window, now calendar.Date, value ValueFunc) []model.Bucket {
	if w.Count <= 0 {
		return []model.Bucket{}
	}
	if value == nil {
		value = CountOf
	}

	first, last := WindowRange(w, now)

	counts := make([]int, w.Count)
	measured := make([]int, w.Count)
	sums := make([]float64, w.Count)

	for _, r := range records {
		d, err := calendar.Parse(r.Date)
		if err != nil || d < first || d > last {
			continue
		}
		i := bucketIndex(w.Unit, first, d)
		counts[i]++
		if v, ok := value(r); ok {
			measured[i]++
			sums[i] += v
		}
	}

	spansYears := first.Year() != now.Year()
	buckets := make([]model.Bucket, w.Count)
	start := first
	for i := range buckets {
		end := unitEnd(w.Unit, start)
		b := model.Bucket{
			Label:    bucketLabel(w, start, spansYears),
			Start:    start.String(),
			End:      end.String(),
			Count:    counts[i],
			Measured: measured[i],
			Sum:      sums[i],
		}
		if b.Measured > 0 {
			b.Average = b.Sum / float64(b.Measured)
		}
		buckets[i] = b
		start = end.AddDays(1)
	}
	return buckets
}

// WindowRange returns the first and last date covered by w anchored at now.
func WindowRange(w Window, now calendar.Date) (calendar.Date, calendar.Date) {
	return windowStart(w, now), unitEnd(w.Unit, unitStart(w.Unit, now))
}

func unitStart(u Unit, d calendar.Date) calendar.Date {
	switch u {
	case UnitWeek:
		return d.StartOfWeek()
	case UnitMonth:
		return d.StartOfMonth()
	}
	return d
}

func unitEnd(u Unit, start calendar.Date) calendar.Date {
	switch u {
	case UnitWeek:
		return start.AddDays(6)
	case UnitMonth:
		return start.EndOfMonth()
	}
	return start
}

func windowStart(w Window, now calendar.Date) calendar.Date {
	back := w.Count - 1
	switch w.Unit {
	case UnitWeek:
		return now.StartOfWeek().AddDays(-7 * back)
	case UnitMonth:
		return now.AddMonths(-back)
	}
	return now.AddDays(-back)
}

// bucketIndex maps d to its bucket in constant time. first is aligned to the
// unit and d is known to be inside the window.
func bucketIndex(u Unit, first, d calendar.Date) int {
	switch u {
	case UnitWeek:
		return int(d-first) / 7
	case UnitMonth:
		return calendar.MonthsBetween(first, d)
	}
	return int(d - first)
}

func bucketLabel(w Window, start calendar.Date, spansYears bool) string {
	switch w.Unit {
	case UnitDay:
		if w.Count <= 7 {
			return start.Format("Mon")
		}
		return start.Format("Jan 2")
	case UnitWeek:
		return start.Format("Jan 2")
	case UnitMonth:
		if spansYears {
			return start.Format("Jan 06")
		}
		return start.Format("Jan")
	}
	return start.String()
}
