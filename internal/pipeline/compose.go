package pipeline

import (
	"fmt"

	"github.com/theirongolddev/pulse/internal/calendar"
	"github.com/theirongolddev/pulse/internal/model"
)

// PeriodKind selects how a stats period is anchored to the reference date.
type PeriodKind int

const (
	// Rolling covers the last Days days ending at the reference date.
	Rolling PeriodKind = iota
	// CalendarWeek covers the ISO week containing the reference date.
	CalendarWeek
	// CalendarMonth covers the whole calendar month (28-31 days).
	CalendarMonth
	// CalendarYear covers January 1st to December 31st.
	CalendarYear
)

func (k PeriodKind) String() string {
	switch k {
	case Rolling:
		return "rolling"
	case CalendarWeek:
		return "week"
	case CalendarMonth:
		return "month"
	case CalendarYear:
		return "year"
	}
	return fmt.Sprintf("PeriodKind(%d)", int(k))
}

// Period is a stats period policy. Days is only used by Rolling.
type Period struct {
	Kind PeriodKind
	Days int
}

// Range returns the inclusive date range of the period around now.
// Calendar periods run to their natural end, so records dated later in the
// current month or year are inside the period.
func (p Period) Range(now calendar.Date) (calendar.Date, calendar.Date) {
	switch p.Kind {
	case CalendarWeek:
		start := now.StartOfWeek()
		return start, start.AddDays(6)
	case CalendarMonth:
		return now.StartOfMonth(), now.EndOfMonth()
	case CalendarYear:
		start := now.StartOfYear()
		return start, start.AddMonths(12).AddDays(-1)
	}
	days := p.Days
	if days < 1 {
		days = 1
	}
	return now.AddDays(-(days - 1)), now
}

// LastDays is a rolling period of n days.
func LastDays(n int) Period { return Period{Kind: Rolling, Days: n} }

// Measure is a named value summed over the period. Money measures are
// accumulated in decimal and rounded to cents once.
type Measure struct {
	Name  string
	Value ValueFunc
	Money bool
}

// Split repeats the totals for the records matching a discriminant.
type Split struct {
	Name  string
	Match func(model.Record) bool
}

// Goal measures one total against a target. Measure names a Measure; empty
// means the record count. Split restricts the records to a Split by name.
// A nil Period uses the stats period. With Average set the measure's
// average is compared instead of its sum.
type Goal struct {
	Name    string
	Measure string
	Split   string
	Target  float64
	Period  *Period
	Average bool
}

// Chart requests a bucket series over all of the module's records.
// Measure names a Measure; empty means the record count.
type Chart struct {
	Window  Window
	Measure string
}

// StreakRule builds the qualifying date set from all of the module's
// records, not only those in the period.
type StreakRule struct {
	Qualify func(records []model.Record) calendar.DateSet
}

// StatsConfig declares the period, measures, splits, goals, chart and streak
// one module reports.
type StatsConfig struct {
	Module   model.Module
	Period   Period
	Measures []Measure
	Splits   []Split
	Goals    []Goal
	Chart    *Chart
	Streak   *StreakRule
}

// Compose derives the generic stats object for one module at now.
// Missing measures add nothing to sums and are left out of averages; an
// empty period yields zero totals.
func Compose(records []model.Record, cfg StatsConfig, now calendar.Date) model.Stats {
	mine := FilterByModule(records, cfg.Module)
	start, end := cfg.Period.Range(now)
	inPeriod := FilterByRange(mine, start, end)

	stats := model.Stats{
		Module:      cfg.Module,
		PeriodStart: start.String(),
		PeriodEnd:   end.String(),
		Records:     len(inPeriod),
		Totals:      totals(inPeriod, cfg.Measures),
	}

	splitRecords := make(map[string][]model.Record, len(cfg.Splits))
	if len(cfg.Splits) > 0 {
		stats.Splits = make(map[string]model.SplitTotals, len(cfg.Splits))
		for _, s := range cfg.Splits {
			matched := filter(inPeriod, s.Match)
			splitRecords[s.Name] = matched
			stats.Splits[s.Name] = model.SplitTotals{
				Records: len(matched),
				Totals:  totals(matched, cfg.Measures),
			}
		}
	}

	if len(cfg.Goals) > 0 {
		stats.Goals = make(map[string]model.GoalProgress, len(cfg.Goals))
		for _, g := range cfg.Goals {
			recs := inPeriod
			if g.Period != nil {
				gs, ge := g.Period.Range(now)
				recs = FilterByRange(mine, gs, ge)
			}
			if g.Split != "" {
				recs = filter(recs, splitMatcher(cfg.Splits, g.Split))
			}
			stats.Goals[g.Name] = Progress(goalCurrent(recs, cfg.Measures, g), g.Target)
		}
	}

	if cfg.Chart != nil {
		value := CountOf
		if m, ok := findMeasure(cfg.Measures, cfg.Chart.Measure); ok {
			value = m.Value
		}
		stats.Series = Bucket(mine, cfg.Chart.Window, now, value)
		if m, ok := findMeasure(cfg.Measures, cfg.Chart.Measure); ok && m.Money {
			for i := range stats.Series {
				stats.Series[i].Sum = RoundMoney(stats.Series[i].Sum)
				stats.Series[i].Average = RoundMoney(stats.Series[i].Average)
			}
		}
	}

	if cfg.Streak != nil && cfg.Streak.Qualify != nil {
		dates := cfg.Streak.Qualify(mine)
		stats.Streak = CurrentStreak(dates, now)
		stats.LongestStreak = LongestStreak(dates)
	}

	return stats
}

func totals(records []model.Record, measures []Measure) map[string]model.Total {
	out := make(map[string]model.Total, len(measures))
	for _, m := range measures {
		out[m.Name] = total(records, m)
	}
	return out
}

func total(records []model.Record, m Measure) model.Total {
	var t model.Total
	if m.Money {
		sum, n := SumMoney(records, m.Value)
		t.Sum, _ = sum.Float64()
		t.Count = n
		if n > 0 {
			t.Average = RoundMoney(t.Sum / float64(n))
		}
		return t
	}
	for _, r := range records {
		if v, ok := m.Value(r); ok {
			t.Sum += v
			t.Count++
		}
	}
	if t.Count > 0 {
		t.Average = t.Sum / float64(t.Count)
	}
	return t
}

func goalCurrent(records []model.Record, measures []Measure, g Goal) float64 {
	m, ok := findMeasure(measures, g.Measure)
	if !ok {
		return float64(len(records))
	}
	t := total(records, m)
	if g.Average {
		return t.Average
	}
	return t.Sum
}

func findMeasure(measures []Measure, name string) (Measure, bool) {
	if name == "" {
		return Measure{}, false
	}
	for _, m := range measures {
		if m.Name == name {
			return m, true
		}
	}
	return Measure{}, false
}

func splitMatcher(splits []Split, name string) func(model.Record) bool {
	for _, s := range splits {
		if s.Name == name {
			return s.Match
		}
	}
	return func(model.Record) bool { return false }
}

func filter(records []model.Record, pred func(model.Record) bool) []model.Record {
	if pred == nil {
		return records
	}
	var result []model.Record
	for _, r := range records {
		if pred(r) {
			result = append(result, r)
		}
	}
	return result
}
