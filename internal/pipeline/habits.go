package pipeline

import (
	"github.com/theirongolddev/pulse/internal/calendar"
	"github.com/theirongolddev/pulse/internal/model"
)

// habitValue is the logged count of a completion, 1 when not recorded.
func habitValue(r model.Record) (float64, bool) {
	if v, ok := r.Value(model.ValueCount); ok {
		return v, true
	}
	return 1, true
}

// habitQualifier returns the streak rule for a habit. Targets of 1 or less
// make the habit boolean: any completion qualifies the day. Larger targets
// need the day's total to reach the target.
func habitQualifier(target float64) func([]model.Record) calendar.DateSet {
	if target <= 1 {
		return anyRecord
	}
	return func(records []model.Record) calendar.DateSet {
		return QualifyingTotals(records, habitValue, target)
	}
}

// HabitNames returns the configured habits in config order followed by any
// other habit seen in records, sorted.
func HabitNames(records []model.Record, goals model.Goals) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, h := range goals.Habits {
		if _, ok := seen[h.Name]; ok || h.Name == "" {
			continue
		}
		seen[h.Name] = struct{}{}
		names = append(names, h.Name)
	}
	for _, e := range Entities(FilterByModule(records, model.ModuleHabits)) {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		names = append(names, e)
	}
	return names
}

// ComposeHabits reports every habit's streaks and today's progress. The
// overall habits streak counts days on which any habit qualified.
func ComposeHabits(records []model.Record, goals model.Goals, now calendar.Date) model.HabitStats {
	habitRecords := FilterByModule(records, model.ModuleHabits)
	overall := Compose(habitRecords, StatsConfig{
		Module: model.ModuleHabits,
		Period: HabitPeriod,
		Chart:  &Chart{Window: Window{Count: 7, Unit: UnitDay}},
	}, now)

	st := model.HabitStats{
		PeriodStart: overall.PeriodStart,
		PeriodEnd:   overall.PeriodEnd,
		Series:      overall.Series,
	}

	start, end := HabitPeriod.Range(now)
	var qualifying []calendar.DateSet
	for _, name := range HabitNames(habitRecords, goals) {
		target := goals.HabitTarget(name)
		qualify := habitQualifier(target)
		mine := filter(habitRecords, IsEntity(name))

		s := Compose(mine, StatsConfig{
			Module:   model.ModuleHabits,
			Period:   HabitPeriod,
			Measures: []Measure{{Name: "value", Value: habitValue}},
			Goals: []Goal{{
				Name:    "today",
				Measure: "value",
				Target:  max(target, 1),
				Period:  &todayOnly,
			}},
			Streak: &StreakRule{Qualify: qualify},
		}, now)

		dates := qualify(mine)
		qualifying = append(qualifying, dates)

		days := 0
		for d := start; d <= end; d++ {
			if dates.Has(d) {
				days++
			}
		}

		summary := model.HabitSummary{
			Name:           name,
			Target:         max(target, 1),
			Today:          s.Goals["today"].Current,
			TodayProgress:  s.Goals["today"],
			Streak:         s.Streak,
			LongestStreak:  s.LongestStreak,
			CompletionRate: Percent(float64(days), float64(int(end-start)+1)),
		}
		if dates.Has(now) {
			st.CompletedToday++
		}
		st.Habits = append(st.Habits, summary)
	}

	st.HabitsStreak = CurrentStreak(UnionDates(qualifying...), now)
	st.TodayRate = Percent(float64(st.CompletedToday), float64(len(st.Habits)))
	return st
}

// HabitSeries buckets one habit's logged counts over the last days days.
func HabitSeries(records []model.Record, name string, days int, now calendar.Date) []model.Bucket {
	mine := filter(FilterByModule(records, model.ModuleHabits), IsEntity(name))
	return Bucket(mine, Window{Count: days, Unit: UnitDay}, now, habitValue)
}
