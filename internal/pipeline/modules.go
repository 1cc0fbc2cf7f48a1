package pipeline

import (
	"sort"

	"github.com/theirongolddev/pulse/internal/calendar"
	"github.com/theirongolddev/pulse/internal/model"
)

// Period policies per module. Rolling windows have a fixed length; the
// calendar ones vary with the month or year.
var (
	TaskPeriod     = LastDays(7)
	ContactPeriod  = LastDays(30)
	HabitPeriod    = LastDays(7)
	FitnessPeriod  = LastDays(7)
	MealPeriod     = Period{Kind: CalendarMonth}
	FinancePeriod  = Period{Kind: CalendarMonth}
	TravelPeriod   = Period{Kind: CalendarYear}
	WellnessPeriod = LastDays(14)
)

var (
	todayOnly   = LastDays(1)
	currentWeek = Period{Kind: CalendarWeek}
)

func anyRecord(records []model.Record) calendar.DateSet {
	return QualifyingDates(records, nil)
}

// ComposeTasks reports task throughput over the last 7 days. A task counts
// as completed when its Kind is "done".
func ComposeTasks(records []model.Record, _ model.Goals, now calendar.Date) model.TaskStats {
	done := IsKind(model.KindDone)
	s := Compose(records, StatsConfig{
		Module:   model.ModuleTasks,
		Period:   TaskPeriod,
		Measures: []Measure{{Name: "completed", Value: Where(done, CountOf)}},
		Goals:    []Goal{{Name: "today", Measure: "completed", Period: &todayOnly}},
		Chart:    &Chart{Window: Window{Count: 7, Unit: UnitDay}, Measure: "completed"},
		Streak: &StreakRule{Qualify: func(rs []model.Record) calendar.DateSet {
			return QualifyingDates(rs, done)
		}},
	}, now)

	completed := int(s.Totals["completed"].Sum)
	return model.TaskStats{
		PeriodStart:    s.PeriodStart,
		PeriodEnd:      s.PeriodEnd,
		Total:          s.Records,
		Completed:      completed,
		Open:           s.Records - completed,
		CompletionRate: Percent(float64(completed), float64(s.Records)),
		CompletedToday: int(s.Goals["today"].Current),
		Streak:         s.Streak,
		Series:         s.Series,
	}
}

// ComposeContacts reports interactions over the last 30 days and this ISO
// week's progress toward the weekly contact goal.
func ComposeContacts(records []model.Record, goals model.Goals, now calendar.Date) model.ContactStats {
	s := Compose(records, StatsConfig{
		Module: model.ModuleContacts,
		Period: ContactPeriod,
		Goals: []Goal{{
			Name:   "weekly",
			Target: goals.WeeklyContacts,
			Period: &currentWeek,
		}},
		Chart: &Chart{Window: Window{Count: 4, Unit: UnitWeek}},
	}, now)

	start, end := ContactPeriod.Range(now)
	inPeriod := FilterByRange(FilterByModule(records, model.ModuleContacts), start, end)

	return model.ContactStats{
		PeriodStart:   s.PeriodStart,
		PeriodEnd:     s.PeriodEnd,
		Interactions:  s.Records,
		PeopleReached: len(Entities(inPeriod)),
		WeeklyGoal:    s.Goals["weekly"],
		Series:        s.Series,
	}
}

// workoutVolume is sets x reps x weight. A workout missing any of the three
// reports no volume rather than a partial product.
func workoutVolume(r model.Record) (float64, bool) {
	sets, ok := r.Value(model.ValueSets)
	if !ok {
		return 0, false
	}
	reps, ok := r.Value(model.ValueReps)
	if !ok {
		return 0, false
	}
	weight, ok := r.Value(model.ValueWeight)
	if !ok {
		return 0, false
	}
	return sets * reps * weight, true
}

// ComposeFitness reports workouts over the last 7 days.
func ComposeFitness(records []model.Record, goals model.Goals, now calendar.Date) model.FitnessStats {
	s := Compose(records, StatsConfig{
		Module: model.ModuleFitness,
		Period: FitnessPeriod,
		Measures: []Measure{
			{Name: "volume", Value: workoutVolume},
			{Name: "duration", Value: Field(model.ValueDurationMin)},
		},
		Goals:  []Goal{{Name: "weekly", Target: goals.WeeklyWorkouts}},
		Chart:  &Chart{Window: Window{Count: 7, Unit: UnitDay}, Measure: "volume"},
		Streak: &StreakRule{Qualify: anyRecord},
	}, now)

	start, end := FitnessPeriod.Range(now)
	inPeriod := FilterByRange(FilterByModule(records, model.ModuleFitness), start, end)

	return model.FitnessStats{
		PeriodStart:  s.PeriodStart,
		PeriodEnd:    s.PeriodEnd,
		Workouts:     s.Records,
		TotalVolume:  s.Totals["volume"].Sum,
		TotalMinutes: s.Totals["duration"].Sum,
		AvgDuration:  s.Totals["duration"].Average,
		WeeklyGoal:   s.Goals["weekly"],
		Streak:       s.Streak,
		TopExercise:  topEntity(inPeriod),
		Series:       s.Series,
	}
}

// topEntity returns the entity with the most records, ties broken by name.
func topEntity(records []model.Record) string {
	counts := make(map[string]int)
	for _, r := range records {
		if r.Entity != "" {
			counts[r.Entity]++
		}
	}
	names := make([]string, 0, len(counts))
	for n := range counts {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// ComposeMeals reports today's intake against the daily goals and the
// current calendar month's logging.
func ComposeMeals(records []model.Record, goals model.Goals, now calendar.Date) model.MealStats {
	s := Compose(records, StatsConfig{
		Module: model.ModuleMeals,
		Period: MealPeriod,
		Measures: []Measure{
			{Name: "calories", Value: Field(model.ValueCalories)},
			{Name: "protein", Value: Field(model.ValueProteinG)},
		},
		Goals: []Goal{
			{Name: "calories", Measure: "calories", Target: goals.DailyCalories, Period: &todayOnly},
			{Name: "protein", Measure: "protein", Target: goals.DailyProteinG, Period: &todayOnly},
		},
		Chart: &Chart{Window: Window{Count: 7, Unit: UnitDay}, Measure: "calories"},
	}, now)

	start, end := MealPeriod.Range(now)
	days := DistinctDays(FilterByRange(FilterByModule(records, model.ModuleMeals), start, end))

	st := model.MealStats{
		PeriodStart:   s.PeriodStart,
		PeriodEnd:     s.PeriodEnd,
		TodayCalories: s.Goals["calories"].Current,
		TodayProtein:  s.Goals["protein"].Current,
		CalorieGoal:   s.Goals["calories"],
		ProteinGoal:   s.Goals["protein"],
		MonthMeals:    s.Records,
		DaysLogged:    days,
		Series:        s.Series,
	}
	if days > 0 {
		st.AvgDailyCalories = s.Totals["calories"].Sum / float64(days)
	}
	return st
}

// ComposeWellness reports check-in averages over the last 14 days. The
// sleep goal compares average sleep, not the total.
func ComposeWellness(records []model.Record, goals model.Goals, now calendar.Date) model.WellnessStats {
	s := Compose(records, StatsConfig{
		Module: model.ModuleWellness,
		Period: WellnessPeriod,
		Measures: []Measure{
			{Name: "mood", Value: Field(model.ValueMood)},
			{Name: "sleep", Value: Field(model.ValueSleepHours)},
			{Name: "energy", Value: Field(model.ValueEnergy)},
		},
		Goals:  []Goal{{Name: "sleep", Measure: "sleep", Target: goals.SleepHours, Average: true}},
		Chart:  &Chart{Window: Window{Count: 14, Unit: UnitDay}, Measure: "mood"},
		Streak: &StreakRule{Qualify: anyRecord},
	}, now)

	return model.WellnessStats{
		PeriodStart:   s.PeriodStart,
		PeriodEnd:     s.PeriodEnd,
		Entries:       s.Records,
		AvgMood:       s.Totals["mood"].Average,
		AvgSleep:      s.Totals["sleep"].Average,
		AvgEnergy:     s.Totals["energy"].Average,
		SleepGoal:     s.Goals["sleep"],
		JournalStreak: s.Streak,
		Series:        s.Series,
	}
}
