package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/pulse/internal/calendar"
	"github.com/theirongolddev/pulse/internal/model"
)

// syntheticRecords spreads n records over every module and the last 400 days.
func syntheticRecords(n int, now calendar.Date) []model.Record {
	records := make([]model.Record, 0, n)
	for i := 0; i < n; i++ {
		m := model.Modules[i%len(model.Modules)]
		r := model.Record{
			ID:     fmt.Sprintf("r%d", i),
			Module: m,
			Date:   now.AddDays(-(i % 400)).String(),
			Entity: fmt.Sprintf("e%d", i%7),
			Values: map[string]float64{},
		}
		switch m {
		case model.ModuleFinance:
			r.Kind = model.KindExpense
			r.Values[model.ValueAmount] = float64(i%97) + 0.25
		case model.ModuleTasks:
			r.Kind = model.KindDone
		case model.ModuleFitness:
			r.Values[model.ValueSets] = 3
			r.Values[model.ValueReps] = 10
			r.Values[model.ValueWeight] = float64(i % 60)
		case model.ModuleMeals:
			r.Values[model.ValueCalories] = float64(300 + i%400)
		case model.ModuleWellness:
			r.Values[model.ValueMood] = float64(1 + i%5)
		}
		records = append(records, r)
	}
	return records
}

func BenchmarkComposeDashboard(b *testing.B) {
	now := calendar.MustParse("2026-10-19")
	records := syntheticRecords(20000, now)
	goals := model.Goals{WeeklyWorkouts: 3, MonthlyBudget: 1500, DailyCalories: 2000}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ComposeDashboard(records, goals, now)
	}
}

func BenchmarkLoad(b *testing.B) {
	dataDir := b.TempDir()
	dir := filepath.Join(dataDir, "records")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		b.Fatal(err)
	}

	now := calendar.MustParse("2026-10-19")
	for _, m := range model.Modules {
		var lines []string
		for i := 0; i < 2000; i++ {
			lines = append(lines, fmt.Sprintf(`{"id":"%s%d","date":"%s","values":{"amount":%d}}`,
				m, i, now.AddDays(-(i%365)), i%50))
		}
		path := filepath.Join(dir, string(m)+".jsonl")
		if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o600); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Load(dataDir, time.UTC, nil); err != nil {
			b.Fatal(err)
		}
	}
}
