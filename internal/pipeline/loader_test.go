package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/theirongolddev/pulse/internal/calendar"
	"github.com/theirongolddev/pulse/internal/model"
	"github.com/theirongolddev/pulse/internal/store"
)

func writeRecords(t *testing.T, dataDir, name string, lines ...string) string {
	t.Helper()
	dir := filepath.Join(dataDir, "records")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dataDir := t.TempDir()
	writeRecords(t, dataDir, "finance.jsonl",
		`{"id":"f1","date":"2026-10-01","kind":"expense","values":{"amount":100}}`,
		`{"id":"f2","date":"2026-10-02","kind":"income","values":{"amount":50}}`,
	)
	writeRecords(t, dataDir, "tasks.jsonl",
		`{"id":"t1","timestamp":"2026-10-19T01:00:00Z","status":"done"}`,
		`broken`,
	)

	var calls atomic.Int64
	result, err := Load(dataDir, time.UTC, func(current, total int) { calls.Add(1) })
	if err != nil {
		t.Fatal(err)
	}

	if result.TotalFiles != 2 || result.ParsedFiles != 2 {
		t.Errorf("Total/Parsed = %d/%d, want 2/2", result.TotalFiles, result.ParsedFiles)
	}
	if len(result.Records) != 3 {
		t.Errorf("Records = %d, want 3", len(result.Records))
	}
	if result.ParseErrors != 1 || result.FirstError == nil {
		t.Errorf("ParseErrors = %d (first %v), want 1", result.ParseErrors, result.FirstError)
	}
	if result.ModuleCount != 2 {
		t.Errorf("ModuleCount = %d, want 2", result.ModuleCount)
	}
	if calls.Load() != 2 {
		t.Errorf("progress called %d times, want 2", calls.Load())
	}
}

func TestLoad_MissingDataDir(t *testing.T) {
	result, err := Load(filepath.Join(t.TempDir(), "absent"), time.UTC, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Records) != 0 || result.TotalFiles != 0 {
		t.Errorf("got %+v, want empty result", result)
	}
}

func TestLoadWithCache_DiffsFiles(t *testing.T) {
	dataDir := t.TempDir()
	financePath := writeRecords(t, dataDir, "finance.jsonl",
		`{"id":"f1","date":"2026-10-01","kind":"expense","values":{"amount":100}}`,
	)
	habitsPath := writeRecords(t, dataDir, "habits.jsonl",
		`{"id":"h1","date":"2026-10-19","habit":"read"}`,
		`nope`,
	)

	cache, err := store.Open(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = cache.Close() }()

	first, err := LoadWithCache(dataDir, time.UTC, cache, nil)
	if err != nil {
		t.Fatal(err)
	}
	if first.Reparsed != 2 || first.CacheHits != 0 || len(first.Records) != 2 {
		t.Fatalf("first load = %+v", first)
	}

	second, err := LoadWithCache(dataDir, time.UTC, cache, nil)
	if err != nil {
		t.Fatal(err)
	}
	if second.Reparsed != 0 || second.CacheHits != 2 {
		t.Errorf("second load reparsed/hits = %d/%d, want 0/2", second.Reparsed, second.CacheHits)
	}
	if len(second.Records) != 2 {
		t.Errorf("second load records = %d, want 2", len(second.Records))
	}
	if second.ParseErrors != 1 {
		t.Errorf("cached parse errors = %d, want 1", second.ParseErrors)
	}

	// Rewrite one file with a different size and delete the other.
	writeRecords(t, dataDir, "finance.jsonl",
		`{"id":"f1","date":"2026-10-01","kind":"expense","values":{"amount":100}}`,
		`{"id":"f2","date":"2026-10-03","kind":"expense","values":{"amount":25}}`,
	)
	if err := os.Remove(habitsPath); err != nil {
		t.Fatal(err)
	}

	third, err := LoadWithCache(dataDir, time.UTC, cache, nil)
	if err != nil {
		t.Fatal(err)
	}
	if third.Reparsed != 1 || third.Removed != 1 {
		t.Errorf("third load reparsed/removed = %d/%d, want 1/1", third.Reparsed, third.Removed)
	}
	if len(third.Records) != 2 {
		t.Errorf("third load records = %d, want 2", len(third.Records))
	}
	for _, r := range third.Records {
		if r.FilePath != financePath {
			t.Errorf("record %s from %s survived deletion", r.ID, r.FilePath)
		}
	}

	count, err := cache.RecordCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("cached records = %d, want 2", count)
	}
}

// recordKeys flattens records into sorted comparable strings so a cached
// load can be checked against a fresh parse regardless of order.
func recordKeys(records []model.Record) []string {
	keys := make([]string, len(records))
	for i, r := range records {
		keys[i] = fmt.Sprintf("%s|%s|%s|%s|%v", filepath.Base(r.FilePath), r.ID, r.Date, r.Kind, r.Values)
	}
	sort.Strings(keys)
	return keys
}

func assertSameRecords(t *testing.T, got, want []model.Record) {
	t.Helper()
	g, w := recordKeys(got), recordKeys(want)
	if strings.Join(g, "\n") != strings.Join(w, "\n") {
		t.Errorf("cached records differ from a fresh parse\n got: %v\nwant: %v", g, w)
	}
}

func TestLoadWithCache_ZoneChangeReparses(t *testing.T) {
	dataDir := t.TempDir()
	writeRecords(t, dataDir, "tasks.jsonl",
		`{"id":"t1","timestamp":"2026-10-19T01:00:00Z","status":"done"}`,
	)

	cache, err := store.Open(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = cache.Close() }()

	utc, err := LoadWithCache(dataDir, time.UTC, cache, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(utc.Records) != 1 || utc.Records[0].Date != "2026-10-19" {
		t.Fatalf("UTC load = %+v", utc.Records)
	}

	edt := time.FixedZone("EDT", -4*3600)
	cached, err := LoadWithCache(dataDir, edt, cache, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cached.Reparsed != 1 || cached.CacheHits != 0 {
		t.Errorf("reparsed/hits after zone change = %d/%d, want 1/0", cached.Reparsed, cached.CacheHits)
	}

	fresh, err := Load(dataDir, edt, nil)
	if err != nil {
		t.Fatal(err)
	}
	assertSameRecords(t, cached.Records, fresh.Records)
	if len(cached.Records) == 1 && cached.Records[0].Date != "2026-10-18" {
		t.Errorf("date in EDT = %s, want 2026-10-18", cached.Records[0].Date)
	}

	again, err := LoadWithCache(dataDir, edt, cache, nil)
	if err != nil {
		t.Fatal(err)
	}
	if again.CacheHits != 1 {
		t.Errorf("same zone should hit the cache, hits = %d", again.CacheHits)
	}
	assertSameRecords(t, again.Records, fresh.Records)
}

func TestLoadWithCache_KeepsDuplicateIDs(t *testing.T) {
	dataDir := t.TempDir()
	writeRecords(t, dataDir, "finance.jsonl",
		`{"id":"x","date":"2026-10-01","kind":"expense","values":{"amount":40}}`,
		`{"id":"x","date":"2026-10-02","kind":"expense","values":{"amount":60}}`,
	)

	cache, err := store.Open(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = cache.Close() }()

	fresh, err := Load(dataDir, time.UTC, nil)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		result, err := LoadWithCache(dataDir, time.UTC, cache, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(result.Records) != 2 {
			t.Errorf("load %d: records = %d, want 2", i+1, len(result.Records))
		}
		assertSameRecords(t, result.Records, fresh.Records)
	}
}

func TestComposeDashboard(t *testing.T) {
	now := calendar.MustParse("2026-10-19")
	records := []model.Record{
		rec(model.ModuleFinance, "2026-10-01", model.KindExpense, "", map[string]float64{"amount": 100}),
		rec(model.ModuleTasks, "2026-10-19", model.KindDone, "", nil),
		rec(model.ModuleHabits, "2026-10-19", "", "read", nil),
	}

	d := ComposeDashboard(records, model.Goals{MonthlyBudget: 80}, now)

	if d.Today != "2026-10-19" {
		t.Errorf("Today = %s", d.Today)
	}
	if d.Tasks.Completed != 1 || d.Finance.Budget.Percent != 100 || len(d.Habits.Habits) != 1 {
		t.Errorf("dashboard = %+v", d)
	}

	again := ComposeDashboard(records, model.Goals{MonthlyBudget: 80}, now)
	again.GeneratedAt = time.Now()
	if !DashboardEqual(d, again) {
		t.Error("recomposing the same input should be equal")
	}

	records = append(records, rec(model.ModuleTasks, "2026-10-19", model.KindDone, "", nil))
	if DashboardEqual(d, ComposeDashboard(records, model.Goals{MonthlyBudget: 80}, now)) {
		t.Error("a new record should change the dashboard")
	}
}

func TestComposeModule(t *testing.T) {
	now := calendar.MustParse("2026-10-19")
	for _, m := range model.Modules {
		if _, err := ComposeModule(m, nil, model.Goals{}, now); err != nil {
			t.Errorf("ComposeModule(%s): %v", m, err)
		}
	}
	if _, err := ComposeModule("gardening", nil, model.Goals{}, now); err == nil {
		t.Error("unknown module should fail")
	}
}
