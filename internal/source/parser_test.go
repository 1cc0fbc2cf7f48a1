package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/pulse/internal/calendar"
	"github.com/theirongolddev/pulse/internal/model"
)

// writeExport creates a temp JSONL file and returns a DiscoveredFile for it.
func writeExport(t *testing.T, name string, lines ...string) DiscoveredFile {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	df := DiscoveredFile{Path: path}
	if m, ok := model.ParseModule(strings.TrimSuffix(name, ".jsonl")); ok {
		df.Module = m
	}
	return df
}

func TestParseFile_ModuleFromFileName(t *testing.T) {
	df := writeExport(t, "finance.jsonl",
		`{"id":"t1","date":"2026-10-01","kind":"expense","entity":"groceries","values":{"amount":100}}`,
		`{"id":"t2","date":"2026-10-02","type":"Income","values":{"amount":50}}`,
	)

	result := ParseFile(df, time.UTC)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("Records = %d, want 2", len(result.Records))
	}

	r := result.Records[1]
	if r.Module != model.ModuleFinance {
		t.Errorf("Module = %q, want finance", r.Module)
	}
	if r.Kind != "income" {
		t.Errorf("Kind = %q, want income (from type, lowercased)", r.Kind)
	}
	if v, ok := r.Value(model.ValueAmount); !ok || v != 50 {
		t.Errorf("amount = %v/%v, want 50/true", v, ok)
	}
	if r.FilePath != df.Path {
		t.Errorf("FilePath = %q, want %q", r.FilePath, df.Path)
	}
}

func TestParseFile_LineModuleOverridesFile(t *testing.T) {
	df := writeExport(t, "export.jsonl",
		`{"id":"a","module":"habits","date":"2026-10-19","habit":"read"}`,
		`{"id":"b","module":"Meals","date":"2026-10-19","values":{"calories":500}}`,
	)

	result := ParseFile(df, time.UTC)
	if len(result.Records) != 2 {
		t.Fatalf("Records = %d, want 2 (errors: %v)", len(result.Records), result.FirstError)
	}
	if result.Records[0].Module != model.ModuleHabits || result.Records[0].Entity != "read" {
		t.Errorf("record 0 = %+v, want habits/read", result.Records[0])
	}
	if result.Records[1].Module != model.ModuleMeals {
		t.Errorf("record 1 module = %q, want meals", result.Records[1].Module)
	}
}

func TestParseFile_CountsBadLines(t *testing.T) {
	df := writeExport(t, "export.jsonl",
		`not json`,
		`{"id":"x","date":"2026-10-19"}`,
		`{"id":"y","module":"gardening","date":"2026-10-19"}`,
		`{"id":"z","module":"tasks","date":"2026-02-30"}`,
		`{"id":"w","module":"tasks"}`,
		``,
		`{"id":"ok","module":"tasks","date":"2026-10-19","status":"done"}`,
	)

	result := ParseFile(df, time.UTC)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.ParseErrors != 5 {
		t.Errorf("ParseErrors = %d, want 5", result.ParseErrors)
	}
	if len(result.Records) != 1 || result.Records[0].ID != "ok" {
		t.Fatalf("Records = %+v, want only ok", result.Records)
	}
	if result.FirstError == nil {
		t.Error("FirstError not set")
	}
}

func TestNormalize_TimestampUsesZone(t *testing.T) {
	raw := RawRecord{ID: "m1", Timestamp: "2026-10-18T22:30:00Z"}

	utc, err := Normalize(raw, model.ModuleWellness, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if utc.Date != "2026-10-18" {
		t.Errorf("UTC date = %s, want 2026-10-18", utc.Date)
	}

	tokyo := time.FixedZone("JST", 9*3600)
	local, err := Normalize(raw, model.ModuleWellness, tokyo)
	if err != nil {
		t.Fatal(err)
	}
	if local.Date != "2026-10-19" {
		t.Errorf("JST date = %s, want 2026-10-19", local.Date)
	}

	ny := time.FixedZone("EDT", -4*3600)
	raw.Timestamp = "2026-10-19T02:00:00Z"
	west, err := Normalize(raw, model.ModuleWellness, ny)
	if err != nil {
		t.Fatal(err)
	}
	if west.Date != "2026-10-18" {
		t.Errorf("EDT date = %s, want 2026-10-18", west.Date)
	}
}

func TestNormalize_Errors(t *testing.T) {
	if _, err := Normalize(RawRecord{Date: "2026-10-19"}, "", time.UTC); !errors.Is(err, ErrUnknownModule) {
		t.Errorf("no module err = %v, want ErrUnknownModule", err)
	}
	if _, err := Normalize(RawRecord{Module: "tasks"}, "", time.UTC); !errors.Is(err, ErrMissingDate) {
		t.Errorf("no date err = %v, want ErrMissingDate", err)
	}
	if _, err := Normalize(RawRecord{Module: "tasks", Timestamp: "yesterday"}, "", time.UTC); !errors.Is(err, calendar.ErrInvalidDate) {
		t.Errorf("bad timestamp err = %v, want ErrInvalidDate", err)
	}
}

func TestParseFile_GeneratesStableIDs(t *testing.T) {
	df := writeExport(t, "tasks.jsonl",
		`{"date":"2026-10-19","status":"open"}`,
		`{"date":"2026-10-19","status":"open"}`,
	)

	first := ParseFile(df, time.UTC)
	second := ParseFile(df, time.UTC)
	if len(first.Records) != 2 {
		t.Fatalf("Records = %d, want 2", len(first.Records))
	}
	if first.Records[0].ID == "" || first.Records[0].ID == first.Records[1].ID {
		t.Errorf("IDs = %q, %q, want distinct non-empty", first.Records[0].ID, first.Records[1].ID)
	}
	if first.Records[0].ID != second.Records[0].ID {
		t.Errorf("ID changed between parses: %q vs %q", first.Records[0].ID, second.Records[0].ID)
	}
}

func TestScanDir(t *testing.T) {
	dataDir := t.TempDir()
	recordsDir := RecordsDir(dataDir)
	if err := os.MkdirAll(filepath.Join(recordsDir, "archive"), 0o750); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"finance.jsonl", "archive/misc.jsonl", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(recordsDir, name), []byte("{}\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	files, err := ScanDir(dataDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("files = %d, want 2", len(files))
	}
	if CountModules(files) != 1 {
		t.Errorf("CountModules = %d, want 1", CountModules(files))
	}

	missing, err := ScanDir(filepath.Join(dataDir, "nope"))
	if err != nil || missing != nil {
		t.Errorf("missing dir = %v, %v; want nil, nil", missing, err)
	}
}
