// Package pipeline loads records and derives buckets, streaks, goal progress
// and per-module stats from them.
package pipeline

import (
	"sort"
	"strings"

	"github.com/theirongolddev/pulse/internal/calendar"
	"github.com/theirongolddev/pulse/internal/model"
)

// FilterByModule returns the records of one module. An empty module keeps
// everything.
func FilterByModule(records []model.Record, m model.Module) []model.Record {
	if m == "" {
		return records
	}
	var result []model.Record
	for _, r := range records {
		if r.Module == m {
			result = append(result, r)
		}
	}
	return result
}

// FilterByRange returns records dated within the inclusive range
// [start, end]. Records with malformed dates are dropped.
func FilterByRange(records []model.Record, start, end calendar.Date) []model.Record {
	var result []model.Record
	for _, r := range records {
		d, err := calendar.Parse(r.Date)
		if err != nil || !d.Between(start, end) {
			continue
		}
		result = append(result, r)
	}
	return result
}

// FilterByKind returns records whose Kind matches, ignoring case.
func FilterByKind(records []model.Record, kind string) []model.Record {
	if kind == "" {
		return records
	}
	var result []model.Record
	for _, r := range records {
		if strings.EqualFold(r.Kind, kind) {
			result = append(result, r)
		}
	}
	return result
}

// FilterByEntity returns records whose Entity contains the substring.
func FilterByEntity(records []model.Record, entity string) []model.Record {
	if entity == "" {
		return records
	}
	var result []model.Record
	for _, r := range records {
		if containsIgnoreCase(r.Entity, entity) {
			result = append(result, r)
		}
	}
	return result
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// IsKind returns a predicate matching records of the given kind.
func IsKind(kind string) func(model.Record) bool {
	return func(r model.Record) bool {
		return strings.EqualFold(r.Kind, kind)
	}
}

// IsEntity returns a predicate matching records of the given entity exactly.
func IsEntity(entity string) func(model.Record) bool {
	return func(r model.Record) bool {
		return r.Entity == entity
	}
}

// Entities returns the distinct non-empty entities, sorted.
func Entities(records []model.Record) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		if r.Entity != "" {
			seen[r.Entity] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DistinctDays counts the distinct valid dates among records.
func DistinctDays(records []model.Record) int {
	return QualifyingDates(records, nil).Len()
}

// SortRecent orders records newest first, then by module and ID.
func SortRecent(records []model.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		if a.Module != b.Module {
			return a.Module < b.Module
		}
		return a.ID < b.ID
	})
}
