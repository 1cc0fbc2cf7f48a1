// Package source discovers and parses JSONL record exports.
package source

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/pulse/internal/calendar"
	"github.com/theirongolddev/pulse/internal/model"
)

// ErrUnknownModule is returned for a record whose module is missing or not
// one of model.Modules.
var ErrUnknownModule = errors.New("unknown module")

// ErrMissingDate is returned for a record with neither date nor timestamp.
var ErrMissingDate = errors.New("missing date")

// recordNamespace seeds the IDs generated for records exported without one,
// so a line keeps the same ID across runs.
var recordNamespace = uuid.MustParse("5b1f6f8e-6d1c-4a53-9c1e-2f1b0a9c7d42")

// ParseResult holds the output of parsing a single export file.
type ParseResult struct {
	Records     []model.Record
	ParseErrors int
	// FirstError describes the first skipped line, for diagnostics.
	FirstError error
	Err        error
}

// ParseFile reads one JSONL export. Each line becomes a Record whose Date is
// the civil date in loc; malformed lines are counted and skipped. Err is set
// only when the file itself cannot be read.
func ParseFile(df DiscoveredFile, loc *time.Location) ParseResult {
	if loc == nil {
		loc = time.Local
	}

	f, err := os.Open(df.Path)
	if err != nil {
		return ParseResult{Err: err}
	}
	defer func() { _ = f.Close() }()

	var result ParseResult

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var raw RawRecord
		if err := json.Unmarshal(line, &raw); err != nil {
			result.skip(fmt.Errorf("%s:%d: %w", df.Path, lineNo, err))
			continue
		}

		rec, err := Normalize(raw, df.Module, loc)
		if err != nil {
			result.skip(fmt.Errorf("%s:%d: %w", df.Path, lineNo, err))
			continue
		}
		if rec.ID == "" {
			rec.ID = uuid.NewSHA1(recordNamespace, []byte(df.Path+":"+strconv.Itoa(lineNo))).String()
		}
		rec.FilePath = df.Path
		result.Records = append(result.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		result.Err = fmt.Errorf("reading %s: %w", df.Path, err)
	}

	return result
}

func (r *ParseResult) skip(err error) {
	r.ParseErrors++
	if r.FirstError == nil {
		r.FirstError = err
	}
}

// Normalize turns a raw line into a Record. fileModule applies when the line
// does not name its own module. Timestamps are converted to the wall date
// in loc, which keeps every date key in one zone.
func Normalize(raw RawRecord, fileModule model.Module, loc *time.Location) (model.Record, error) {
	m := fileModule
	if raw.Module != "" {
		parsed, ok := model.ParseModule(strings.ToLower(raw.Module))
		if !ok {
			return model.Record{}, fmt.Errorf("%w: %q", ErrUnknownModule, raw.Module)
		}
		m = parsed
	}
	if m == "" {
		return model.Record{}, ErrUnknownModule
	}

	date, err := normalizeDate(raw, loc)
	if err != nil {
		return model.Record{}, err
	}

	return model.Record{
		ID:     raw.ID,
		Module: m,
		Date:   date.String(),
		Kind:   strings.ToLower(firstNonEmpty(raw.Kind, raw.Type, raw.Status)),
		Entity: firstNonEmpty(raw.Entity, raw.Category, raw.Habit),
		Label:  raw.Label,
		Values: raw.Values,
	}, nil
}

func normalizeDate(raw RawRecord, loc *time.Location) (calendar.Date, error) {
	s := raw.Date
	if s == "" {
		s = raw.Timestamp
	}
	if s == "" {
		return 0, ErrMissingDate
	}
	if len(s) == len(calendar.Layout) {
		return calendar.Parse(s)
	}

	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", calendar.ErrInvalidDate, s)
	}
	return calendar.FromTime(ts.In(loc)), nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
