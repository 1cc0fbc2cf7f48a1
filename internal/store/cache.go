// Package store provides a SQLite-backed cache of parsed export records.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/pulse/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache stores the records parsed from each export file together with the
// file's mtime, size and the zone its timestamps were normalised in, so
// unchanged files are not parsed again.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path and applies
// pending migrations.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("migrating cache db: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// FileInfo holds what a file looked like when it was last parsed.
type FileInfo struct {
	MtimeNs     int64
	SizeBytes   int64
	ParseErrors int
	// Zone is the location name timestamps were converted in.
	Zone string
}

// GetTrackedFiles returns a map of file_path -> FileInfo for all tracked files.
func (c *Cache) GetTrackedFiles() (map[string]FileInfo, error) {
	rows, err := c.db.Query("SELECT file_path, mtime_ns, size_bytes, parse_errors, zone FROM file_tracker")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var path string
		var fi FileInfo
		if err := rows.Scan(&path, &fi.MtimeNs, &fi.SizeBytes, &fi.ParseErrors, &fi.Zone); err != nil {
			return nil, err
		}
		result[path] = fi
	}
	return result, rows.Err()
}

// SaveFile replaces everything cached for filePath with records, in one
// transaction. Records are stored in order and keyed by position, so
// duplicate IDs within a file are kept.
func (c *Cache) SaveFile(filePath string, records []model.Record, fi FileInfo) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM records WHERE file_path = ?", filePath); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO records
		(file_path, seq, id, module, date, kind, entity, label, values_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range records {
		values := []byte("{}")
		if len(r.Values) > 0 {
			values, err = json.Marshal(r.Values)
			if err != nil {
				return fmt.Errorf("encoding values of %s: %w", r.ID, err)
			}
		}
		if _, err := stmt.Exec(filePath, i, r.ID, string(r.Module), r.Date, r.Kind, r.Entity, r.Label, string(values)); err != nil {
			return err
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.Exec(`INSERT OR REPLACE INTO file_tracker (file_path, mtime_ns, size_bytes, parse_errors, zone, parsed_at)
		VALUES (?, ?, ?, ?, ?, ?)`, filePath, fi.MtimeNs, fi.SizeBytes, fi.ParseErrors, fi.Zone, now)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// LoadAllRecords reads every cached record, ordered by file then position.
func (c *Cache) LoadAllRecords() ([]model.Record, error) {
	rows, err := c.db.Query(`SELECT file_path, id, module, date, kind, entity, label, values_json
		FROM records ORDER BY file_path, seq`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []model.Record
	for rows.Next() {
		var r model.Record
		var module, values string
		if err := rows.Scan(&r.FilePath, &r.ID, &module, &r.Date, &r.Kind, &r.Entity, &r.Label, &values); err != nil {
			return nil, err
		}
		r.Module = model.Module(module)
		if values != "" && values != "{}" {
			if err := json.Unmarshal([]byte(values), &r.Values); err != nil {
				return nil, fmt.Errorf("decoding values of %s: %w", r.ID, err)
			}
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// DeleteFile forgets a file and its records.
func (c *Cache) DeleteFile(filePath string) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM records WHERE file_path = ?", filePath); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM file_tracker WHERE file_path = ?", filePath); err != nil {
		return err
	}
	return tx.Commit()
}

// RecordCount returns the number of cached records.
func (c *Cache) RecordCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&count)
	return count, err
}
