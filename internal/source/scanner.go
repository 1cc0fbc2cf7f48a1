package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/theirongolddev/pulse/internal/model"
)

// RecordsDir returns the export directory inside a data directory.
func RecordsDir(dataDir string) string {
	return filepath.Join(dataDir, "records")
}

// ScanDir discovers every JSONL export under <dataDir>/records. A missing
// directory is not an error; it yields no files.
func ScanDir(dataDir string) ([]DiscoveredFile, error) {
	recordsDir := RecordsDir(dataDir)

	info, err := os.Stat(recordsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	var files []DiscoveredFile

	err = filepath.WalkDir(recordsDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if d.IsDir() || filepath.Ext(path) != ".jsonl" {
			return nil
		}

		name := strings.TrimSuffix(d.Name(), ".jsonl")
		df := DiscoveredFile{Path: path}
		if m, ok := model.ParseModule(strings.ToLower(name)); ok {
			df.Module = m
		}
		files = append(files, df)
		return nil
	})

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}

// CountModules returns the number of distinct modules named by file.
func CountModules(files []DiscoveredFile) int {
	seen := make(map[model.Module]struct{})
	for _, f := range files {
		if f.Module != "" {
			seen[f.Module] = struct{}{}
		}
	}
	return len(seen)
}
