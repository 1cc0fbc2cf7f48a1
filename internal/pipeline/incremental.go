package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/pulse/internal/source"
	"github.com/theirongolddev/pulse/internal/store"
)

// CachedLoadResult extends LoadResult with cache metadata.
type CachedLoadResult struct {
	LoadResult
	CacheHits int
	Reparsed  int
	Removed   int
}

// LoadWithCache discovers export files, diffs them against the cache by
// mtime, size and zone, parses only the changed ones and forgets files that
// no longer exist. A file cached under another zone counts as changed.
func LoadWithCache(dataDir string, loc *time.Location, cache *store.Cache, progressFn ProgressFunc) (*CachedLoadResult, error) {
	if loc == nil {
		loc = time.Local
	}
	zone := loc.String()

	files, err := source.ScanDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dataDir, err)
	}

	result := &CachedLoadResult{
		LoadResult: LoadResult{
			TotalFiles:  len(files),
			ModuleCount: source.CountModules(files),
		},
	}

	tracked, err := cache.GetTrackedFiles()
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}

	present := make(map[string]struct{}, len(files))
	var toReparse []source.DiscoveredFile
	var infos []store.FileInfo
	unchanged := make(map[string]struct{})

	for _, f := range files {
		present[f.Path] = struct{}{}
		info, err := os.Stat(f.Path)
		if err != nil {
			continue
		}

		cached, ok := tracked[f.Path]
		if ok && cached.MtimeNs == info.ModTime().UnixNano() && cached.SizeBytes == info.Size() && cached.Zone == zone {
			unchanged[f.Path] = struct{}{}
			result.ParseErrors += cached.ParseErrors
		} else {
			toReparse = append(toReparse, f)
			infos = append(infos, store.FileInfo{MtimeNs: info.ModTime().UnixNano(), SizeBytes: info.Size(), Zone: zone})
		}
	}

	for path := range tracked {
		if _, ok := present[path]; ok {
			continue
		}
		if err := cache.DeleteFile(path); err != nil {
			return nil, fmt.Errorf("forgetting %s: %w", path, err)
		}
		result.Removed++
	}

	result.CacheHits = len(unchanged)
	result.Reparsed = len(toReparse)

	if len(unchanged) > 0 {
		cached, err := cache.LoadAllRecords()
		if err != nil {
			return nil, fmt.Errorf("loading cached records: %w", err)
		}
		for _, r := range cached {
			if _, ok := unchanged[r.FilePath]; ok {
				result.Records = append(result.Records, r)
			}
		}
		result.ParsedFiles += len(unchanged)
	}

	if len(toReparse) > 0 {
		results := parseAll(toReparse, loc, func(n int) {
			if progressFn != nil {
				progressFn(n+result.CacheHits, result.TotalFiles)
			}
		})

		for i, pr := range results {
			result.collect(pr)
			if pr.Err != nil {
				continue
			}
			fi := infos[i]
			fi.ParseErrors = pr.ParseErrors
			_ = cache.SaveFile(toReparse[i].Path, pr.Records, fi)
		}
	}

	return result, nil
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "pulse")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "pulse")
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "records.db")
}
