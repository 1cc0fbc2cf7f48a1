package pipeline

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/theirongolddev/pulse/internal/model"
	"github.com/theirongolddev/pulse/internal/source"
)

// LoadResult holds the output of the full data loading pipeline.
type LoadResult struct {
	Records     []model.Record
	TotalFiles  int
	ParsedFiles int
	ParseErrors int
	FileErrors  int
	ModuleCount int
	// FirstError is the first per-line or per-file problem seen.
	FirstError error
}

// ProgressFunc is called during loading to report progress.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// Load discovers and parses every export file under dataDir, converting
// timestamps to dates in loc. It uses a bounded worker pool for parallel
// parsing.
func Load(dataDir string, loc *time.Location, progressFn ProgressFunc) (*LoadResult, error) {
	files, err := source.ScanDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dataDir, err)
	}

	result := &LoadResult{
		TotalFiles:  len(files),
		ModuleCount: source.CountModules(files),
	}
	if len(files) == 0 {
		return result, nil
	}

	results := parseAll(files, loc, func(n int) {
		if progressFn != nil {
			progressFn(n, len(files))
		}
	})

	for _, pr := range results {
		result.collect(pr)
	}
	return result, nil
}

// parseAll parses files on runtime.GOMAXPROCS workers. Results keep file
// order; done is called after each file with the running count.
func parseAll(files []source.DiscoveredFile, loc *time.Location, done func(n int)) []source.ParseResult {
	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	work := make(chan int, len(files))
	results := make([]source.ParseResult, len(files))
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := range files {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx] = source.ParseFile(files[idx], loc)
				n := processed.Add(1)
				done(int(n))
			}
		}()
	}

	wg.Wait()
	return results
}

func (r *LoadResult) collect(pr source.ParseResult) {
	if pr.Err != nil {
		r.FileErrors++
		if r.FirstError == nil {
			r.FirstError = pr.Err
		}
		return
	}
	r.ParsedFiles++
	r.ParseErrors += pr.ParseErrors
	if r.FirstError == nil && pr.FirstError != nil {
		r.FirstError = pr.FirstError
	}
	r.Records = append(r.Records, pr.Records...)
}
