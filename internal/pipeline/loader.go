package pipeline

import (
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/cashpilot/internal/model"
	"github.com/theirongolddev/cashpilot/internal/source"
)

// LoadResult holds the output of the full data loading pipeline.
type LoadResult struct {
	Ledger      model.Ledger
	TotalFiles  int
	ParsedFiles int
	ParseErrors int
	FileErrors  int
	BookCount   int
}

// ProgressFunc is called during loading to report progress.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// Load discovers and parses all ledger files under dataDir.
// It uses a bounded worker pool for parallel parsing. log may be nil.
func Load(dataDir string, log *logrus.Logger, progressFn ProgressFunc) (*LoadResult, error) {
	log = orDiscard(log)

	files, err := source.ScanDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dataDir, err)
	}

	result := &LoadResult{
		TotalFiles: len(files),
		BookCount:  source.CountBooks(files),
	}
	if len(files) == 0 {
		return result, nil
	}

	results := parseAll(files, func(n int) {
		if progressFn != nil {
			progressFn(n, len(files))
		}
	})

	for i, pr := range results {
		if pr.Err != nil {
			log.WithError(pr.Err).WithField("file", files[i].Path).Debug("skipping unreadable ledger")
			result.FileErrors++
			continue
		}
		result.ParsedFiles++
		result.ParseErrors += pr.ParseErrors
		result.Ledger.Merge(pr.Ledger)
	}

	return result, nil
}

// parseAll parses files on a worker pool sized to GOMAXPROCS. Results keep
// the order of files. done is called with the running count after each file.
func parseAll(files []source.DiscoveredFile, done func(n int)) []source.ParseResult {
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
				results[idx] = source.ParseFile(files[idx])
				done(int(processed.Add(1)))
			}
		}()
	}

	wg.Wait()
	return results
}

func orDiscard(log *logrus.Logger) *logrus.Logger {
	if log != nil {
		return log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
