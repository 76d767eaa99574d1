package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/cashpilot/internal/source"
	"github.com/theirongolddev/cashpilot/internal/store"
)

// CachedLoadResult extends LoadResult with cache metadata.
type CachedLoadResult struct {
	LoadResult
	CacheHits int
	Reparsed  int
}

// LoadWithCache discovers ledger files, diffs them against the cache by mtime
// and size, parses only changed files and returns the merged ledger.
// Cached ledgers are merged ahead of freshly parsed ones.
func LoadWithCache(dataDir string, cache *store.Cache, log *logrus.Logger, progressFn ProgressFunc) (*CachedLoadResult, error) {
	log = orDiscard(log)

	files, err := source.ScanDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dataDir, err)
	}

	result := &CachedLoadResult{
		LoadResult: LoadResult{
			TotalFiles: len(files),
			BookCount:  source.CountBooks(files),
		},
	}

	tracked, err := cache.GetTrackedFiles()
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}

	// Diff: partition into changed and unchanged
	var toReparse []source.DiscoveredFile
	var unchanged []string
	seen := make(map[string]struct{}, len(files))

	for _, f := range files {
		seen[f.Path] = struct{}{}
		info, err := os.Stat(f.Path)
		if err != nil {
			log.WithError(err).WithField("file", f.Path).Debug("stat failed")
			result.FileErrors++
			continue
		}

		cached, ok := tracked[f.Path]
		if ok && cached.MtimeNs == info.ModTime().UnixNano() && cached.SizeBytes == info.Size() {
			unchanged = append(unchanged, f.Path)
		} else {
			toReparse = append(toReparse, f)
		}
	}

	// Drop cache entries for files that no longer exist.
	for path := range tracked {
		if _, ok := seen[path]; !ok {
			if err := cache.DeleteFile(path); err != nil {
				log.WithError(err).WithField("file", path).Warn("could not evict stale cache entry")
			}
		}
	}

	result.CacheHits = len(unchanged)
	result.Reparsed = len(toReparse)

	if len(unchanged) > 0 {
		cached, err := cache.LoadFiles(unchanged)
		if err != nil {
			return nil, fmt.Errorf("loading cached ledgers: %w", err)
		}
		result.Ledger.Merge(cached)
		result.ParsedFiles += len(unchanged)
		if progressFn != nil {
			progressFn(result.CacheHits, result.TotalFiles)
		}
	}

	if len(toReparse) == 0 {
		return result, nil
	}

	results := parseAll(toReparse, func(n int) {
		if progressFn != nil {
			progressFn(n+result.CacheHits, result.TotalFiles)
		}
	})

	for i, pr := range results {
		f := toReparse[i]
		if pr.Err != nil {
			log.WithError(pr.Err).WithField("file", f.Path).Debug("skipping unreadable ledger")
			result.FileErrors++
			continue
		}
		result.ParsedFiles++
		result.ParseErrors += pr.ParseErrors
		result.Ledger.Merge(pr.Ledger)

		info, err := os.Stat(f.Path)
		if err != nil {
			continue
		}
		if err := cache.SaveFile(f.Path, pr.Ledger, info.ModTime().UnixNano(), info.Size()); err != nil {
			log.WithError(err).WithField("file", f.Path).Warn("could not cache parsed ledger")
		}
	}

	return result, nil
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "cashpilot")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "cashpilot")
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "ledger.db")
}
