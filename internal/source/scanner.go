package source

import (
	"os"
	"path/filepath"
	"strings"
)

// ScanDir walks the data directory and discovers all JSONL ledger files.
// A missing directory yields no files and no error.
func ScanDir(dataDir string) ([]DiscoveredFile, error) {
	info, err := os.Stat(dataDir)
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

	err = filepath.WalkDir(dataDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if d.IsDir() {
			if path != dataDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".jsonl" {
			return nil
		}

		rel, _ := filepath.Rel(dataDir, path)
		files = append(files, DiscoveredFile{
			Path: path,
			Book: bookName(rel),
		})
		return nil
	})

	return files, err
}

// bookName maps a path relative to the data dir to a book name:
//
//	"acme/2024/q1.jsonl" -> "acme"
//	"globex.jsonl"       -> "globex"
func bookName(rel string) string {
	parts := strings.Split(rel, string(filepath.Separator))
	if len(parts) > 1 {
		return parts[0]
	}
	return strings.TrimSuffix(parts[0], ".jsonl")
}

// CountBooks returns the number of unique books in a set of discovered files.
func CountBooks(files []DiscoveredFile) int {
	seen := make(map[string]struct{})
	for _, f := range files {
		seen[f.Book] = struct{}{}
	}
	return len(seen)
}
