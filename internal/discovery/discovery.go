package discovery

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/getmockd/filemock/pkg/logging"
)

// Lister lists files matching glob patterns.
type Lister interface {
	// ListFiles returns matching file paths, de-duplicated and sorted
	// lexicographically by full path.
	ListFiles(patterns []string) []string
}

// FSLister lists files from the local filesystem.
type FSLister struct {
	logger *slog.Logger
}

// NewFSLister creates a filesystem lister. A nil logger discards diagnostics.
func NewFSLister(logger *slog.Logger) *FSLister {
	if logger == nil {
		logger = logging.Nop()
	}
	return &FSLister{logger: logger}
}

// ListFiles implements Lister. A pattern whose base directory is missing
// or that fails to expand is logged and contributes no files. The same
// file reached through a relative and an absolute pattern is listed once.
func (l *FSLister) ListFiles(patterns []string) []string {
	seen := make(map[string]struct{})
	var files []string

	for _, pattern := range patterns {
		if base := baseDir(pattern); !isDir(base) {
			l.logger.Warn("mock pattern base directory does not exist", "pattern", pattern, "dir", base)
			continue
		}

		matches, err := expandGlob(pattern)
		if err != nil {
			l.logger.Warn("error processing mock pattern", "pattern", pattern, "error", err)
			continue
		}

		count := 0
		for _, match := range matches {
			if !isRegularFile(match) {
				continue
			}
			count++
			key := match
			if abs, err := filepath.Abs(match); err == nil {
				key = abs
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			files = append(files, match)
		}
		l.logger.Debug("mock pattern resolved", "pattern", pattern, "files", count)
	}

	sort.Strings(files)
	return files
}

// expandGlob expands a glob pattern to a list of matching file paths.
// Uses doublestar for ** support, falls back to filepath.Glob for simple patterns.
func expandGlob(pattern string) ([]string, error) {
	if strings.Contains(pattern, "**") {
		return doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	}
	return filepath.Glob(pattern)
}

// baseDir returns the literal directory prefix of pattern, before any
// glob metacharacter.
func baseDir(pattern string) string {
	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	return filepath.FromSlash(base)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// StaticLister returns a fixed file list regardless of patterns. It lets
// callers exercise matching without touching the filesystem.
type StaticLister []string

// ListFiles implements Lister.
func (s StaticLister) ListFiles([]string) []string {
	seen := make(map[string]struct{}, len(s))
	files := make([]string, 0, len(s))
	for _, f := range s {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// SplitPatterns parses a comma-separated pattern list, dropping empty
// entries.
func SplitPatterns(s string) []string {
	var patterns []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}
