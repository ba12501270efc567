// Package collector gathers a bounded sample of source files for analysis.
package collector

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"unicode/utf8"

	"github.com/peakinfer/peakinfer-action/internal/peakinfer"
)

// DefaultMaxFiles caps how many files one run sends for analysis.
const DefaultMaxFiles = 50

// maxFileSize is the per-file ceiling in bytes; files at or over it are
// skipped.
const maxFileSize = 100_000

// skipDirs are directory names never descended into. Matching is by exact
// name and applies to directories only, so a file named "vendor" is still
// eligible.
var skipDirs = []string{
	"node_modules", "vendor", "dist", "build", "target",
	"__pycache__", ".git", ".hg", ".svn",
	"venv", ".venv", "env", ".tox",
	"bower_components", ".next",
}

// sourceExtensions is the set of file extensions the service can analyze.
var sourceExtensions = []string{
	".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs",
	".py", ".go", ".java", ".kt", ".kts", ".rs", ".rb",
}

// Collector walks a directory tree and returns eligible source files.
type Collector struct {
	logger *slog.Logger
}

// New creates a Collector.
func New(logger *slog.Logger) *Collector {
	return &Collector{logger: logger}
}

// Collect walks root depth-first and returns up to maxFiles eligible
// files. A missing root yields an empty result, not an error; unreadable
// or non-text files are skipped silently. Directory entries are visited
// in lexicographic order so the cap cuts off deterministically.
func (c *Collector) Collect(root string, maxFiles int) []peakinfer.File {
	if maxFiles <= 0 {
		maxFiles = DefaultMaxFiles
	}

	if _, err := os.Stat(root); err != nil {
		c.logger.Warn("Scan root does not exist, nothing to collect", "path", root)
		return nil
	}

	var files []peakinfer.File
	c.walk(root, maxFiles, &files)
	c.logger.Info("File collection finished", "root", root, "collected", len(files))
	return files
}

func (c *Collector) walk(dir string, maxFiles int, files *[]peakinfer.File) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		c.logger.Debug("Skipping unreadable directory", "path", dir, "error", err)
		return
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if len(*files) >= maxFiles {
			return
		}
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if slices.Contains(skipDirs, entry.Name()) {
				continue
			}
			c.walk(path, maxFiles, files)
			continue
		}

		if !slices.Contains(sourceExtensions, filepath.Ext(entry.Name())) {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.Size() >= maxFileSize {
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil || !utf8.Valid(content) {
			c.logger.Debug("Skipping unreadable file", "path", path)
			continue
		}

		*files = append(*files, peakinfer.File{Path: path, Content: string(content)})
	}
}
