package collector

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func collectedPaths(t *testing.T, root string, maxFiles int) []string {
	t.Helper()
	var paths []string
	for _, f := range New(testLogger()).Collect(root, maxFiles) {
		rel, err := filepath.Rel(root, f.Path)
		require.NoError(t, err)
		paths = append(paths, filepath.ToSlash(rel))
	}
	return paths
}

func TestCollectMissingRoot(t *testing.T) {
	files := New(testLogger()).Collect(filepath.Join(t.TempDir(), "nope"), 10)
	assert.Empty(t, files)
}

func TestCollectSkipsDependencyDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/chat.ts", "const x = 1")
	writeFile(t, root, "node_modules/pkg/index.js", "module.exports = {}")

	assert.Equal(t, []string{"src/chat.ts"}, collectedPaths(t, root, 10))
}

func TestCollectDenylistAppliesToDirectoriesOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "build/a.py", "x = 1")
	// Only exact directory names are denied; build.py is a regular file.
	writeFile(t, root, "build.py", "x = 1")

	assert.Equal(t, []string{"build.py"}, collectedPaths(t, root, 10))
}

func TestCollectExtensionAllowlist(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.go", "package a")
	writeFile(t, root, "b.rs", "fn main() {}")
	writeFile(t, root, "c.md", "# readme")
	writeFile(t, root, "d.lock", "")

	assert.Equal(t, []string{"a.go", "b.rs"}, collectedPaths(t, root, 10))
}

func TestCollectSizeCeiling(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "small.py", "ok")
	writeFile(t, root, "big.py", strings.Repeat("x", 100_000))

	assert.Equal(t, []string{"small.py"}, collectedPaths(t, root, 10))
}

func TestCollectSkipsBinaryContent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "text.go", "package a")
	require.NoError(t, os.WriteFile(filepath.Join(root, "bin.go"), []byte{0xff, 0xfe, 0x00, 0x80}, 0o644))

	assert.Equal(t, []string{"text.go"}, collectedPaths(t, root, 10))
}

func TestCollectHonorsCap(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.go", "package a")
	writeFile(t, root, "b.go", "package b")
	writeFile(t, root, "c.go", "package c")
	writeFile(t, root, "d.go", "package d")

	paths := collectedPaths(t, root, 2)
	assert.Len(t, paths, 2)
	// Lexicographic traversal makes the cap deterministic.
	assert.Equal(t, []string{"a.go", "b.go"}, paths)
}

func TestCollectIdempotent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.ts", "1")
	writeFile(t, root, "src/sub/b.ts", "2")
	writeFile(t, root, "c.py", "3")

	first := collectedPaths(t, root, 10)
	second := collectedPaths(t, root, 10)
	assert.Equal(t, first, second)
}

func TestCollectReadsContent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.go", "package main")

	files := New(testLogger()).Collect(root, 10)
	require.Len(t, files, 1)
	assert.Equal(t, "package main", files[0].Content)
}
