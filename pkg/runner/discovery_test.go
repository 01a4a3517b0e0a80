package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/penenv/pkg/runner"
)

// writeTree creates files (relative paths) under a new temp dir.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
	return dir
}

func relAll(t *testing.T, dir string, files []string) []string {
	t.Helper()

	rel := make([]string, 0, len(files))
	for _, file := range files {
		r, err := filepath.Rel(dir, file)
		if err != nil {
			t.Fatalf("rel: %v", err)
		}
		rel = append(rel, filepath.ToSlash(r))
	}
	return rel
}

func assertFiles(t *testing.T, got, want []string) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("expected %d files %v, got %d %v", len(want), want, len(got), got)
	}
	for idx := range want {
		if got[idx] != want[idx] {
			t.Errorf("file %d: expected %s, got %s", idx, want[idx], got[idx])
		}
	}
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"notes.md":              "# box",
		"hosts/10.0.0.5.md":     "# web",
		"hosts/dc01.markdown":   "# dc",
		"loot/shadow.txt":       "root:x",
		".git/notes.md":         "# hidden",
		"hosts/.draft.md":       "# hidden",
		"scripts/exploit.py":    "print()",
		"hosts/nested/ftp.MD":   "# ftp",
		"targets.txt":           "10.0.0.5",
		"screenshots/index.md":  "![x](a.png)",
		"screenshots/empty.png": "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	assertFiles(t, relAll(t, dir, files), []string{
		"hosts/10.0.0.5.md",
		"hosts/dc01.markdown",
		"hosts/nested/ftp.MD",
		"notes.md",
		"screenshots/index.md",
	})
}

func TestDiscover_ExcludeGlobs(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"notes.md":           "# box",
		"archive/old.md":     "# old",
		"hosts/web.md":       "# web",
		"hosts/web.draft.md": "# draft",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"archive/**", "*.draft.md"},
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	assertFiles(t, relAll(t, dir, files), []string{"hosts/web.md", "notes.md"})
}

func TestDiscover_PathsAndDeduplication(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"a.md":       "a",
		"sub/b.md":   "b",
		"report.txt": "r",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{"sub", "a.md", "sub/b.md", "report.txt"},
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	assertFiles(t, relAll(t, dir, files), []string{"a.md", "sub/b.md"})
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"a.md":  "a",
		"b.txt": "b",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{".txt"},
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	assertFiles(t, relAll(t, dir, files), []string{"b.txt"})
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"missing"},
	})
	if err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{"a.md": "a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := runner.Discover(ctx, runner.Options{WorkingDir: dir}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{"notes.md": "a"})
	shared := writeTree(t, map[string]string{"methodology.md": "m"})
	if err := os.Symlink(shared, filepath.Join(dir, "shared")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected symlinked directory to be skipped, got %v", files)
	}

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected symlinked directory to be walked, got %v", files)
	}
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	exts := runner.DefaultExtensions()
	if len(exts) != 2 || exts[0] != ".md" || exts[1] != ".markdown" {
		t.Errorf("unexpected default extensions %v", exts)
	}
}
