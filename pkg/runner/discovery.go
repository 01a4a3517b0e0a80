package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Discover finds note files matching opts. It returns a sorted list of
// absolute paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	w, err := newWalker(opts)
	if err != nil {
		return nil, err
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		target := input
		if !filepath.IsAbs(target) {
			target = filepath.Join(w.workDir, target)
		}
		target = filepath.Clean(target)

		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			// Explicit files skip the hidden-name rule but not the filters.
			if w.wants(target) {
				w.add(target)
			}
			continue
		}
		if err := w.walk(ctx, target); err != nil {
			return nil, err
		}
	}

	slices.Sort(w.found)
	return w.found, nil
}

// walker accumulates matching notes across the input paths.
type walker struct {
	workDir    string
	extensions []string
	excludes   []glob.Glob
	follow     bool

	seen  map[string]struct{}
	found []string
}

func newWalker(opts Options) (*walker, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	excludes := make([]glob.Glob, 0, len(opts.ExcludeGlobs))
	for _, pattern := range opts.ExcludeGlobs {
		compiled, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
		excludes = append(excludes, compiled)
	}

	extensions := make([]string, 0, len(opts.effectiveExtensions()))
	for _, ext := range opts.effectiveExtensions() {
		extensions = append(extensions, strings.ToLower(ext))
	}

	return &walker{
		workDir:    workDir,
		extensions: extensions,
		excludes:   excludes,
		follow:     opts.FollowSymlinks,
		seen:       make(map[string]struct{}),
	}, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

func (w *walker) add(path string) {
	if _, dup := w.seen[path]; dup {
		return
	}
	w.seen[path] = struct{}{}
	w.found = append(w.found, path)
}

// walk adds every note below root. Hidden entries below root are skipped
// because they hold tool state rather than notes.
func (w *walker) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		switch {
		case entry.IsDir():
			if hidden || w.excluded(path, true) {
				return filepath.SkipDir
			}
		case hidden:
		case entry.Type()&fs.ModeSymlink != 0:
			return w.symlink(ctx, path)
		case w.wants(path):
			w.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// symlink resolves a link found during a walk. Broken links are ignored and
// linked directories are only entered when following is enabled. WalkDir
// uses Lstat on its root, so a linked directory is walked via its target.
func (w *walker) symlink(ctx context.Context, path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // broken link
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // unreadable target
	}
	if info.IsDir() {
		if !w.follow {
			return nil
		}
		return w.walk(ctx, target)
	}
	if w.wants(path) {
		w.add(path)
	}
	return nil
}

// wants reports whether path carries a note extension and is not excluded.
func (w *walker) wants(path string) bool {
	return slices.Contains(w.extensions, strings.ToLower(filepath.Ext(path))) &&
		!w.excluded(path, false)
}

// excluded matches path, relative to the working directory, against the
// exclude globs. Patterns without a slash also match the base name, and a
// directory "dir" matches "dir/**".
func (w *walker) excluded(path string, dir bool) bool {
	if len(w.excludes) == 0 {
		return false
	}

	rel, err := filepath.Rel(w.workDir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	candidates := []string{rel, filepath.Base(path)}
	if dir {
		candidates = append(candidates, rel+"/")
	}

	for _, pattern := range w.excludes {
		for _, candidate := range candidates {
			if pattern.Match(candidate) {
				return true
			}
		}
	}
	return false
}
