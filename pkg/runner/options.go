// Package runner classifies many note files concurrently.
package runner

// Options controls a multi-note scan.
type Options struct {
	// Paths are files or directories to scan. Empty means WorkingDir.
	Paths []string

	// WorkingDir resolves relative Paths and anchors ExcludeGlobs.
	// Empty means the process working directory.
	WorkingDir string

	// Extensions lists the note extensions, lowercase with a leading dot.
	// Empty means DefaultExtensions().
	Extensions []string

	// ExcludeGlobs skip matching files and directories, e.g. "loot/**".
	ExcludeGlobs []string

	// FollowSymlinks descends into symlinked directories.
	FollowSymlinks bool

	// Jobs bounds the worker count. Zero or negative means runtime.NumCPU().
	Jobs int
}

// DefaultExtensions returns the extensions scanned when none are given.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
