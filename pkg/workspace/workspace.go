// Package workspace models a pentest session directory: the notes file,
// the targets list and the command log that live side by side in it.
//
// A Workspace is built once at startup and passed to whatever needs it;
// nothing in this package keeps process-wide state.
package workspace

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/penenv/pkg/fsutil"
)

// File names inside a workspace directory.
const (
	NotesFile      = "notes.md"
	TargetsFile    = "targets.txt"
	CommandLogFile = "commands.log"
)

// StampLayout formats the timestamp inserted into notes.
const StampLayout = "[2006-01-02 15:04:05] "

// Workspace is a session directory.
type Workspace struct {
	// BaseDir is the directory holding the session files.
	BaseDir string
}

// New returns a Workspace rooted at dir, resolved to an absolute path.
// An empty dir means the current directory.
func New(dir string) (*Workspace, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace %q: %w", dir, err)
	}
	return &Workspace{BaseDir: abs}, nil
}

// Path joins name onto the workspace directory.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.BaseDir, name)
}

func (w *Workspace) NotesPath() string      { return w.Path(NotesFile) }
func (w *Workspace) TargetsPath() string    { return w.Path(TargetsFile) }
func (w *Workspace) CommandLogPath() string { return w.Path(CommandLogFile) }

// Ensure creates the workspace directory if it does not exist.
func (w *Workspace) Ensure(ctx context.Context) error {
	return fsutil.EnsureDir(ctx, w.BaseDir)
}

// Targets returns the non-empty, non-comment lines of the targets file.
// A missing file yields an empty list.
func (w *Workspace) Targets(ctx context.Context) ([]string, error) {
	content, _, err := fsutil.ReadFileOrEmpty(ctx, w.TargetsPath())
	if err != nil {
		return nil, fmt.Errorf("load targets: %w", err)
	}
	return ParseTargets(content), nil
}

// ParseTargets extracts targets from file content. Lines that are blank or
// start with '#' after trimming are skipped; kept lines are returned as-is.
func ParseTargets(content []byte) []string {
	var targets []string
	for raw := range bytes.Lines(content) {
		line := strings.TrimSuffix(strings.TrimSuffix(string(raw), "\n"), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		targets = append(targets, line)
	}
	return targets
}

// Stamp formats t the way notes timestamps are inserted.
func Stamp(t time.Time) string {
	return t.Format(StampLayout)
}
