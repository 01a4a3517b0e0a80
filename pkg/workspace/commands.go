package workspace

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yaklabco/penenv/pkg/fsutil"
)

// CommandEntry is one line of the command log.
type CommandEntry struct {
	// Time is zero when the line carries no parseable stamp.
	Time    time.Time
	Command string
}

// Commands returns the entries of the command log in file order.
// A missing log yields an empty list.
func (w *Workspace) Commands(ctx context.Context) ([]CommandEntry, error) {
	content, _, err := fsutil.ReadFileOrEmpty(ctx, w.CommandLogPath())
	if err != nil {
		return nil, fmt.Errorf("load command log: %w", err)
	}
	return ParseCommands(content), nil
}

// ParseCommands parses "[YYYY-MM-DD HH:MM:SS] command" lines. Lines without
// a stamp are kept with a zero Time; blank lines are skipped. Lines have no
// length limit, so long pasted payloads do not hide later entries.
func ParseCommands(content []byte) []CommandEntry {
	var entries []CommandEntry
	for raw := range bytes.Lines(content) {
		line := strings.TrimRight(string(raw), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		entry := CommandEntry{Command: line}
		if len(line) >= len(StampLayout) {
			stamp, err := time.ParseInLocation(StampLayout, line[:len(StampLayout)], time.Local)
			if err == nil {
				entry.Time = stamp
				entry.Command = line[len(StampLayout):]
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

// PromptHook returns a bash PROMPT_COMMAND snippet that appends every new
// history entry to the command log with a stamp.
func (w *Workspace) PromptHook() string {
	logPath := strings.ReplaceAll(w.CommandLogPath(), `'`, `'\''`)
	return `history -a; __penenv_last_cmd=$(HISTTIMEFORMAT= history 1 | sed 's/^[ ]*[0-9]*[ ]*//'); ` +
		`if [ -z "$__penenv_prev_cmd" ]; then __penenv_prev_cmd="$__penenv_last_cmd"; fi; ` +
		`if [ -n "$__penenv_last_cmd" ] && [ "$__penenv_last_cmd" != "$__penenv_prev_cmd" ]; then ` +
		`echo "[$(date '+%Y-%m-%d %H:%M:%S')] $__penenv_last_cmd" >> '` + logPath + `'; ` +
		`__penenv_prev_cmd="$__penenv_last_cmd"; fi`
}
