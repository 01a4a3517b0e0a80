package workspace_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/penenv/pkg/workspace"
)

func TestParseCommands(t *testing.T) {
	t.Parallel()

	content := []byte("[2026-03-01 09:15:00] nmap -sV 10.0.0.5\r\n\n  \nwhoami\n[bad stamp] id\n")
	entries := workspace.ParseCommands(content)
	require.Len(t, entries, 3)

	assert.Equal(t, "nmap -sV 10.0.0.5", entries[0].Command)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 15, 0, 0, time.Local), entries[0].Time)

	assert.Equal(t, "whoami", entries[1].Command)
	assert.True(t, entries[1].Time.IsZero())

	assert.Equal(t, "[bad stamp] id", entries[2].Command)
	assert.True(t, entries[2].Time.IsZero())
}

func TestParseCommands_LongLine(t *testing.T) {
	t.Parallel()

	payload := "echo " + strings.Repeat("QUFB", 70*1024/4)
	content := []byte("[2026-03-01 09:15:00] id\n[2026-03-01 09:16:00] " + payload + "\n[2026-03-01 09:17:00] whoami\n")

	entries := workspace.ParseCommands(content)
	require.Len(t, entries, 3)
	assert.Equal(t, payload, entries[1].Command)
	assert.Equal(t, "whoami", entries[2].Command)
}

func TestCommands(t *testing.T) {
	t.Parallel()

	ws, err := workspace.New(t.TempDir())
	require.NoError(t, err)

	entries, err := ws.Commands(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries, "missing log is empty")

	require.NoError(t, os.WriteFile(ws.CommandLogPath(), []byte("[2026-03-01 09:15:00] id\n"), 0o644))
	entries, err = ws.Commands(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "id", entries[0].Command)
}

func TestPromptHook(t *testing.T) {
	t.Parallel()

	ws := &workspace.Workspace{BaseDir: "/tmp/it's here"}
	hook := ws.PromptHook()

	assert.Contains(t, hook, "history -a;")
	assert.Contains(t, hook, `>> '/tmp/it'\''s here/commands.log'`)
}
