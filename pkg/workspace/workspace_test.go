package workspace_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/penenv/pkg/workspace"
)

func TestNew(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ws, err := workspace.New(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "notes.md"), ws.NotesPath())
	assert.Equal(t, filepath.Join(dir, "targets.txt"), ws.TargetsPath())
	assert.Equal(t, filepath.Join(dir, "commands.log"), ws.CommandLogPath())

	cwd, err := os.Getwd()
	require.NoError(t, err)
	ws, err = workspace.New("")
	require.NoError(t, err)
	assert.Equal(t, cwd, ws.BaseDir)
}

func TestEnsure(t *testing.T) {
	t.Parallel()

	ws, err := workspace.New(filepath.Join(t.TempDir(), "htb", "box"))
	require.NoError(t, err)
	require.NoError(t, ws.Ensure(context.Background()))

	stat, err := os.Stat(ws.BaseDir)
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
}

func TestTargets(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		ws, err := workspace.New(t.TempDir())
		require.NoError(t, err)

		targets, err := ws.Targets(context.Background())
		require.NoError(t, err)
		assert.Empty(t, targets)
	})

	t.Run("skips comments and blanks", func(t *testing.T) {
		t.Parallel()

		ws, err := workspace.New(t.TempDir())
		require.NoError(t, err)

		content := "# scope\n10.0.0.1\n\n   \n  # out of scope\nexample.htb\r\n"
		require.NoError(t, os.WriteFile(ws.TargetsPath(), []byte(content), 0o644))

		targets, err := ws.Targets(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"10.0.0.1", "example.htb"}, targets)
	})

	t.Run("entries after a very long line survive", func(t *testing.T) {
		t.Parallel()

		long := "# " + strings.Repeat("x", 70*1024)
		got := workspace.ParseTargets([]byte("10.0.0.1\n" + long + "\n10.0.0.2"))
		assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, got)
	})
}

func TestStamp(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 9, 7, 5, 1, 0, time.UTC)
	assert.Equal(t, "[2024-03-09 07:05:01] ", workspace.Stamp(at))
}
