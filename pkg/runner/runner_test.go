package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/penenv/pkg/fsutil"
	"github.com/yaklabco/penenv/pkg/runner"
)

func TestRun(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"notes.md":      "# Box\n- **ssh** open\n",
		"hosts/web.md":  "## Web\n```\n#!/bin/bash\nid\n```\n",
		"hosts/db.md":   "plain text only",
		"hosts/ftp.txt": "# ignored",
	})

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 2})
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	assert.Equal(t, filepath.Join(dir, "hosts", "db.md"), result.Files[0].Path)
	assert.Equal(t, filepath.Join(dir, "hosts", "web.md"), result.Files[1].Path)
	assert.Equal(t, filepath.Join(dir, "notes.md"), result.Files[2].Path)

	for _, outcome := range result.Files {
		require.NoError(t, outcome.Error, outcome.Path)
		require.NotNil(t, outcome.Document, outcome.Path)
	}
	assert.Empty(t, result.Files[0].Document.Spans)

	stats := result.Stats
	assert.Equal(t, 3, stats.FilesDiscovered)
	assert.Equal(t, 3, stats.FilesProcessed)
	assert.Zero(t, stats.FilesErrored)
	assert.False(t, result.HasErrors())

	// notes.md: h1, list, bold. web.md: h2 and four code_block lines.
	assert.Equal(t, 8, stats.Spans)
	assert.Equal(t, 1, stats.Blocks)
	assert.Equal(t, 4, stats.SpansByTag["code_block"])
	assert.Equal(t, 1, stats.SpansByTag["h1"])
	assert.Equal(t, 1, stats.SpansByTag["h2"])
	assert.Equal(t, 1, stats.BlocksByLanguage["bash"])
}

func TestRun_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Zero(t, result.Stats.FilesDiscovered)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{"a.md": "a", "b.md": "b"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, runner.Options{WorkingDir: dir})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("`id`"), 0o644))

	outcome := runner.ScanFile(context.Background(), path)
	require.NoError(t, outcome.Error)
	require.Len(t, outcome.Document.Spans, 1)
	assert.Equal(t, "id", outcome.Document.Spans[0].Text(outcome.Document.Text))

	outcome = runner.ScanFile(context.Background(), filepath.Join(dir, "missing.md"))
	assert.ErrorIs(t, outcome.Error, fsutil.ErrNotFound)
	assert.Nil(t, outcome.Document)

	var result runner.Result
	assert.False(t, result.HasErrors())
}
