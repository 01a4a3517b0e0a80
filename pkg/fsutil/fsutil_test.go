package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/penenv/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("returns content and info", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "notes.md")
		require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

		content, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(content))
		require.NotNil(t, info)
		assert.Equal(t, int64(5), info.Size)
		assert.Equal(t, path, info.Path)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(ctx, filepath.Join(t.TempDir(), "nope"))
		assert.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(ctx, t.TempDir())
		assert.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})
}

func TestReadFileOrEmpty(t *testing.T) {
	t.Parallel()

	content, info, err := fsutil.ReadFileOrEmpty(context.Background(), filepath.Join(t.TempDir(), "notes.md"))
	require.NoError(t, err)
	assert.Empty(t, content)
	assert.Nil(t, info)
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "notes.md")
		require.NoError(t, os.WriteFile(path, []byte("same"), 0o644))

		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.False(t, modified)
	})

	t.Run("size change", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "notes.md")
		require.NoError(t, os.WriteFile(path, []byte("short"), 0o644))

		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("much longer content"), 0o644))

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "notes.md")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("nil info", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.CheckModified(ctx, nil)
		assert.ErrorIs(t, err, fsutil.ErrNilFileInfo)
	})
}

func TestStat(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "notes.md")
	content := []byte("saved")
	require.NoError(t, fsutil.WriteAtomic(context.Background(), path, content, 0))

	info, err := fsutil.Stat(path, content)
	require.NoError(t, err)

	modified, err := fsutil.CheckModified(context.Background(), info)
	require.NoError(t, err)
	assert.False(t, modified)
}
