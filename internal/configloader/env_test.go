package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/penenv/pkg/config"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PENENV_WORKSPACE", "/srv/box")
	t.Setenv("PENENV_DEBOUNCE", "250ms")
	t.Setenv("PENENV_FORMAT", "json")
	t.Setenv("PENENV_COLOR", "never")
	t.Setenv("PENENV_FLAVOR", "commonmark")

	cfg := config.NewConfig()
	require.NoError(t, LoadFromEnv(cfg))

	assert.Equal(t, "/srv/box", cfg.Workspace)
	assert.Equal(t, "250ms", cfg.Debounce)
	assert.Equal(t, config.FormatJSON, cfg.Format)
	assert.Equal(t, "never", cfg.Color)
	assert.Equal(t, config.FlavorCommonMark, cfg.Export.Flavor)

	assert.NoError(t, LoadFromEnv(nil))
}

func TestLoadFromEnv_EmptyValuesIgnored(t *testing.T) {
	t.Setenv("PENENV_WORKSPACE", "")

	cfg := config.NewConfig()
	require.NoError(t, LoadFromEnv(cfg))
	assert.Equal(t, ".", cfg.Workspace)
}

func TestEnvVarNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		"PENENV_COLOR", "PENENV_DEBOUNCE", "PENENV_FLAVOR", "PENENV_FORMAT", "PENENV_WORKSPACE",
	}, EnvVarNames())
	assert.Equal(t, "PENENV_FLAVOR", GetEnvVarName("export.flavor"))
	assert.Empty(t, GetEnvVarName("theme"))
	assert.Len(t, ListEnvVars(), 5)
}
