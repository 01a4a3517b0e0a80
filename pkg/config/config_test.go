package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/penenv/pkg/config"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, ".", cfg.Workspace)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Equal(t, config.FlavorGFM, cfg.Export.Flavor)
	assert.True(t, cfg.Export.HardWrapsEnabled())

	off := false
	cfg.Export.HardWraps = &off
	assert.False(t, cfg.Export.HardWrapsEnabled())
	assert.NotNil(t, cfg.Theme)

	debounce, err := cfg.DebounceDuration()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, debounce)
}

func TestDebounceDuration(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Debounce: "2s"}
	got, err := cfg.DebounceDuration()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, got)

	cfg.Debounce = ""
	got, err = cfg.DebounceDuration()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, got)

	cfg.Debounce = "soon"
	_, err = cfg.DebounceDuration()
	assert.Error(t, err)
}

func TestOutputFormat_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, config.FormatText.IsValid())
	assert.True(t, config.FormatJSON.IsValid())
	assert.False(t, config.OutputFormat("sarif").IsValid())
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	bold := true
	cfg := config.NewConfig()
	cfg.Workspace = "/engagements/acme"
	cfg.Theme["link"] = config.StyleConfig{Foreground: "#569CD6", Bold: &bold}
	cfg.Format = config.FormatJSON

	data, err := cfg.ToYAMLWithHeader("# penenv configuration")
	require.NoError(t, err)
	assert.Contains(t, string(data), "# penenv configuration\n\n")
	assert.NotContains(t, string(data), "format", "CLI-only fields are not serialized")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, "/engagements/acme", parsed.Workspace)
	assert.Equal(t, "#569CD6", parsed.Theme["link"].Foreground)
	require.NotNil(t, parsed.Theme["link"].Bold)
	assert.True(t, *parsed.Theme["link"].Bold)
}

func TestFromYAML_Invalid(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("workspace: [unclosed"))
	assert.Error(t, err)

	cfg, err := config.FromYAML([]byte(""))
	require.NoError(t, err)
	assert.NotNil(t, cfg.Theme)
}

func TestClone(t *testing.T) {
	t.Parallel()

	italic := true
	cfg := config.NewConfig()
	cfg.Theme["blockquote"] = config.StyleConfig{Italic: &italic}

	clone := cfg.Clone()
	*clone.Theme["blockquote"].Italic = false
	clone.Theme["bold"] = config.StyleConfig{}

	assert.True(t, *cfg.Theme["blockquote"].Italic)
	assert.NotContains(t, cfg.Theme, "bold")
	assert.Nil(t, (*config.Config)(nil).Clone())
}
