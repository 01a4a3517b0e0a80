// Package config defines the configuration types for penenv.
// These are plain data structures; discovery and merging live in
// internal/configloader.
package config

import (
	"fmt"
	"time"
)

// OutputFormat specifies how span listings are printed.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON:
		return true
	default:
		return false
	}
}

// Flavor specifies the markdown flavor used for HTML export.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// DefaultDebounce is the autosave quiet period used when none is configured.
const DefaultDebounce = "500ms"

// StyleConfig overrides how one span kind is painted.
// Colors accept anything lipgloss understands: "#RRGGBB" or an ANSI index.
type StyleConfig struct {
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
	Bold       *bool  `yaml:"bold,omitempty"`
	Italic     *bool  `yaml:"italic,omitempty"`
	Underline  *bool  `yaml:"underline,omitempty"`
}

// ExportConfig controls HTML export.
type ExportConfig struct {
	Flavor Flavor `yaml:"flavor,omitempty"`

	// HardWraps renders single newlines as <br>. Nil means true, matching
	// how notes look in the editor.
	HardWraps *bool `yaml:"hard_wraps,omitempty"`

	// Unsafe passes raw HTML in notes through to the output.
	Unsafe bool `yaml:"unsafe,omitempty"`
}

// HardWrapsEnabled resolves HardWraps against its default.
func (e ExportConfig) HardWrapsEnabled() bool {
	return e.HardWraps == nil || *e.HardWraps
}

// Config is the root configuration structure.
type Config struct {
	// Workspace is the session directory holding notes.md and targets.txt.
	Workspace string `yaml:"workspace"`

	// Debounce is the autosave quiet period as a Go duration string.
	Debounce string `yaml:"debounce"`

	// Theme overrides span styles keyed by span kind name ("header",
	// "bold", "code_block", ...) or header tag ("h1".."h6").
	Theme map[string]StyleConfig `yaml:"theme"`

	Export ExportConfig `yaml:"export"`

	// CLI-level options (not persisted to config files).

	// Format specifies the span listing format.
	Format OutputFormat `yaml:"-"`

	// Color is the color mode: auto, always or never.
	Color string `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Workspace: ".",
		Debounce:  DefaultDebounce,
		Theme:     make(map[string]StyleConfig),
		Export: ExportConfig{
			Flavor: FlavorGFM,
		},
		Format: FormatText,
		Color:  "auto",
	}
}

// DebounceDuration parses Debounce, falling back to DefaultDebounce when unset.
func (c *Config) DebounceDuration() (time.Duration, error) {
	value := c.Debounce
	if value == "" {
		value = DefaultDebounce
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse debounce %q: %w", value, err)
	}
	return duration, nil
}
