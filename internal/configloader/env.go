package configloader

import (
	"fmt"
	"os"
	"sort"

	"github.com/yaklabco/penenv/pkg/config"
)

// envVarPrefix is the prefix for all penenv environment variables.
const envVarPrefix = "PENENV_"

// envMapping binds one environment variable to a config field.
type envMapping struct {
	field       string
	description string
	apply       func(cfg *config.Config, value string)
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"WORKSPACE": {
		field:       "workspace",
		description: "Session directory holding notes.md and targets.txt",
		apply:       func(cfg *config.Config, value string) { cfg.Workspace = value },
	},
	"DEBOUNCE": {
		field:       "debounce",
		description: "Autosave quiet period as a duration (e.g. 500ms)",
		apply:       func(cfg *config.Config, value string) { cfg.Debounce = value },
	},
	"FORMAT": {
		field:       "format",
		description: "Span listing format: text or json",
		apply:       func(cfg *config.Config, value string) { cfg.Format = config.OutputFormat(value) },
	},
	"COLOR": {
		field:       "color",
		description: "Color mode: auto, always, or never",
		apply:       func(cfg *config.Config, value string) { cfg.Color = value },
	},
	"FLAVOR": {
		field:       "export.flavor",
		description: "Markdown flavor for export: commonmark or gfm",
		apply:       func(cfg *config.Config, value string) { cfg.Export.Flavor = config.Flavor(value) },
	},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with PENENV_ (e.g., PENENV_WORKSPACE).
// Values are checked by Validate once all sources are merged.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for suffix, mapping := range envMappings {
		value, ok := os.LookupEnv(envVarPrefix + suffix)
		if !ok || value == "" {
			continue
		}
		if mapping.apply == nil {
			return fmt.Errorf("no setter for %s%s", envVarPrefix, suffix)
		}
		mapping.apply(cfg, value)
	}

	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}

// EnvVarNames returns the supported environment variable names, sorted.
func EnvVarNames() []string {
	names := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		names = append(names, envVarPrefix+suffix)
	}
	sort.Strings(names)
	return names
}
