package configloader

import "github.com/yaklabco/penenv/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Theme: deep merge per key, then per style field
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Workspace != "" {
		result.Workspace = override.Workspace
	}
	if override.Debounce != "" {
		result.Debounce = override.Debounce
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}

	if override.Export.Flavor != "" {
		result.Export.Flavor = override.Export.Flavor
	}
	if override.Export.HardWraps != nil {
		result.Export.HardWraps = override.Export.HardWraps
	}
	// Unsafe can only be switched on by a later layer.
	if override.Export.Unsafe {
		result.Export.Unsafe = true
	}

	result.Theme = mergeTheme(base.Theme, override.Theme)

	return &result
}

// mergeTheme performs a deep merge of theme overrides.
func mergeTheme(base, override map[string]config.StyleConfig) map[string]config.StyleConfig {
	result := make(map[string]config.StyleConfig, len(base)+len(override))

	for key, style := range base {
		result[key] = style
	}

	for key, style := range override {
		if existing, ok := result[key]; ok {
			result[key] = mergeStyle(existing, style)
		} else {
			result[key] = style
		}
	}

	return result
}

// mergeStyle merges individual style overrides.
func mergeStyle(base, override config.StyleConfig) config.StyleConfig {
	result := base

	if override.Foreground != "" {
		result.Foreground = override.Foreground
	}
	if override.Background != "" {
		result.Background = override.Background
	}
	if override.Bold != nil {
		result.Bold = override.Bold
	}
	if override.Italic != nil {
		result.Italic = override.Italic
	}
	if override.Underline != nil {
		result.Underline = override.Underline
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
