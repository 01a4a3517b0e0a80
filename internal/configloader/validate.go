package configloader

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/penenv/pkg/config"
	"github.com/yaklabco/penenv/pkg/highlight"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "theme.link.foreground").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown theme keys).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownFlavors lists valid flavor values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFlavors = map[config.Flavor]bool{
	config.FlavorCommonMark: true,
	config.FlavorGFM:        true,
}

// knownColorModes lists valid color mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownColorModes = map[string]bool{
	"auto":   true,
	"always": true,
	"never":  true,
}

// hexColor matches "#RGB" and "#RRGGBB".
//
//nolint:gochecknoglobals // Compiled once.
var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// maxANSIColor is the highest ANSI 256 palette index.
const maxANSIColor = 255

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Debounce != "" {
		if debounce, err := cfg.DebounceDuration(); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "debounce",
				Value:   cfg.Debounce,
				Message: fmt.Sprintf("invalid duration %q; use Go duration syntax such as 500ms or 2s", cfg.Debounce),
			})
		} else if debounce < 0 {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "debounce",
				Value:   cfg.Debounce,
				Message: "debounce must not be negative",
			})
		}
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json", cfg.Format),
		})
	}

	if cfg.Color != "" && !knownColorModes[cfg.Color] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "color",
			Value:   cfg.Color,
			Message: fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", cfg.Color),
		})
	}

	if cfg.Export.Flavor != "" && !knownFlavors[cfg.Export.Flavor] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "export.flavor",
			Value:   cfg.Export.Flavor,
			Message: fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", cfg.Export.Flavor),
		})
	}

	validateTheme(cfg, result)

	return result
}

// validateTheme warns about unknown keys and rejects malformed colors.
func validateTheme(cfg *config.Config, result *ValidationResult) {
	keys := make([]string, 0, len(cfg.Theme))
	for key := range cfg.Theme {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, _, ok := highlight.ParseTag(key); !ok {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "theme." + key,
				Value:   key,
				Message: fmt.Sprintf("unknown theme key %q; it will be ignored", key),
			})
			continue
		}

		style := cfg.Theme[key]
		colors := []struct{ field, value string }{
			{field: "foreground", value: style.Foreground},
			{field: "background", value: style.Background},
		}
		for _, color := range colors {
			if color.value != "" && !IsValidColor(color.value) {
				result.Errors = append(result.Errors, ValidationError{
					Field:   "theme." + key + "." + color.field,
					Value:   color.value,
					Message: fmt.Sprintf("invalid color %q; use #RGB, #RRGGBB, or an ANSI index 0-255", color.value),
				})
			}
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFlavor returns true if the flavor is valid.
func IsValidFlavor(f config.Flavor) bool {
	return knownFlavors[f]
}

// IsValidColorMode returns true if the color mode is valid.
func IsValidColorMode(mode string) bool {
	return knownColorModes[mode]
}

// IsValidColor returns true for hex colors and ANSI palette indexes.
func IsValidColor(value string) bool {
	if hexColor.MatchString(value) {
		return true
	}
	index, err := strconv.Atoi(value)
	return err == nil && index >= 0 && index <= maxANSIColor
}
