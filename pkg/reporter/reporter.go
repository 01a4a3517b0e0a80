// Package reporter writes classified notes as span listings.
package reporter

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/yaklabco/penenv/pkg/config"
)

// bufWriterSize sizes the buffered writer behind each reporter.
const bufWriterSize = 64 * 1024

// Reporter writes one classified document.
type Reporter interface {
	// Report returns the number of spans written.
	Report(ctx context.Context, doc *Document) (int, error)
}

// Format names an output format.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

//nolint:gochecknoglobals // Read-only registry.
var constructors = map[Format]func(Options) Reporter{
	FormatText: func(opts Options) Reporter { return NewTextReporter(opts) },
	FormatJSON: func(opts Options) Reporter { return NewJSONReporter(opts) },
}

// ParseFormat maps a format name to a Format. An empty name means text.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	format := Format(name)
	if _, ok := constructors[format]; !ok {
		return "", fmt.Errorf("unknown format %q; valid formats: %s", name, strings.Join(formatNames(), ", "))
	}
	return format, nil
}

func formatNames() []string {
	names := make([]string, 0, len(constructors))
	for format := range constructors {
		names = append(names, string(format))
	}
	slices.Sort(names)
	return names
}

// Options configures a Reporter.
type Options struct {
	// Writer receives the output. Nil means os.Stdout.
	Writer io.Writer

	Format Format

	// Color is "auto", "always" or "never".
	Color string

	// Theme overrides span styles in text output.
	Theme map[string]config.StyleConfig

	// ShowSummary appends per-tag counts to text output.
	ShowSummary bool

	// Compact disables JSON indentation.
	Compact bool
}

// New returns the Reporter for opts.Format.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	format, err := ParseFormat(string(opts.Format))
	if err != nil {
		return nil, fmt.Errorf("unsupported format: %w", err)
	}
	return constructors[format](opts), nil
}
