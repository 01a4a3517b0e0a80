package reporter

import (
	"bufio"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/yaklabco/penenv/internal/ui/pretty"
)

// Text layout constants.
const (
	tagColumnWidth = 11
	maxSnippetLen  = 60
	ellipsis       = "…"
)

// TextReporter formats documents as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	theme  *pretty.Theme
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		theme:  pretty.NewTheme(opts.Writer, colorEnabled, opts.Theme),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, doc *Document) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if doc == nil || len(doc.Spans) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No spans."))
		}
		return 0, nil
	}

	if doc.Path != "" {
		fmt.Fprintln(r.bw, r.styles.FilePath.Render(doc.Path))
	}

	for _, span := range doc.Spans {
		line, column := doc.Position(span.Start)
		tag := span.Tag()
		fmt.Fprintf(r.bw, "  %s  %s  %s\n",
			r.styles.Location.Render(fmt.Sprintf("%4d:%-3d", line, column)),
			r.theme.Render(tag, padRight(tag, tagColumnWidth)),
			snippet(span.Text(doc.Text)),
		)
	}

	for _, block := range doc.Blocks {
		status := ""
		if !block.Closed {
			status = " " + r.styles.Warning.Render("(unterminated)")
		}
		fmt.Fprintf(r.bw, "  %s  %s  %s%s\n",
			r.styles.Location.Render(fmt.Sprintf("%4d-%-3d", block.StartLine+1, block.EndLine+1)),
			r.theme.Render("code_block", padRight("block", tagColumnWidth)),
			doc.Language(block),
			status,
		)
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprintln(r.bw, r.formatSummary(doc))
	}

	return len(doc.Spans), nil
}

// formatSummary renders "N spans: tag=count, ..." with tags sorted by name.
func (r *TextReporter) formatSummary(doc *Document) string {
	counts := doc.CountByTag()
	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, fmt.Sprintf("%s=%d", tag, counts[tag]))
	}

	return fmt.Sprintf("%s %s",
		r.styles.Title.Render(fmt.Sprintf("%d spans:", len(doc.Spans))),
		r.styles.Value.Render(strings.Join(parts, ", ")),
	)
}

// snippet shortens span text for single-line display.
func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= maxSnippetLen {
		return text
	}
	return string(runes[:maxSnippetLen-1]) + ellipsis
}

func padRight(str string, width int) string {
	if len(str) >= width {
		return str
	}
	return str + strings.Repeat(" ", width-len(str))
}
