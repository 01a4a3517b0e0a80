package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
)

// jsonVersion is bumped when the output shape changes.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string      `json:"version"`
	Path    string      `json:"path"`
	Spans   []JSONSpan  `json:"spans"`
	Blocks  []JSONBlock `json:"blocks"`
	Summary JSONSummary `json:"summary"`
}

// JSONSpan represents a single span with its resolved position.
type JSONSpan struct {
	Kind   string `json:"kind"`
	Tag    string `json:"tag"`
	Level  int    `json:"level,omitempty"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Text   string `json:"text"`
}

// JSONBlock represents a fenced code block.
type JSONBlock struct {
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Info      string `json:"info,omitempty"`
	Language  string `json:"language"`
	Closed    bool   `json:"closed"`
}

// JSONSummary contains aggregate counts.
type JSONSummary struct {
	Spans  int            `json:"spans"`
	Blocks int            `json:"blocks"`
	ByTag  map[string]int `json:"byTag"`
}

// JSONReporter formats documents as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, doc *Document) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(doc)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.Spans, nil
}

func (r *JSONReporter) buildOutput(doc *Document) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Spans:   make([]JSONSpan, 0),
		Blocks:  make([]JSONBlock, 0),
		Summary: JSONSummary{ByTag: make(map[string]int)},
	}

	if doc == nil {
		return output
	}
	output.Path = doc.Path

	for _, span := range doc.Spans {
		line, column := doc.Position(span.Start)
		output.Spans = append(output.Spans, JSONSpan{
			Kind:   span.Kind.String(),
			Tag:    span.Tag(),
			Level:  span.Level,
			Start:  span.Start,
			End:    span.End,
			Line:   line,
			Column: column,
			Text:   span.Text(doc.Text),
		})
	}

	for _, block := range doc.Blocks {
		output.Blocks = append(output.Blocks, JSONBlock{
			StartLine: block.StartLine + 1,
			EndLine:   block.EndLine + 1,
			Start:     block.Start,
			End:       block.End,
			Info:      block.Info,
			Language:  doc.Language(block),
			Closed:    block.Closed,
		})
	}

	output.Summary.Spans = len(output.Spans)
	output.Summary.Blocks = len(output.Blocks)
	output.Summary.ByTag = doc.CountByTag()

	return output
}
