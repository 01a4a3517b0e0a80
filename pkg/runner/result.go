package runner

import "github.com/yaklabco/penenv/pkg/reporter"

// FileOutcome is the scan result for one note.
type FileOutcome struct {
	Path string

	// Document is nil when Error is set.
	Document *reporter.Document

	Error error
}

// Stats aggregates a scan.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int

	Spans  int
	Blocks int

	// SpansByTag counts spans by tag across all notes.
	SpansByTag map[string]int

	// BlocksByLanguage counts fenced blocks by detected language.
	BlocksByLanguage map[string]int
}

// Result is the outcome of a scan, ordered by path.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasErrors reports whether any note could not be read.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{
		SpansByTag:       make(map[string]int),
		BlocksByLanguage: make(map[string]int),
	}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Document == nil {
		return
	}

	doc := outcome.Document
	r.Stats.FilesProcessed++
	r.Stats.Spans += len(doc.Spans)
	r.Stats.Blocks += len(doc.Blocks)
	for tag, count := range doc.CountByTag() {
		r.Stats.SpansByTag[tag] += count
	}
	for _, block := range doc.Blocks {
		r.Stats.BlocksByLanguage[doc.Language(block)]++
	}
}
