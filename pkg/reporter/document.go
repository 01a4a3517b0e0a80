package reporter

import (
	"sort"

	"github.com/yaklabco/penenv/pkg/highlight"
	"github.com/yaklabco/penenv/pkg/langdetect"
)

// Document is one classified note ready for reporting.
type Document struct {
	// Path names the source; "-" for stdin.
	Path string

	Text   string
	Spans  []highlight.Span
	Blocks []highlight.Block

	// lineStarts holds the rune offset of every line start.
	lineStarts []int
}

// Analyze classifies text and collects its code blocks.
func Analyze(path, text string) *Document {
	doc := &Document{
		Path:   path,
		Text:   text,
		Spans:  highlight.Classify(text),
		Blocks: highlight.Blocks(text),
	}

	doc.lineStarts = []int{0}
	offset := 0
	for _, r := range text {
		offset++
		if r == '\n' {
			doc.lineStarts = append(doc.lineStarts, offset)
		}
	}

	return doc
}

// Position converts a rune offset to a 1-based line and column.
func (d *Document) Position(offset int) (int, int) {
	line := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}
	return line + 1, offset - d.lineStarts[line] + 1
}

// Language returns the detected fence language of block.
func (d *Document) Language(block highlight.Block) string {
	return langdetect.ForBlock(block.Info, []byte(block.Body))
}

// CountByTag returns how many spans carry each tag.
func (d *Document) CountByTag() map[string]int {
	counts := make(map[string]int)
	for _, span := range d.Spans {
		counts[span.Tag()]++
	}
	return counts
}
