package highlight

import (
	"strings"
	"unicode"
)

// Block is a fenced code block found in a document.
type Block struct {
	// StartLine and EndLine are 0-based indices of the opening and closing
	// fence lines. For an unterminated block EndLine is the last line.
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`

	// Start and End are rune offsets covering the fence lines inclusive.
	Start int `json:"start"`
	End   int `json:"end"`

	// Info is the trimmed text following the opening fence.
	Info string `json:"info,omitempty"`

	// Body holds the interior lines joined by newlines.
	Body string `json:"-"`

	Closed bool `json:"closed"`
}

// Blocks returns the fenced code blocks of document using the same fence
// toggling as Classify.
func Blocks(document string) []Block {
	var blocks []Block
	var current *Block
	var body []string

	pos := 0
	lines := strings.Split(document, "\n")

	for idx, line := range lines {
		lineLen := len([]rune(line))
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)

		switch {
		case strings.HasPrefix(trimmed, fence) && current == nil:
			current = &Block{
				StartLine: idx,
				Start:     pos,
				Info:      strings.TrimSpace(strings.TrimPrefix(trimmed, fence)),
			}
			body = body[:0]
		case strings.HasPrefix(trimmed, fence):
			current.EndLine = idx
			current.End = pos + lineLen
			current.Body = strings.Join(body, "\n")
			current.Closed = true
			blocks = append(blocks, *current)
			current = nil
		case current != nil:
			body = append(body, line)
		}

		pos += lineLen + 1
	}

	if current != nil {
		current.EndLine = len(lines) - 1
		current.End = pos - 1
		current.Body = strings.Join(body, "\n")
		blocks = append(blocks, *current)
	}

	return blocks
}
