package highlight

import (
	"strings"
	"unicode"
)

// fence opens and closes a code block when it leads a line.
const fence = "```"

// Classify scans document and returns the spans it detects, in detection order.
//
// Each line gets at most one line-level span (code block, header, block quote
// or list marker). Lines outside fenced code blocks are also scanned for inline
// bold, italic, code and link spans. Offsets are rune indices into document.
// Classify keeps no state between calls and never fails: unterminated
// constructs produce no span, and an unterminated fence marks every
// remaining line as code.
func Classify(document string) []Span {
	var spans []Span

	pos := 0
	inCodeBlock := false

	for _, line := range strings.Split(document, "\n") {
		runes := []rune(line)
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)

		switch {
		case strings.HasPrefix(trimmed, fence):
			inCodeBlock = !inCodeBlock
			spans = append(spans, Span{Kind: CodeBlock, Start: pos, End: pos + len(runes)})
		case inCodeBlock:
			spans = append(spans, Span{Kind: CodeBlock, Start: pos, End: pos + len(runes)})
		default:
			indent := len(runes) - len([]rune(trimmed))
			if span, ok := classifyLine(trimmed, pos, indent, len(runes)); ok {
				spans = append(spans, span)
			}
			spans = scanInline(spans, runes, pos)
		}

		pos += len(runes) + 1
	}

	return spans
}

// classifyLine applies the line-level checks in priority order.
// lineStart is the document offset of the line and indent the rune
// length of its leading whitespace.
func classifyLine(trimmed string, lineStart, indent, lineLen int) (Span, bool) {
	whole := Span{Start: lineStart, End: lineStart + lineLen}

	switch {
	case strings.HasPrefix(trimmed, "#"):
		level := headerLevel(trimmed)
		if level == 0 {
			return Span{}, false
		}
		whole.Kind = Header
		whole.Level = level
		return whole, true
	case strings.HasPrefix(trimmed, ">"):
		whole.Kind = BlockQuote
		return whole, true
	case isListMarker(trimmed):
		marker := lineStart + indent
		return Span{Kind: ListMarker, Start: marker, End: marker + 1}, true
	default:
		return Span{}, false
	}
}

// headerLevel returns the ATX level of trimmed, or 0 when the run of '#'
// is longer than MaxHeaderLevel or not followed by a space.
func headerLevel(trimmed string) int {
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level > MaxHeaderLevel || level >= len(trimmed) || trimmed[level] != ' ' {
		return 0
	}
	return level
}

func isListMarker(trimmed string) bool {
	return strings.HasPrefix(trimmed, "-") ||
		strings.HasPrefix(trimmed, "*") ||
		strings.HasPrefix(trimmed, "+")
}

// scanInline walks one line left to right and appends bold, italic, code
// and link spans. Matches never overlap: the cursor resumes after the
// closing delimiter of each match.
func scanInline(spans []Span, line []rune, lineStart int) []Span {
	for cursor := 0; cursor < len(line); {
		span, next, ok := matchInline(line, cursor)
		if !ok {
			cursor++
			continue
		}
		span.Start += lineStart
		span.End += lineStart
		spans = append(spans, span)
		cursor = next
	}
	return spans
}

// matchInline tries each inline construct at cursor. It returns the span in
// line-relative offsets and the cursor position after the match.
func matchInline(line []rune, cursor int) (Span, int, bool) {
	char := line[cursor]
	doubled := cursor+1 < len(line) && line[cursor+1] == char

	switch {
	case (char == '*' || char == '_') && doubled:
		closer := indexRunes(line, cursor+2, char, char)
		if closer < 0 {
			return Span{}, 0, false
		}
		return Span{Kind: Bold, Start: cursor + 2, End: closer}, closer + 2, true

	case char == '*' || char == '_':
		closer := indexRunes(line, cursor+1, char)
		if closer < 0 {
			return Span{}, 0, false
		}
		return Span{Kind: Italic, Start: cursor + 1, End: closer}, closer + 1, true

	case char == '`':
		closer := indexRunes(line, cursor+1, '`')
		if closer < 0 {
			return Span{}, 0, false
		}
		return Span{Kind: InlineCode, Start: cursor + 1, End: closer}, closer + 1, true

	case char == '[':
		target := indexRunes(line, cursor+1, ']', '(')
		if target < 0 {
			return Span{}, 0, false
		}
		closer := indexRunes(line, target+2, ')')
		if closer < 0 {
			return Span{}, 0, false
		}
		return Span{Kind: Link, Start: cursor, End: closer + 1}, closer + 1, true
	}

	return Span{}, 0, false
}

// indexRunes returns the index of the first occurrence of seq in line at or
// after from, or -1.
func indexRunes(line []rune, from int, seq ...rune) int {
	for idx := from; idx+len(seq) <= len(line); idx++ {
		match := true
		for offset, want := range seq {
			if line[idx+offset] != want {
				match = false
				break
			}
		}
		if match {
			return idx
		}
	}
	return -1
}
