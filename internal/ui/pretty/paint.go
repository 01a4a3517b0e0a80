package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/penenv/pkg/highlight"
)

// runStyle identifies the styles covering one rune: the line-level tag and
// the inline tag, either of which may be empty.
type runStyle struct {
	line   string
	inline string
}

// Paint renders document with each span styled by theme. Inline spans take
// precedence over the line span beneath them and inherit its unset rules.
// Newlines are emitted outside styled runs so multi-line spans never pad.
// A nil or disabled theme returns document unchanged.
func Paint(document string, spans []highlight.Span, theme *Theme) string {
	if !theme.Enabled() || len(spans) == 0 {
		return document
	}

	runes := []rune(document)
	cover := make([]runStyle, len(runes))
	for _, span := range spans {
		start, end := max(span.Start, 0), min(span.End, len(runes))
		tag := span.Tag()
		for idx := start; idx < end; idx++ {
			if span.Kind.IsLine() {
				cover[idx].line = tag
			} else {
				cover[idx].inline = tag
			}
		}
	}

	cache := make(map[runStyle]lipgloss.Style)
	styleFor := func(key runStyle) lipgloss.Style {
		if style, ok := cache[key]; ok {
			return style
		}
		var style lipgloss.Style
		switch {
		case key.inline != "" && key.line != "":
			style = theme.Style(key.inline).Inherit(theme.Style(key.line))
		case key.inline != "":
			style = theme.Style(key.inline)
		default:
			style = theme.Style(key.line)
		}
		cache[key] = style
		return style
	}

	var out strings.Builder
	out.Grow(len(document) * 2)

	runStart := 0
	flush := func(end int) {
		if end <= runStart {
			return
		}
		text := string(runes[runStart:end])
		key := cover[runStart]
		if key == (runStyle{}) {
			out.WriteString(text)
		} else {
			out.WriteString(styleFor(key).Render(text))
		}
	}

	for idx, r := range runes {
		if r == '\n' {
			flush(idx)
			out.WriteByte('\n')
			runStart = idx + 1
			continue
		}
		if idx > runStart && cover[idx] != cover[runStart] {
			flush(idx)
			runStart = idx
		}
	}
	flush(len(runes))

	return out.String()
}
