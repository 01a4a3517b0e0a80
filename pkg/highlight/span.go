// Package highlight classifies markdown note text into styled spans.
//
// Classification is a pure function of the document text: it never
// touches a rendering surface and keeps no state between calls. Hosts
// apply the returned spans to whatever surface they own.
package highlight

import "fmt"

// SpanKind identifies the visual class of a span.
type SpanKind int

const (
	Header SpanKind = iota + 1
	Bold
	Italic
	InlineCode
	CodeBlock
	Link
	ListMarker
	BlockQuote
)

// MaxHeaderLevel is the deepest ATX header level recognized.
const MaxHeaderLevel = 6

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = map[SpanKind]string{
	Header:     "header",
	Bold:       "bold",
	Italic:     "italic",
	InlineCode: "code",
	CodeBlock:  "code_block",
	Link:       "link",
	ListMarker: "list",
	BlockQuote: "blockquote",
}

// Kinds returns every span kind in declaration order.
func Kinds() []SpanKind {
	return []SpanKind{Header, Bold, Italic, InlineCode, CodeBlock, Link, ListMarker, BlockQuote}
}

// String returns the stable lowercase name of the kind.
func (k SpanKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SpanKind(%d)", int(k))
}

// ParseKind resolves a kind from its name.
func ParseKind(name string) (SpanKind, bool) {
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, true
		}
	}
	return 0, false
}

// IsLine reports whether the kind is assigned per line rather than by the inline scan.
func (k SpanKind) IsLine() bool {
	switch k {
	case Header, CodeBlock, ListMarker, BlockQuote:
		return true
	default:
		return false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k SpanKind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown span kind %d", int(k))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *SpanKind) UnmarshalText(text []byte) error {
	kind, ok := ParseKind(string(text))
	if !ok {
		return fmt.Errorf("unknown span kind %q", text)
	}
	*k = kind
	return nil
}

// Span is a labeled half-open range of rune offsets into a document snapshot.
type Span struct {
	Kind SpanKind `json:"kind"`

	// Level is the header level (1..6) for Header spans and 0 otherwise.
	Level int `json:"level,omitempty"`

	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of runes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether the rune offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Tag returns the surface tag name for the span, e.g. "h2" or "bold".
func (s Span) Tag() string {
	if s.Kind == Header {
		return fmt.Sprintf("h%d", s.Level)
	}
	return s.Kind.String()
}

// Text returns the runes of doc covered by the span.
// Out-of-range spans yield an empty string.
func (s Span) Text(doc string) string {
	runes := []rune(doc)
	if s.Start < 0 || s.End > len(runes) || s.Start > s.End {
		return ""
	}
	return string(runes[s.Start:s.End])
}

// ParseTag resolves a surface tag back to its kind and header level.
// "header" matches headers of every level and reports level 0.
func ParseTag(tag string) (SpanKind, int, bool) {
	var level int
	if _, err := fmt.Sscanf(tag, "h%d", &level); err == nil && fmt.Sprintf("h%d", level) == tag {
		if level < 1 || level > MaxHeaderLevel {
			return 0, 0, false
		}
		return Header, level, true
	}
	kind, ok := ParseKind(tag)
	return kind, 0, ok
}

func (s Span) String() string {
	return fmt.Sprintf("%s[%d:%d]", s.Tag(), s.Start, s.End)
}
