package highlight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/penenv/pkg/highlight"
)

func span(kind highlight.SpanKind, start, end int) highlight.Span {
	return highlight.Span{Kind: kind, Start: start, End: end}
}

func header(level, start, end int) highlight.Span {
	return highlight.Span{Kind: highlight.Header, Level: level, Start: start, End: end}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want []highlight.Span
	}{
		{
			name: "empty document",
			doc:  "",
			want: nil,
		},
		{
			name: "plain text",
			doc:  "just some words",
			want: nil,
		},
		{
			name: "level one header",
			doc:  "# Title",
			want: []highlight.Span{header(1, 0, 7)},
		},
		{
			name: "level six header",
			doc:  "###### deep",
			want: []highlight.Span{header(6, 0, 11)},
		},
		{
			name: "seven hashes is not a header",
			doc:  "####### x",
			want: nil,
		},
		{
			name: "hash without space is not a header",
			doc:  "#hashtag",
			want: nil,
		},
		{
			name: "bare hashes are not a header",
			doc:  "##",
			want: nil,
		},
		{
			name: "indented header covers the whole line",
			doc:  "  ## Sub",
			want: []highlight.Span{header(2, 0, 8)},
		},
		{
			name: "bold excludes delimiters",
			doc:  "**bold**",
			want: []highlight.Span{
				span(highlight.ListMarker, 0, 1),
				span(highlight.Bold, 2, 6),
			},
		},
		{
			name: "bold after text carries no list marker",
			doc:  "a **bold** word",
			want: []highlight.Span{span(highlight.Bold, 4, 8)},
		},
		{
			name: "underscore bold",
			doc:  "__bold__",
			want: []highlight.Span{span(highlight.Bold, 2, 6)},
		},
		{
			name: "two italics stay separate",
			doc:  "*a* and *b*",
			want: []highlight.Span{
				span(highlight.ListMarker, 0, 1),
				span(highlight.Italic, 1, 2),
				span(highlight.Italic, 9, 10),
			},
		},
		{
			name: "underscore italic",
			doc:  "x _y_ z",
			want: []highlight.Span{span(highlight.Italic, 3, 4)},
		},
		{
			name: "inline code",
			doc:  "`code`",
			want: []highlight.Span{span(highlight.InlineCode, 1, 5)},
		},
		{
			name: "link covers brackets and parens",
			doc:  "[text](http://x)",
			want: []highlight.Span{span(highlight.Link, 0, 16)},
		},
		{
			name: "link without target is ignored",
			doc:  "[text] only",
			want: nil,
		},
		{
			name: "link without closing paren is ignored",
			doc:  "[text](http://x",
			want: nil,
		},
		{
			name: "fenced block tags all three lines",
			doc:  "```\ncode line\n```",
			want: []highlight.Span{
				span(highlight.CodeBlock, 0, 3),
				span(highlight.CodeBlock, 4, 13),
				span(highlight.CodeBlock, 14, 17),
			},
		},
		{
			name: "code block lines skip inline scan",
			doc:  "```go\n**not bold** # no\n```",
			want: []highlight.Span{
				span(highlight.CodeBlock, 0, 5),
				span(highlight.CodeBlock, 6, 23),
				span(highlight.CodeBlock, 24, 27),
			},
		},
		{
			name: "unterminated fence runs to end of document",
			doc:  "text\n```\none\n# two",
			want: []highlight.Span{
				span(highlight.CodeBlock, 5, 8),
				span(highlight.CodeBlock, 9, 12),
				span(highlight.CodeBlock, 13, 18),
			},
		},
		{
			name: "list marker tags only the marker",
			doc:  "- item one",
			want: []highlight.Span{span(highlight.ListMarker, 0, 1)},
		},
		{
			name: "indented plus marker",
			doc:  "   + item",
			want: []highlight.Span{span(highlight.ListMarker, 3, 4)},
		},
		{
			name: "list item text is still scanned inline",
			doc:  "- see `nmap`",
			want: []highlight.Span{
				span(highlight.ListMarker, 0, 1),
				span(highlight.InlineCode, 7, 11),
			},
		},
		{
			name: "blockquote covers the line",
			doc:  "> quoted",
			want: []highlight.Span{span(highlight.BlockQuote, 0, 8)},
		},
		{
			name: "header text is still scanned inline",
			doc:  "# **Target**",
			want: []highlight.Span{
				header(1, 0, 12),
				span(highlight.Bold, 4, 10),
			},
		},
		{
			name: "blockquote text is still scanned inline",
			doc:  "> see [docs](u)",
			want: []highlight.Span{
				span(highlight.BlockQuote, 0, 15),
				span(highlight.Link, 6, 15),
			},
		},
		{
			name: "nested emphasis keeps only the outer bold",
			doc:  "**bold *and italic* end**",
			want: []highlight.Span{
				span(highlight.ListMarker, 0, 1),
				span(highlight.Bold, 2, 23),
			},
		},
		{
			name: "unterminated bold yields only the marker",
			doc:  "**bold text",
			want: []highlight.Span{span(highlight.ListMarker, 0, 1)},
		},
		{
			name: "unterminated italic and code yield only the marker",
			doc:  "*open `tick",
			want: []highlight.Span{span(highlight.ListMarker, 0, 1)},
		},
		{
			name: "inline matches never cross lines",
			doc:  "**open\nclose**",
			want: []highlight.Span{span(highlight.ListMarker, 0, 1)},
		},
		{
			name: "offsets advance across lines",
			doc:  "first\n**second**",
			want: []highlight.Span{
				span(highlight.ListMarker, 6, 7),
				span(highlight.Bold, 8, 14),
			},
		},
		{
			name: "offsets count runes not bytes",
			doc:  "héllo\n`çode`",
			want: []highlight.Span{span(highlight.InlineCode, 7, 11)},
		},
		{
			name: "empty bold is a zero length span",
			doc:  "****",
			want: []highlight.Span{
				span(highlight.ListMarker, 0, 1),
				span(highlight.Bold, 2, 2),
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := highlight.Classify(testCase.doc)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestClassify_Stateless(t *testing.T) {
	t.Parallel()

	doc := "```\nunterminated\nstill code"

	first := highlight.Classify(doc)
	second := highlight.Classify(doc)
	require.Len(t, first, 3)
	assert.Equal(t, first, second)

	// A fresh document must not inherit the open fence from the previous call.
	assert.Empty(t, highlight.Classify("plain"))
}

func TestClassify_SpanInvariants(t *testing.T) {
	t.Parallel()

	doc := "# Recon\n\n- **10.0.0.1** `22/tcp` [ssh](https://x)\n> *note*\n```sh\nnmap -sV\n```\n"
	length := len([]rune(doc))

	for _, got := range highlight.Classify(doc) {
		assert.LessOrEqual(t, got.Start, got.End, got.String())
		assert.GreaterOrEqual(t, got.Start, 0, got.String())
		assert.LessOrEqual(t, got.End, length, got.String())
	}
}

func TestSpan_Text(t *testing.T) {
	t.Parallel()

	doc := "say **héllo** there"
	spans := highlight.Classify(doc)
	require.Len(t, spans, 1)

	assert.Equal(t, "héllo", spans[0].Text(doc))
	assert.Equal(t, "bold", spans[0].Tag())
	assert.Equal(t, 5, spans[0].Len())
	assert.True(t, spans[0].Contains(6))
	assert.False(t, spans[0].Contains(11))
	assert.Empty(t, highlight.Span{Start: 3, End: 99}.Text(doc))
}

func TestSpanKind_Names(t *testing.T) {
	t.Parallel()

	for _, kind := range highlight.Kinds() {
		parsed, ok := highlight.ParseKind(kind.String())
		require.True(t, ok, kind.String())
		assert.Equal(t, kind, parsed)
	}

	_, ok := highlight.ParseKind("strikethrough")
	assert.False(t, ok)

	kind, level, ok := highlight.ParseTag("h4")
	require.True(t, ok)
	assert.Equal(t, highlight.Header, kind)
	assert.Equal(t, 4, level)

	kind, level, ok = highlight.ParseTag("link")
	require.True(t, ok)
	assert.Equal(t, highlight.Link, kind)
	assert.Zero(t, level)

	for _, bad := range []string{"h0", "h7", "h01", "hx", ""} {
		_, _, ok = highlight.ParseTag(bad)
		assert.False(t, ok, bad)
	}
	assert.Equal(t, "h3", highlight.Span{Kind: highlight.Header, Level: 3}.Tag())
	assert.True(t, highlight.CodeBlock.IsLine())
	assert.False(t, highlight.Link.IsLine())
}
