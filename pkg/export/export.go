// Package export renders session notes to HTML with goldmark.
package export

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	goldhtml "github.com/yuin/goldmark/renderer/html"
)

// Flavors accepted by Options.Flavor.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Options controls HTML rendering.
type Options struct {
	// Flavor selects "gfm" (default) or "commonmark".
	Flavor string

	// HardWraps renders single newlines as <br>, matching how notes read
	// in the editor.
	HardWraps bool

	// Unsafe passes raw HTML in the note through. Notes routinely hold
	// payloads, so raw HTML is omitted unless this is set.
	Unsafe bool

	// Standalone wraps the fragment in a complete HTML page.
	Standalone bool

	// Title names the standalone page. Empty means the front matter title,
	// then "Notes".
	Title string
}

// HTML converts markdown source to HTML. Front matter is stripped before
// rendering.
func HTML(ctx context.Context, source []byte, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("export cancelled: %w", err)
	}

	meta, markdown, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	if err := newEngine(opts).Convert(markdown, &body); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	if !opts.Standalone {
		return body.Bytes(), nil
	}

	title := opts.Title
	if title == "" {
		title = meta.Title
	}
	if title == "" {
		title = "Notes"
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>%s</title>\n", html.EscapeString(title))
	if len(meta.Tags) > 0 {
		fmt.Fprintf(&page, "<meta name=\"keywords\" content=\"%s\">\n", html.EscapeString(strings.Join(meta.Tags, ", ")))
	}
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

//nolint:ireturn // goldmark.Markdown is an external interface type
func newEngine(opts Options) goldmark.Markdown {
	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	}

	if opts.Flavor != FlavorCommonMark {
		engineOptions = append(engineOptions, goldmark.WithExtensions(extension.GFM))
	}

	var rendererOptions []renderer.Option
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, goldhtml.WithHardWraps())
	}
	if opts.Unsafe {
		rendererOptions = append(rendererOptions, goldhtml.WithUnsafe())
	}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}

	return goldmark.New(engineOptions...)
}
