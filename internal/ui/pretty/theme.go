package pretty

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/yaklabco/penenv/pkg/config"
	"github.com/yaklabco/penenv/pkg/highlight"
)

// Default span palette.
const (
	colorHeader          = "#4EC9B0"
	colorCode            = "#CE9178"
	colorCodeBackground  = "#2D2D2D"
	colorBlock           = "#D4D4D4"
	colorBlockBackground = "#1E1E1E"
	colorLink            = "#569CD6"
	colorList            = "#DCDCAA"
	colorQuote           = "#6A9955"
)

// Theme maps span tags ("h1".."h6", "bold", "code_block", ...) to styles.
type Theme struct {
	renderer *lipgloss.Renderer
	enabled  bool
	styles   map[string]lipgloss.Style
}

// NewTheme builds the default theme for w and applies overrides keyed by
// span kind name or header tag. A "header" override applies to every level
// before the per-level "hN" override. Unknown keys are ignored.
func NewTheme(w io.Writer, colorEnabled bool, overrides map[string]config.StyleConfig) *Theme {
	renderer := lipgloss.NewRenderer(w)
	if colorEnabled {
		renderer.SetColorProfile(termenv.TrueColor)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}

	theme := &Theme{
		renderer: renderer,
		enabled:  colorEnabled,
		styles:   make(map[string]lipgloss.Style),
	}

	base := func() lipgloss.Style {
		return renderer.NewStyle().TabWidth(lipgloss.NoTabConversion)
	}

	header := base().Foreground(lipgloss.Color(colorHeader)).Bold(true)
	header = applyOverride(header, overrides, highlight.Header.String())
	for level := 1; level <= highlight.MaxHeaderLevel; level++ {
		style := header
		if level == 1 {
			style = style.Underline(true)
		}
		tag := fmt.Sprintf("h%d", level)
		theme.styles[tag] = applyOverride(style, overrides, tag)
	}

	defaults := map[highlight.SpanKind]lipgloss.Style{
		highlight.Bold:   base().Bold(true),
		highlight.Italic: base().Italic(true),
		highlight.InlineCode: base().
			Foreground(lipgloss.Color(colorCode)).
			Background(lipgloss.Color(colorCodeBackground)),
		highlight.CodeBlock: base().
			Foreground(lipgloss.Color(colorBlock)).
			Background(lipgloss.Color(colorBlockBackground)),
		highlight.Link:       base().Foreground(lipgloss.Color(colorLink)).Underline(true),
		highlight.ListMarker: base().Foreground(lipgloss.Color(colorList)).Bold(true),
		highlight.BlockQuote: base().Foreground(lipgloss.Color(colorQuote)).Italic(true),
	}
	for kind, style := range defaults {
		theme.styles[kind.String()] = applyOverride(style, overrides, kind.String())
	}

	return theme
}

// applyOverride layers the configured fields for key over style.
func applyOverride(style lipgloss.Style, overrides map[string]config.StyleConfig, key string) lipgloss.Style {
	override, ok := overrides[key]
	if !ok {
		return style
	}

	if override.Foreground != "" {
		style = style.Foreground(lipgloss.Color(override.Foreground))
	}
	if override.Background != "" {
		style = style.Background(lipgloss.Color(override.Background))
	}
	if override.Bold != nil {
		style = style.Bold(*override.Bold)
	}
	if override.Italic != nil {
		style = style.Italic(*override.Italic)
	}
	if override.Underline != nil {
		style = style.Underline(*override.Underline)
	}
	return style
}

// Enabled reports whether the theme emits escape sequences.
func (t *Theme) Enabled() bool {
	return t != nil && t.enabled
}

// Style returns the style for a span tag, or a plain style for unknown tags.
func (t *Theme) Style(tag string) lipgloss.Style {
	if style, ok := t.styles[tag]; ok {
		return style
	}
	return t.renderer.NewStyle().TabWidth(lipgloss.NoTabConversion)
}

// Render styles text with the style for tag.
func (t *Theme) Render(tag, text string) string {
	if !t.Enabled() {
		return text
	}
	return t.Style(tag).Render(text)
}
