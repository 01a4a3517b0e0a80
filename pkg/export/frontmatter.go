package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"
)

// NoteMeta is the optional front matter at the top of a note.
type NoteMeta struct {
	Title  string    `yaml:"title"`
	Target string    `yaml:"target"`
	Tags   []string  `yaml:"tags"`
	Date   time.Time `yaml:"date"`

	// Custom holds keys not mapped above.
	Custom map[string]any `yaml:",inline"`
}

// ParseFrontMatter splits source into its front matter and markdown body.
// A note without front matter yields a zero NoteMeta and the whole source.
func ParseFrontMatter(source []byte) (NoteMeta, []byte, error) {
	var meta NoteMeta

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return NoteMeta{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if meta.Custom == nil {
		meta.Custom = map[string]any{}
	}

	return meta, body, nil
}
