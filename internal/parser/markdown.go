package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/dgallion1/sitepress/internal/page"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// MarkdownParser handles Markdown files using goldmark, with optional YAML
// front matter for page metadata.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*page.Page, error) {
	var meta page.Meta
	body, err := frontmatter.Parse(r, &meta)
	if err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}

	pg := &page.Page{
		Title:      meta.Title,
		Meta:       meta,
		Body:       buf.String(),
		SourceFile: filename,
	}
	if pg.Title == "" {
		if h := firstHeadingText(body); h != "" {
			pg.Title = h
		} else {
			pg.Title = titleFromFilename(filename)
		}
	}
	return pg, nil
}

// firstHeadingText finds the text of the first ATX heading, used as a title
// fallback when front matter has none.
func firstHeadingText(src []byte) string {
	for _, line := range strings.Split(string(src), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		}
	}
	return ""
}
