package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/sitepress/internal/classify"
	"github.com/dgallion1/sitepress/internal/markup"
	"github.com/dgallion1/sitepress/internal/page"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files. The document is processed as a flat token
// stream: the title is whatever text classifies inside head (minus script
// and style), and the body is the stream with the head and document
// scaffolding stripped out.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*page.Page, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read html: %w", err)
	}
	src := string(raw)

	// Head text is the title plus inter-tag whitespace; collapse the runs.
	title := strings.Join(strings.Fields(classify.TextInTag(func(pr classify.Properties) bool {
		return pr.Head && !pr.Script && !pr.Style
	}, src)), " ")
	if title == "" {
		title = titleFromFilename(filename)
	}

	tokens := classify.FilterTags(func(pr classify.Properties) bool {
		return !pr.Head
	}, markup.Tokenize(src))
	tokens = stripScaffolding(tokens)

	return &page.Page{
		Title:      title,
		Body:       markup.Render(tokens, markup.DefaultPolicy()),
		SourceFile: filename,
	}, nil
}

// stripScaffolding drops doctype and html/body wrapper tags so the result is
// embeddable body markup.
func stripScaffolding(tokens []html.Token) []html.Token {
	var out []html.Token
	for _, t := range tokens {
		if t.Type == html.DoctypeToken {
			continue
		}
		if (t.Type == html.StartTagToken || t.Type == html.EndTagToken) &&
			(t.Data == "html" || t.Data == "body") {
			continue
		}
		out = append(out, t)
	}
	return out
}
