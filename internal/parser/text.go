package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/sitepress/internal/markup"
	"github.com/dgallion1/sitepress/internal/page"
	"golang.org/x/net/html"
)

// TextParser handles plain text files: each paragraph becomes a <p>.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*page.Page, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	var tokens []html.Token
	for _, para := range paragraphs {
		tokens = append(tokens, markup.StartTag("p"), markup.Text(para), markup.EndTag("p"))
	}

	return &page.Page{
		Title:      titleFromFilename(filename),
		Body:       markup.Render(tokens, markup.DefaultPolicy()),
		SourceFile: filename,
	}, nil
}
