package parser

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dgallion1/sitepress/internal/markup"
	"github.com/dgallion1/sitepress/internal/page"
	"golang.org/x/net/html"
)

// CSVParser handles CSV files, rendering them as an HTML table. Cell text
// goes through the serializer's escaping policy like any other text.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*page.Page, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	pg := &page.Page{
		Title:      titleFromFilename(filename),
		SourceFile: filename,
	}
	if len(records) == 0 {
		return pg, nil
	}

	tokens := []html.Token{markup.StartTag("table")}

	// First row is headers.
	tokens = append(tokens, markup.StartTag("thead"), markup.StartTag("tr"))
	for _, cell := range records[0] {
		tokens = append(tokens, markup.StartTag("th"), markup.Text(cell), markup.EndTag("th"))
	}
	tokens = append(tokens, markup.EndTag("tr"), markup.EndTag("thead"))

	tokens = append(tokens, markup.StartTag("tbody"))
	for _, row := range records[1:] {
		tokens = append(tokens, markup.StartTag("tr"))
		for _, cell := range row {
			tokens = append(tokens, markup.StartTag("td"), markup.Text(cell), markup.EndTag("td"))
		}
		tokens = append(tokens, markup.EndTag("tr"))
	}
	tokens = append(tokens, markup.EndTag("tbody"), markup.EndTag("table"))

	pg.Body = markup.Render(tokens, markup.DefaultPolicy())
	return pg, nil
}
