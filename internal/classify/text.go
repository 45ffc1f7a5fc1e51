package classify

import (
	"strings"

	"github.com/dgallion1/sitepress/internal/markup"
	"golang.org/x/net/html"
)

// TextInTag extracts the text content classified by pred from markup text,
// joining consecutive fragments with single spaces.
func TextInTag(pred Predicate, markupText string) string {
	var parts []string
	for _, c := range Tokens(markup.Tokenize(markupText)) {
		if c.Token.Type == html.TextToken && pred(c.Props) {
			parts = append(parts, c.Token.Data)
		}
	}
	return strings.Join(parts, " ")
}

// Span is one text fragment tagged with a value derived from its
// classification.
type Span[T any] struct {
	Text  string
	Value T
}

// TextSpans pairs every text fragment in markup text with
// derive(classification). Nothing is filtered and order is preserved.
func TextSpans[T any](derive func(Properties) T, markupText string) []Span[T] {
	var spans []Span[T]
	for _, c := range Tokens(markup.Tokenize(markupText)) {
		if c.Token.Type == html.TextToken {
			spans = append(spans, Span[T]{Text: c.Token.Data, Value: derive(c.Props)})
		}
	}
	return spans
}
