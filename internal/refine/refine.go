// Package refine applies classification-driven transforms to converted
// pages: sanitizing, heading demotion, code-block wrapping, and the text
// extraction that feeds titles and search.
package refine

import (
	"github.com/dgallion1/sitepress/internal/classify"
	"github.com/dgallion1/sitepress/internal/markup"
	"golang.org/x/net/html"
)

// Sanitize drops script and style elements, tags included.
func Sanitize(tokens []html.Token) []html.Token {
	return classify.FilterTags(func(p classify.Properties) bool {
		return !p.Script && !p.Style
	}, tokens)
}

// Demote pushes headings one level down (h1→h2, h2→h3) so page content sits
// under the site-level h1. Only the tag tokens change; everything inside the
// heading passes through untouched.
func Demote(tokens []html.Token) []html.Token {
	return classify.MapTagsWhere(classify.Properties.Heading, func(t html.Token) html.Token {
		if t.Type != html.StartTagToken && t.Type != html.EndTagToken {
			return t
		}
		switch t.Data {
		case "h1":
			t.Data = "h2"
			t.DataAtom = 0
		case "h2":
			t.Data = "h3"
			t.DataAtom = 0
		}
		return t
	}, tokens)
}

// HighlightBlocks wraps every pre block in <div class="highlight"> for
// styling hooks.
func HighlightBlocks(tokens []html.Token) []html.Token {
	return classify.ConcatMapTagsWhere(func(p classify.Properties) bool { return p.Pre }, func(t html.Token) []html.Token {
		switch {
		case t.Type == html.StartTagToken && t.Data == "pre":
			return []html.Token{markup.StartTag("div", markup.Attr("class", "highlight")), t}
		case t.Type == html.EndTagToken && t.Data == "pre":
			return []html.Token{t, markup.EndTag("div")}
		}
		return []html.Token{t}
	}, tokens)
}

// Titles extracts the page title and subtitle: text inside an h1 or h2
// within a header element.
func Titles(markupText string) (title, subtitle string) {
	title = classify.TextInTag(classify.Properties.Title, markupText)
	subtitle = classify.TextInTag(classify.Properties.Subtitle, markupText)
	return title, subtitle
}

// CodeText extracts all code-classified text from a page.
func CodeText(markupText string) string {
	return classify.TextInTag(func(p classify.Properties) bool { return p.Code }, markupText)
}

// PlainText extracts every readable text fragment, skipping script and
// style content.
func PlainText(markupText string) string {
	return classify.TextInTag(func(p classify.Properties) bool {
		return !p.Script && !p.Style
	}, markupText)
}

// SearchSpans tags every text fragment with its search weight. Script and
// style text weigh zero; the index drops them.
func SearchSpans(markupText string) []classify.Span[float64] {
	return classify.TextSpans(searchWeight, markupText)
}

func searchWeight(p classify.Properties) float64 {
	switch {
	case p.Script || p.Style:
		return 0
	case p.Title():
		return 6
	case p.Heading():
		return 4
	case p.Code:
		return 1.5
	case p.Em || p.Strong:
		return 2
	default:
		return 1
	}
}

// predicates is the fixed vocabulary accepted by the extraction API.
var predicates = map[string]classify.Predicate{
	"abbr":     func(p classify.Properties) bool { return p.Abbr },
	"code":     func(p classify.Properties) bool { return p.Code },
	"em":       func(p classify.Properties) bool { return p.Em },
	"h1":       func(p classify.Properties) bool { return p.H1 },
	"h2":       func(p classify.Properties) bool { return p.H2 },
	"head":     func(p classify.Properties) bool { return p.Head },
	"header":   func(p classify.Properties) bool { return p.Header },
	"math":     func(p classify.Properties) bool { return p.Math },
	"pre":      func(p classify.Properties) bool { return p.Pre },
	"script":   func(p classify.Properties) bool { return p.Script },
	"style":    func(p classify.Properties) bool { return p.Style },
	"strong":   func(p classify.Properties) bool { return p.Strong },
	"heading":  classify.Properties.Heading,
	"title":    classify.Properties.Title,
	"subtitle": classify.Properties.Subtitle,
}

// PredicateByName resolves a predicate name from the extraction API.
func PredicateByName(name string) (classify.Predicate, bool) {
	p, ok := predicates[name]
	return p, ok
}

// PredicateNames lists the accepted predicate names, for error messages.
func PredicateNames() []string {
	names := make([]string, 0, len(predicates))
	for n := range predicates {
		names = append(names, n)
	}
	return names
}
