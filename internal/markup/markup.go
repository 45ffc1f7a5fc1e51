// Package markup converts between HTML text and flat token streams, and
// renders token streams back to text under an explicit escaping policy.
package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// Tokenize splits markup text into a flat token sequence. The underlying
// tokenizer treats script and style contents as raw text, so those inner
// runs come back as single Text tokens with no entity decoding.
func Tokenize(s string) []html.Token {
	z := html.NewTokenizer(strings.NewReader(s))
	var tokens []html.Token
	for {
		if z.Next() == html.ErrorToken {
			// In-memory input: the only error is EOF.
			return tokens
		}
		tokens = append(tokens, z.Token())
	}
}

// Policy controls how Render writes text content. Escape is applied to text
// and attribute values outside raw elements; Raw reports tag names whose
// content must be emitted verbatim.
type Policy struct {
	Escape func(string) string
	Raw    func(tag string) bool
}

var minimalEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeMinimal escapes only &, < and >. Quotes are deliberately left alone:
// the content we render is our own, and escaping quotes bloats output and
// corrupts embedded stylesheets.
func EscapeMinimal(s string) string {
	return minimalEscaper.Replace(s)
}

// DefaultPolicy escapes minimally and treats script and style as raw.
func DefaultPolicy() Policy {
	return Policy{
		Escape: EscapeMinimal,
		Raw: func(tag string) bool {
			return tag == "script" || tag == "style"
		},
	}
}

// Render writes a token sequence back to markup text. Raw-element content is
// tracked here in the serializer, not by any classifier: a depth counter
// follows open/close tags whose name the policy marks raw. No tags are ever
// minimized away; what is in the stream is what gets written.
func Render(tokens []html.Token, p Policy) string {
	var b strings.Builder
	rawDepth := 0
	for _, t := range tokens {
		switch t.Type {
		case html.TextToken:
			if rawDepth > 0 {
				b.WriteString(t.Data)
			} else {
				b.WriteString(p.Escape(t.Data))
			}
		case html.StartTagToken:
			writeTag(&b, t, false, p)
			if p.Raw(t.Data) {
				rawDepth++
			}
		case html.EndTagToken:
			if p.Raw(t.Data) && rawDepth > 0 {
				rawDepth--
			}
			b.WriteString("</")
			b.WriteString(t.Data)
			b.WriteString(">")
		case html.SelfClosingTagToken:
			writeTag(&b, t, true, p)
		case html.CommentToken:
			b.WriteString("<!--")
			b.WriteString(t.Data)
			b.WriteString("-->")
		case html.DoctypeToken:
			b.WriteString("<!DOCTYPE ")
			b.WriteString(t.Data)
			b.WriteString(">")
		}
	}
	return b.String()
}

func writeTag(b *strings.Builder, t html.Token, selfClosing bool, p Policy) {
	b.WriteString("<")
	b.WriteString(t.Data)
	for _, a := range t.Attr {
		b.WriteString(" ")
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(p.Escape(a.Val))
		b.WriteString(`"`)
	}
	if selfClosing {
		b.WriteString("/")
	}
	b.WriteString(">")
}

// StartTag builds an opening tag token.
func StartTag(name string, attrs ...html.Attribute) html.Token {
	return html.Token{Type: html.StartTagToken, Data: name, Attr: attrs}
}

// EndTag builds a closing tag token.
func EndTag(name string) html.Token {
	return html.Token{Type: html.EndTagToken, Data: name}
}

// Text builds a text token.
func Text(s string) html.Token {
	return html.Token{Type: html.TextToken, Data: s}
}

// Attr builds an attribute.
func Attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}
