package classify

import "golang.org/x/net/html"

// Classified pairs a token with the classification in effect at that token.
type Classified struct {
	Token html.Token
	Props Properties
}

// Tokens zips every token with its classification. An opening tag's own
// class is already visible at that tag; a closing tag is still inside its
// element (it is classified before its pop takes effect). Output length
// always equals input length.
func Tokens(tokens []html.Token) []Classified {
	out := make([]Classified, 0, len(tokens))
	stack := make(Stack, 0, 8)

	for _, t := range tokens {
		if t.Type == html.StartTagToken {
			if c, ok := ClassOf(t.Data); ok {
				stack = append(stack, frame{name: t.Data, class: c})
			}
		}
		out = append(out, Classified{Token: t, Props: PropertiesOf(stack)})
		if t.Type == html.EndTagToken {
			if len(stack) > 0 && stack[len(stack)-1].name == t.Data {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return out
}
