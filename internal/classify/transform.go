package classify

import (
	"fmt"

	"golang.org/x/net/html"
)

// FilterTags keeps only the tokens whose classification satisfies pred.
// The result is an order-preserving subsequence of tokens.
func FilterTags(pred Predicate, tokens []html.Token) []html.Token {
	var out []html.Token
	for _, c := range Tokens(tokens) {
		if pred(c.Props) {
			out = append(out, c.Token)
		}
	}
	return out
}

// ApplyTagsWhere applies transform to the whole sequence once, then picks,
// index by index, the transformed token where pred holds and the original
// otherwise. transform must preserve length and index correspondence; a
// transform that changes the token count returns an error instead of
// silently mis-pairing.
func ApplyTagsWhere(pred Predicate, transform func([]html.Token) []html.Token, tokens []html.Token) ([]html.Token, error) {
	transformed := transform(tokens)
	if len(transformed) != len(tokens) {
		return nil, fmt.Errorf("transform changed token count: got %d, want %d", len(transformed), len(tokens))
	}

	out := make([]html.Token, len(tokens))
	for i, c := range Tokens(tokens) {
		if pred(c.Props) {
			out[i] = transformed[i]
		} else {
			out[i] = c.Token
		}
	}
	return out, nil
}

// MapTagsWhere applies f to each token whose classification satisfies pred
// and leaves the rest unchanged. Count-preserving by construction.
func MapTagsWhere(pred Predicate, f func(html.Token) html.Token, tokens []html.Token) []html.Token {
	out := make([]html.Token, len(tokens))
	for i, c := range Tokens(tokens) {
		if pred(c.Props) {
			out[i] = f(c.Token)
		} else {
			out[i] = c.Token
		}
	}
	return out
}

// ConcatMapTagsWhere replaces each matching token with f's zero-or-more
// replacement tokens and passes non-matching tokens through, concatenated in
// order. This is the one combinator that may change the token count: f
// returning nil deletes matches, f returning its input is the identity.
func ConcatMapTagsWhere(pred Predicate, f func(html.Token) []html.Token, tokens []html.Token) []html.Token {
	var out []html.Token
	for _, c := range Tokens(tokens) {
		if pred(c.Props) {
			out = append(out, f(c.Token)...)
		} else {
			out = append(out, c.Token)
		}
	}
	return out
}
