// Package search keeps an in-memory weighted term index over page text.
package search

import (
	"sort"
	"strings"
	"sync"

	"github.com/dgallion1/sitepress/internal/classify"
)

// Entry is the indexed form of one page.
type Entry struct {
	Slug    string
	Title   string
	Excerpt string
	terms   map[string]float64
}

// Result is one search hit.
type Result struct {
	Slug    string  `json:"slug"`
	Title   string  `json:"title"`
	Excerpt string  `json:"excerpt"`
	Score   float64 `json:"score"`
}

// Index is a thread-safe slug-keyed term index.
type Index struct {
	mu      sync.Mutex
	entries map[string]*Entry
}

func NewIndex() *Index {
	return &Index{entries: make(map[string]*Entry)}
}

// Add indexes a page from its weighted text spans, replacing any previous
// entry for the slug. Spans with non-positive weight are dropped.
func (ix *Index) Add(slug, title, excerpt string, spans []classify.Span[float64]) {
	terms := make(map[string]float64)
	for _, span := range spans {
		if span.Value <= 0 {
			continue
		}
		for _, word := range analyze(span.Text) {
			terms[word] += span.Value
		}
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.entries[slug] = &Entry{Slug: slug, Title: title, Excerpt: excerpt, terms: terms}
}

// Remove drops a page from the index.
func (ix *Index) Remove(slug string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	delete(ix.entries, slug)
}

// Len returns the number of indexed pages.
func (ix *Index) Len() int {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return len(ix.entries)
}

// Search scores every entry against the query terms and returns hits in
// descending score order, capped at limit.
func (ix *Index) Search(query string, limit int) []Result {
	words := analyze(query)
	if len(words) == 0 {
		return nil
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	var results []Result
	for _, e := range ix.entries {
		var score float64
		for _, w := range words {
			score += e.terms[w]
		}
		if score > 0 {
			results = append(results, Result{Slug: e.Slug, Title: e.Title, Excerpt: e.Excerpt, Score: score})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Slug < results[j].Slug
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// analyze lowercases and splits text into bare terms, trimming punctuation
// from the edges of each word.
func analyze(text string) []string {
	var words []string
	for _, f := range strings.Fields(strings.ToLower(text)) {
		w := strings.TrimFunc(f, func(r rune) bool {
			return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
		})
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}
