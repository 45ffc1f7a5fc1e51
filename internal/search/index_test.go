package search

import (
	"testing"

	"github.com/dgallion1/sitepress/internal/classify"
)

func spans(pairs ...any) []classify.Span[float64] {
	var out []classify.Span[float64]
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, classify.Span[float64]{Text: pairs[i].(string), Value: pairs[i+1].(float64)})
	}
	return out
}

func TestIndex_AddAndSearch(t *testing.T) {
	ix := NewIndex()
	ix.Add("intro", "Intro", "…", spans("welcome to the project", 1.0))
	ix.Add("api", "API", "…", spans("project api reference", 1.0))

	results := ix.Search("project", 10)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results := ix.Search("welcome", 10); len(results) != 1 || results[0].Slug != "intro" {
		t.Errorf("expected single hit on intro, got %v", results)
	}
}

func TestIndex_WeightsRankResults(t *testing.T) {
	ix := NewIndex()
	ix.Add("a", "A", "", spans("deploy", 1.0))
	ix.Add("b", "B", "", spans("deploy", 6.0)) // e.g. in the title

	results := ix.Search("deploy", 10)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Slug != "b" {
		t.Errorf("expected higher-weighted page first, got %v", results)
	}
}

func TestIndex_ZeroWeightSpansAreDropped(t *testing.T) {
	ix := NewIndex()
	ix.Add("p", "P", "", spans("visible", 1.0, "hiddenscript", 0.0))
	if results := ix.Search("hiddenscript", 10); len(results) != 0 {
		t.Errorf("expected script-weighted text unindexed, got %v", results)
	}
}

func TestIndex_AddReplacesPreviousEntry(t *testing.T) {
	ix := NewIndex()
	ix.Add("p", "P", "", spans("oldword", 1.0))
	ix.Add("p", "P", "", spans("newword", 1.0))
	if results := ix.Search("oldword", 10); len(results) != 0 {
		t.Errorf("expected stale terms gone after re-add")
	}
	if results := ix.Search("newword", 10); len(results) != 1 {
		t.Errorf("expected fresh terms indexed")
	}
}

func TestIndex_RemoveAndLen(t *testing.T) {
	ix := NewIndex()
	ix.Add("p", "P", "", spans("x", 1.0))
	if ix.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", ix.Len())
	}
	ix.Remove("p")
	if ix.Len() != 0 {
		t.Errorf("expected empty index after remove")
	}
	if results := ix.Search("x", 10); len(results) != 0 {
		t.Errorf("expected no hits after remove")
	}
}

func TestIndex_QueryNormalization(t *testing.T) {
	ix := NewIndex()
	ix.Add("p", "P", "", spans("Hello, World!", 1.0))
	if results := ix.Search("hello world", 10); len(results) != 1 {
		t.Errorf("expected punctuation/case-insensitive match, got %v", results)
	}
	if results := ix.Search("   ", 10); results != nil {
		t.Errorf("expected nil results for blank query")
	}
}
