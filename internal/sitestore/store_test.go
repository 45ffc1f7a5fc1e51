package sitestore

import (
	"os"
	"strings"
	"testing"

	"github.com/dgallion1/sitepress/internal/page"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), "Test Site")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	return s
}

func testPage() *page.Page {
	return &page.Page{
		Slug:      "getting-started",
		Title:     "Getting Started",
		Subtitle:  "A gentle intro",
		Body:      "<p>Welcome</p>",
		PlainText: "Welcome",
	}
}

func TestStore_PutWritesLayout(t *testing.T) {
	s := testStore(t)
	rec, err := s.Put(testPage())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Slug != "getting-started" || rec.Size == 0 || rec.ContentHash == "" {
		t.Errorf("incomplete record: %+v", rec)
	}

	_, doc, err := s.Get("getting-started")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Getting Started — Test Site</title>",
		"<header><h1>Getting Started</h1><h2>A gentle intro</h2></header>",
		"<main><p>Welcome</p></main>",
		"</html>",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("expected document to contain %q\ngot: %s", want, doc)
		}
	}
}

func TestStore_StylesheetSurvivesUnescaped(t *testing.T) {
	s := testStore(t)
	if _, err := s.Put(testPage()); err != nil {
		t.Fatalf("put: %v", err)
	}
	_, doc, err := s.Get("getting-started")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !strings.Contains(doc, "main > section") || strings.Contains(doc, "main &gt; section") {
		t.Errorf("stylesheet child combinator must render unescaped")
	}
}

func TestStore_PutRejectsInvalidPage(t *testing.T) {
	s := testStore(t)
	if _, err := s.Put(&page.Page{Slug: "bad slug", Title: "T", Body: "x"}); err == nil {
		t.Errorf("expected validation error")
	}
}

func TestStore_ListSortedBySlug(t *testing.T) {
	s := testStore(t)
	for _, slug := range []string{"zebra", "alpha", "midway"} {
		p := testPage()
		p.Slug = slug
		if _, err := s.Put(p); err != nil {
			t.Fatalf("put %s: %v", slug, err)
		}
	}
	recs := s.List()
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	if recs[0].Slug != "alpha" || recs[2].Slug != "zebra" {
		t.Errorf("expected sorted slugs, got %v", recs)
	}
}

func TestStore_DeleteRemovesPageAndFile(t *testing.T) {
	s := testStore(t)
	if _, err := s.Put(testPage()); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Delete("getting-started"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, err := s.Get("getting-started"); !os.IsNotExist(err) {
		t.Errorf("expected not-exist after delete, got %v", err)
	}
	if err := s.Delete("getting-started"); !os.IsNotExist(err) {
		t.Errorf("expected not-exist for double delete, got %v", err)
	}
}

func TestStore_HasContentFindsDuplicates(t *testing.T) {
	s := testStore(t)
	rec, err := s.Put(testPage())
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	slug, ok := s.HasContent(rec.ContentHash)
	if !ok || slug != "getting-started" {
		t.Errorf("expected duplicate detection, got %q %v", slug, ok)
	}
	if _, ok := s.HasContent("no-such-hash"); ok {
		t.Errorf("expected miss for unknown hash")
	}
}
