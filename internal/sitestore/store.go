// Package sitestore persists rendered pages as static files and keeps an
// in-memory index of what the site currently contains.
package sitestore

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/dgallion1/sitepress/internal/markup"
	"github.com/dgallion1/sitepress/internal/page"
	"golang.org/x/net/html"
)

// Record is the indexed metadata for one stored page.
type Record struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle,omitempty"`
	Excerpt     string    `json:"excerpt,omitempty"`
	SourceFile  string    `json:"source_file,omitempty"`
	ContentHash string    `json:"content_hash"`
	Size        int       `json:"size_bytes"`
	StoredAt    time.Time `json:"stored_at"`
}

// Store writes rendered pages under a root directory and indexes them by
// slug.
type Store struct {
	root      string
	siteTitle string
	policy    markup.Policy

	mu    sync.Mutex
	pages map[string]Record
}

// New creates a store rooted at dir, creating it if needed.
func New(dir, siteTitle string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create site dir: %w", err)
	}
	return &Store{
		root:      dir,
		siteTitle: siteTitle,
		policy:    markup.DefaultPolicy(),
		pages:     make(map[string]Record),
	}, nil
}

// defaultStylesheet is embedded into every page head. It relies on the
// serializer's raw-style handling: the child combinators must survive
// unescaped.
const defaultStylesheet = `body { max-width: 46rem; margin: 2rem auto; font-family: sans-serif; }
main > section { margin-bottom: 2rem; }
div.highlight > pre { background: #f4f4f4; padding: 0.75rem; overflow-x: auto; }`

// Put renders the page into the site layout, writes it to disk, and indexes
// it. The returned record reflects what was written.
func (s *Store) Put(p *page.Page) (Record, error) {
	if err := page.Validate(p); err != nil {
		return Record{}, err
	}

	doc := s.layout(p)
	hash := fmt.Sprintf("%x", sha256.Sum256([]byte(p.Body)))

	path := filepath.Join(s.root, p.Slug+".html")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return Record{}, fmt.Errorf("write page %s: %w", p.Slug, err)
	}

	rec := Record{
		Slug:        p.Slug,
		Title:       p.Title,
		Subtitle:    p.Subtitle,
		Excerpt:     page.Excerpt(p.PlainText, 40),
		SourceFile:  p.SourceFile,
		ContentHash: hash,
		Size:        len(doc),
		StoredAt:    time.Now(),
	}

	s.mu.Lock()
	s.pages[p.Slug] = rec
	s.mu.Unlock()
	return rec, nil
}

// layout wraps a page body in the full document shell. The shell is built
// as a token stream and rendered through the same policy as everything
// else; the body is already-rendered markup and is spliced in verbatim.
func (s *Store) layout(p *page.Page) string {
	title := p.Title
	if s.siteTitle != "" {
		title = p.Title + " — " + s.siteTitle
	}

	head := []html.Token{
		{Type: html.DoctypeToken, Data: "html"},
		markup.StartTag("html", markup.Attr("lang", "en")),
		markup.StartTag("head"),
		markup.StartTag("meta", markup.Attr("charset", "utf-8")),
		markup.StartTag("title"), markup.Text(title), markup.EndTag("title"),
		markup.StartTag("style"), markup.Text(defaultStylesheet), markup.EndTag("style"),
		markup.EndTag("head"),
		markup.StartTag("body"),
		markup.StartTag("header"),
		markup.StartTag("h1"), markup.Text(p.Title), markup.EndTag("h1"),
	}
	if p.Subtitle != "" {
		head = append(head,
			markup.StartTag("h2"), markup.Text(p.Subtitle), markup.EndTag("h2"))
	}
	head = append(head, markup.EndTag("header"), markup.StartTag("main"))

	tail := []html.Token{
		markup.EndTag("main"),
		markup.EndTag("body"),
		markup.EndTag("html"),
	}

	return markup.Render(head, s.policy) + p.Body + markup.Render(tail, s.policy)
}

// Get returns the rendered document for a slug.
func (s *Store) Get(slug string) (Record, string, error) {
	s.mu.Lock()
	rec, ok := s.pages[slug]
	s.mu.Unlock()
	if !ok {
		return Record{}, "", os.ErrNotExist
	}

	data, err := os.ReadFile(filepath.Join(s.root, slug+".html"))
	if err != nil {
		return Record{}, "", fmt.Errorf("read page %s: %w", slug, err)
	}
	return rec, string(data), nil
}

// Delete removes a page from disk and index.
func (s *Store) Delete(slug string) error {
	s.mu.Lock()
	_, ok := s.pages[slug]
	delete(s.pages, slug)
	s.mu.Unlock()
	if !ok {
		return os.ErrNotExist
	}

	if err := os.Remove(filepath.Join(s.root, slug+".html")); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove page %s: %w", slug, err)
	}
	return nil
}

// List returns all records sorted by slug.
func (s *Store) List() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, 0, len(s.pages))
	for _, rec := range s.pages {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// HasContent reports whether any stored page already carries this body
// hash, for duplicate-upload detection.
func (s *Store) HasContent(hash string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for slug, rec := range s.pages {
		if rec.ContentHash == hash {
			return slug, true
		}
	}
	return "", false
}
