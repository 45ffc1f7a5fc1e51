// Package page holds the rendered-page model shared across the pipeline.
package page

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Meta is front matter supplied with a source document.
type Meta struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Draft       bool     `yaml:"draft"`
}

// Page is one converted document on its way to becoming a site page.
// Body is HTML markup; PlainText and Subtitle are filled during refinement.
type Page struct {
	Slug       string
	Title      string
	Subtitle   string
	Meta       Meta
	Body       string
	PlainText  string
	SourceFile string
	CreatedAt  time.Time
}

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]`)
	dashRuns     = regexp.MustCompile(`-+`)
	slugPattern  = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
)

// Slugify converts a string to a URL/path-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = dashRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 80 {
		s = strings.Trim(s[:80], "-")
	}
	return s
}

// Validate checks a page before it is stored.
func Validate(p *Page) error {
	if p == nil {
		return fmt.Errorf("nil page")
	}
	if p.Slug == "" || !slugPattern.MatchString(p.Slug) {
		return fmt.Errorf("invalid slug %q", p.Slug)
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("page %s has no title", p.Slug)
	}
	if len(p.Title) > 300 {
		return fmt.Errorf("page %s title exceeds 300 characters", p.Slug)
	}
	if strings.TrimSpace(p.Body) == "" {
		return fmt.Errorf("page %s has no content", p.Slug)
	}
	return nil
}

// Excerpt returns the first maxWords words of text, with an ellipsis when
// anything was cut.
func Excerpt(text string, maxWords int) string {
	words := strings.Fields(text)
	if maxWords <= 0 || len(words) <= maxWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:maxWords], " ") + "…"
}
