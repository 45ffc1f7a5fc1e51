package classify

import (
	"testing"
)

func TestTextInTag_JoinsFragmentsWithSingleSpace(t *testing.T) {
	got := TextInTag(isCode, "<p>a <code>b</code> c <code>d</code></p>")
	if got != "b d" {
		t.Errorf("expected %q, got %q", "b d", got)
	}
}

func TestTextInTag_NoMatches(t *testing.T) {
	if got := TextInTag(isCode, "<p>plain</p>"); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestTextInTag_SingleFragmentHasNoSeparator(t *testing.T) {
	if got := TextInTag(isCode, "<code>only</code>"); got != "only" {
		t.Errorf("expected %q, got %q", "only", got)
	}
}

func TestTextInTag_TitleAndSubtitle(t *testing.T) {
	page := `<header><h1>Big Title</h1><h2>Small Words</h2></header><h1>Section</h1>`
	if got := TextInTag(Properties.Title, page); got != "Big Title" {
		t.Errorf("title: expected %q, got %q", "Big Title", got)
	}
	if got := TextInTag(Properties.Subtitle, page); got != "Small Words" {
		t.Errorf("subtitle: expected %q, got %q", "Small Words", got)
	}
}

func TestTextSpans_IncludesEveryTextToken(t *testing.T) {
	depth := func(p Properties) int {
		if p.Heading() {
			return 2
		}
		return 1
	}
	spans := TextSpans(depth, "<h1>title</h1>body<script>js()</script>")
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(spans))
	}
	if spans[0].Text != "title" || spans[0].Value != 2 {
		t.Errorf("span 0: expected (title,2), got (%q,%d)", spans[0].Text, spans[0].Value)
	}
	if spans[1].Text != "body" || spans[1].Value != 1 {
		t.Errorf("span 1: expected (body,1), got (%q,%d)", spans[1].Text, spans[1].Value)
	}
	// Script text is not filtered here; derive sees Script=true and callers decide.
	if spans[2].Text != "js()" {
		t.Errorf("span 2: expected script text present, got %q", spans[2].Text)
	}
}

func TestTextSpans_EmptyMarkup(t *testing.T) {
	if spans := TextSpans(func(Properties) bool { return true }, ""); len(spans) != 0 {
		t.Errorf("expected no spans, got %d", len(spans))
	}
}
