package parser

import (
	"strings"
	"testing"
)

func TestCSVParser_RendersTable(t *testing.T) {
	input := "name,count\nwidgets,3\nsprockets,5\n"
	p := &CSVParser{}
	pg, err := p.Parse(strings.NewReader(input), "inventory.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pg.Title != "inventory" {
		t.Errorf("expected title %q, got %q", "inventory", pg.Title)
	}
	for _, want := range []string{"<table>", "<th>name</th>", "<th>count</th>", "<td>widgets</td>", "<td>5</td>", "</table>"} {
		if !strings.Contains(pg.Body, want) {
			t.Errorf("expected body to contain %q, got %q", want, pg.Body)
		}
	}
}

func TestCSVParser_EscapesCells(t *testing.T) {
	input := "formula\na<b & c>d\n"
	p := &CSVParser{}
	pg, err := p.Parse(strings.NewReader(input), "f.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(pg.Body, "<td>a&lt;b &amp; c&gt;d</td>") {
		t.Errorf("expected escaped cell, got %q", pg.Body)
	}
}

func TestCSVParser_EmptyFile(t *testing.T) {
	p := &CSVParser{}
	pg, err := p.Parse(strings.NewReader(""), "empty.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pg.Body != "" {
		t.Errorf("expected empty body, got %q", pg.Body)
	}
}

func TestForFile_Dispatch(t *testing.T) {
	for filename, wantErr := range map[string]bool{
		"a.md":   false,
		"a.txt":  false,
		"a.html": false,
		"a.csv":  false,
		"a.pdf":  false,
		"a.docx": false,
		"a.exe":  true,
	} {
		_, err := ForFile(filename)
		if (err != nil) != wantErr {
			t.Errorf("ForFile(%q): unexpected result %v", filename, err)
		}
	}
	if IsSupportedExtension("x.MD") != true {
		t.Errorf("expected extension check to be case-insensitive")
	}
}
