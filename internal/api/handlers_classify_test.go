package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return &Server{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleExtract_CodeText(t *testing.T) {
	s := testServer(t)
	rec := postJSON(t, s.handleExtract, `{"html":"<p>a <code>b</code> c <code>d</code></p>","predicate":"code"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["text"] != "b d" {
		t.Errorf("expected text %q, got %q", "b d", resp["text"])
	}
}

func TestHandleExtract_UnknownPredicate(t *testing.T) {
	s := testServer(t)
	rec := postJSON(t, s.handleExtract, `{"html":"<p>x</p>","predicate":"bogus"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "heading") {
		t.Errorf("expected error to list accepted predicates, got %s", rec.Body.String())
	}
}

func TestHandleTransform_SanitizeAndDemote(t *testing.T) {
	s := testServer(t)
	rec := postJSON(t, s.handleTransform, `{"html":"<h1>T</h1><script>x</script>","transforms":["sanitize","demote"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	got, _ := resp["html"].(string)
	if got != "<h2>T</h2>" {
		t.Errorf("expected %q, got %q", "<h2>T</h2>", got)
	}
}

func TestHandleTransform_UnknownTransform(t *testing.T) {
	s := testServer(t)
	rec := postJSON(t, s.handleTransform, `{"html":"<p>x</p>","transforms":["minify"]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RejectsBadKey(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthMiddleware("secret", log)(next)

	req := httptest.NewRequest(http.MethodGet, "/api/pages", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without header, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/pages", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with wrong key, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/pages", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 with correct key, got %d", rec.Code)
	}
}
