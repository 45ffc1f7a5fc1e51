package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/dgallion1/sitepress/internal/classify"
	"github.com/dgallion1/sitepress/internal/markup"
	"github.com/dgallion1/sitepress/internal/refine"
	"golang.org/x/net/html"
)

const maxInlineMarkupBytes = 2 << 20

type extractRequest struct {
	HTML      string `json:"html"`
	Predicate string `json:"predicate"`
}

// handleExtract pulls the text classified under a named predicate out of a
// markup fragment.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxInlineMarkupBytes)

	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.HTML == "" {
		jsonError(w, "html is required", http.StatusBadRequest)
		return
	}

	pred, ok := refine.PredicateByName(req.Predicate)
	if !ok {
		names := refine.PredicateNames()
		sort.Strings(names)
		jsonError(w, fmt.Sprintf("unknown predicate %q, accepted: %s", req.Predicate, strings.Join(names, ", ")), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"predicate": req.Predicate,
		"text":      classify.TextInTag(pred, req.HTML),
	})
}

type transformRequest struct {
	HTML       string   `json:"html"`
	Transforms []string `json:"transforms"`
}

var transforms = map[string]func([]html.Token) []html.Token{
	"sanitize":  refine.Sanitize,
	"demote":    refine.Demote,
	"highlight": refine.HighlightBlocks,
}

// handleTransform applies named refinement transforms, in request order, to
// a markup fragment and returns the re-serialized result.
func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxInlineMarkupBytes)

	var req transformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.HTML == "" {
		jsonError(w, "html is required", http.StatusBadRequest)
		return
	}
	if len(req.Transforms) == 0 {
		jsonError(w, "at least one transform is required", http.StatusBadRequest)
		return
	}

	tokens := markup.Tokenize(req.HTML)
	for _, name := range req.Transforms {
		fn, ok := transforms[name]
		if !ok {
			jsonError(w, fmt.Sprintf("unknown transform %q, accepted: sanitize, demote, highlight", name), http.StatusBadRequest)
			return
		}
		tokens = fn(tokens)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"transforms": req.Transforms,
		"html":       markup.Render(tokens, markup.DefaultPolicy()),
	})
}
