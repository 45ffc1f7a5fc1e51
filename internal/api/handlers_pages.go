package api

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// handleServePage serves a rendered page document publicly.
func (s *Server) handleServePage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	_, doc, err := s.orchestrator.Store().Get(slug)
	if err != nil {
		if os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}
		jsonError(w, "failed to read page: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(doc))
}

// handleListPages lists all stored pages.
func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	recs := s.orchestrator.Store().List()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"pages": recs, "count": len(recs)})
}

// handleGetPage returns the index record and rendered document for a slug.
func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	rec, doc, err := s.orchestrator.Store().Get(slug)
	if err != nil {
		if os.IsNotExist(err) {
			jsonError(w, "page not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to read page: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"page": rec, "html": doc})
}

// handleDeletePage removes a page from the store, the search index, and the
// remote host when publishing is configured.
func (s *Server) handleDeletePage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if err := s.orchestrator.Store().Delete(slug); err != nil {
		if os.IsNotExist(err) {
			jsonError(w, "page not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to delete page: "+err.Error(), http.StatusInternalServerError)
		return
	}
	s.orchestrator.Index().Remove(slug)

	unpublished := false
	if pub := s.orchestrator.Publisher(); pub != nil {
		if err := pub.DeletePage(r.Context(), slug); err != nil {
			s.log.Warn("remote delete failed", "slug", slug, "error", err)
		} else {
			unpublished = true
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": slug, "unpublished": unpublished})
}

// handleSearch queries the weighted search index.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		jsonError(w, "q query parameter is required", http.StatusBadRequest)
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	results := s.orchestrator.Index().Search(query, limit)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"query": query, "results": results})
}

func (s *Server) handleBuildStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"queue_depth": s.orchestrator.QueueDepth(),
		"stats":       s.orchestrator.Stats().Snapshot(),
	})
}
