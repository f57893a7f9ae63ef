package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/voyage/backend/internal/geocode"
	"github.com/pkordes/voyage/backend/internal/mappls"
)

type suggestResponse struct {
	Success bool                 `json:"success"`
	Results []geocode.Suggestion `json:"results"`
}

type mapplsTokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

type mapplsSearchResponse struct {
	Success bool              `json:"success"`
	Results []json.RawMessage `json:"results"`
}

// SuggestPlaces handles GET /geocode/suggest?q=.
// Lookup failures produce an empty list, never an error status.
func (s *Server) SuggestPlaces(w http.ResponseWriter, r *http.Request) {
	q, err := queryString(r, "q")
	if err != nil {
		writeError(w, http.StatusBadRequest, "q must be a single string.")
		return
	}
	q = strings.TrimSpace(q)

	results := []geocode.Suggestion{}
	if q != "" {
		if got := s.suggest.SearchSuggestions(r.Context(), q); got != nil {
			results = got
		}
	}
	writeJSON(w, http.StatusOK, suggestResponse{Success: true, Results: results})
}

// GetMapplsToken handles GET /mappls/token.
func (s *Server) GetMapplsToken(w http.ResponseWriter, r *http.Request) {
	if s.mappls == nil || !s.mappls.Configured() {
		writeError(w, http.StatusServiceUnavailable, "Mappls integration is not configured.")
		return
	}
	token, err := s.mappls.Token(r.Context())
	if err != nil {
		s.log.ErrorContext(r.Context(), "mappls token failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get Mappls token")
		return
	}
	writeJSON(w, http.StatusOK, mapplsTokenResponse{Success: true, Token: token})
}

// SearchMappls handles GET /mappls/search?query=.
func (s *Server) SearchMappls(w http.ResponseWriter, r *http.Request) {
	if s.mappls == nil || !s.mappls.Configured() {
		writeError(w, http.StatusServiceUnavailable, "Mappls integration is not configured.")
		return
	}
	query, err := queryString(r, "query")
	if err != nil || strings.TrimSpace(query) == "" {
		writeError(w, http.StatusBadRequest, "Query parameter is required")
		return
	}

	results, err := s.mappls.Search(r.Context(), query)
	if err != nil {
		if errors.Is(err, mappls.ErrNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "Mappls integration is not configured.")
			return
		}
		s.log.ErrorContext(r.Context(), "mappls search failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to search places")
		return
	}
	writeJSON(w, http.StatusOK, mapplsSearchResponse{Success: true, Results: results})
}
