package handler

import (
	"net/http"

	"github.com/pkordes/voyage/backend/spec"
)

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// GetHealth handles GET /health.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Message: "Voyage API is running"})
}

// GetOpenAPI serves the embedded API description.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}
