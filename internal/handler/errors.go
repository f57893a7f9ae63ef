package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/voyage/backend/internal/domain"
)

// errorBody is the failure envelope every endpoint returns.
type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

const internalErrorMessage = "Internal server error."

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Success: false, Message: message})
}

// writeServiceError maps a service error onto the HTTP taxonomy.
// notFound is the message for domain.ErrNotFound, since only the handler
// knows what was being looked up. Unexpected errors are logged with the
// request ID and reported as a bare 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, unwrapMessage(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "User already exists with this email.")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, unwrapMessage(err, domain.ErrUnauthorized))
	default:
		s.log.ErrorContext(r.Context(), "request failed",
			"error", err,
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
		writeError(w, http.StatusInternalServerError, internalErrorMessage)
	}
}

// unwrapMessage extracts the human-readable detail that follows a wrapped
// sentinel, e.g. "service.X: validation error: duration must be ..." gives
// "duration must be ...".
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}

// decodeJSON reads a JSON request body into v, answering 400 or 413 itself
// when it cannot. It reports whether the handler should continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeError(w, http.StatusRequestEntityTooLarge, "Request body too large.")
		return false
	}
	writeError(w, http.StatusBadRequest, "Invalid request body.")
	return false
}
