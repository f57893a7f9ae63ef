package handler

import (
	"net/http"

	"github.com/pkordes/voyage/backend/internal/domain"
	"github.com/pkordes/voyage/backend/internal/geocode"
	"github.com/pkordes/voyage/backend/internal/middleware"
	"github.com/pkordes/voyage/backend/internal/service"
)

const tripNotFound = "Trip not found."

type tripResponse struct {
	Success bool        `json:"success"`
	Trip    domain.Trip `json:"trip"`
	IsDemo  bool        `json:"isDemo,omitempty"`
	Message string      `json:"message,omitempty"`
}

type tripListResponse struct {
	Success bool                 `json:"success"`
	Count   int                  `json:"count"`
	Total   int64                `json:"total"`
	Page    int                  `json:"page"`
	Limit   int                  `json:"limit"`
	Pages   int                  `json:"pages"`
	Trips   []domain.TripSummary `json:"trips"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type markersResponse struct {
	Success bool `json:"success"`
	geocode.View
}

// GenerateTrip handles POST /generate-trip.
func (s *Server) GenerateTrip(w http.ResponseWriter, r *http.Request) {
	var prefs domain.Preferences
	if !decodeJSON(w, r, &prefs) {
		return
	}

	trip, isDemo, err := s.trips.Generate(r.Context(), middleware.UserID(r.Context()), prefs)
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}

	resp := tripResponse{Success: true, Trip: trip, IsDemo: isDemo}
	if isDemo {
		resp.Message = service.DemoMessage
	}
	writeJSON(w, http.StatusCreated, resp)
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=50, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		writeError(w, http.StatusBadRequest, "page must be an integer.")
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit must be an integer.")
		return
	}
	params := domain.NewPaginationParams(page, limit)

	trips, total, err := s.trips.List(r.Context(), middleware.UserID(r.Context()), params)
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, tripListResponse{
		Success: true,
		Count:   len(trips),
		Total:   total,
		Page:    params.Page,
		Limit:   params.Limit,
		Pages:   params.Pages(total),
		Trips:   trips,
	})
}

// GetTrip handles GET /trips/{id}.
// A malformed id is indistinguishable from a missing trip.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, tripNotFound)
		return
	}
	trip, err := s.trips.GetByID(r.Context(), middleware.UserID(r.Context()), id)
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, tripResponse{Success: true, Trip: trip})
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, tripNotFound)
		return
	}
	if err := s.trips.Delete(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Trip deleted successfully."})
}

// GetTripMarkers handles GET /trips/{id}/markers.
// ?day=N limits the visible markers to day N plus the destination pin;
// ?highlight=I flies the viewport to marker I for a few seconds.
// A client that goes away mid-geocode gets no partial markers.
func (s *Server) GetTripMarkers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, tripNotFound)
		return
	}
	day, err := queryInt(r, "day")
	if err != nil {
		writeError(w, http.StatusBadRequest, "day must be an integer.")
		return
	}
	highlight, err := queryInt(r, "highlight")
	if err != nil {
		writeError(w, http.StatusBadRequest, "highlight must be an integer.")
		return
	}

	q := service.MarkerQuery{Highlight: highlight}
	if day != nil {
		q.Day = *day
	}
	view, err := s.trips.Markers(r.Context(), middleware.UserID(r.Context()), id, q)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, markersResponse{Success: true, View: view})
}
