// Package handler implements the HTTP handlers for the Voyage API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (auth.go, trip.go, etc.) but all share the same Server struct so they
// can access its dependencies. Routes wires them onto a chi router.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/voyage/backend/internal/domain"
	"github.com/pkordes/voyage/backend/internal/geocode"
	"github.com/pkordes/voyage/backend/internal/middleware"
	"github.com/pkordes/voyage/backend/internal/service"
)

// AuthServicer defines the account operations the auth handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type AuthServicer interface {
	Register(ctx context.Context, name, email, password string) (service.Session, error)
	Login(ctx context.Context, email, password string) (service.Session, error)
	Me(ctx context.Context, userID uuid.UUID) (domain.User, error)
}

// TripServicer defines the business operations the trip handlers depend on.
type TripServicer interface {
	Generate(ctx context.Context, userID uuid.UUID, prefs domain.Preferences) (domain.Trip, bool, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.TripSummary, int64, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Markers(ctx context.Context, userID, id uuid.UUID, q service.MarkerQuery) (geocode.View, error)
}

// ExportServicer flattens one trip for download.
type ExportServicer interface {
	Export(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ExportRow, error)
}

// PlaceSuggester backs destination autocomplete. It never fails.
type PlaceSuggester interface {
	SearchSuggestions(ctx context.Context, q string) []geocode.Suggestion
}

// MapplsClient is the commercial place search integration.
type MapplsClient interface {
	Configured() bool
	Token(ctx context.Context) (string, error)
	Search(ctx context.Context, query string) ([]json.RawMessage, error)
}

// Deps are the Server's collaborators. Any of them may be nil in tests that
// do not exercise the corresponding routes.
type Deps struct {
	Auth     AuthServicer
	Trips    TripServicer
	Export   ExportServicer
	Suggest  PlaceSuggester
	Mappls   MapplsClient
	Verifier middleware.TokenVerifier
	Log      *slog.Logger
}

// Server holds every dependency the handlers need.
type Server struct {
	auth     AuthServicer
	trips    TripServicer
	export   ExportServicer
	suggest  PlaceSuggester
	mappls   MapplsClient
	verifier middleware.TokenVerifier
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		auth:     d.Auth,
		trips:    d.Trips,
		export:   d.Export,
		suggest:  d.Suggest,
		mappls:   d.Mappls,
		verifier: d.Verifier,
		log:      log,
	}
}

// Routes returns the API router. Mount it under /api.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
	})

	r.Get("/health", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Post("/auth/register", s.Register)
	r.Post("/auth/login", s.Login)
	r.Get("/mappls/token", s.GetMapplsToken)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(s.verifier))

		r.Get("/auth/me", s.Me)

		r.Post("/generate-trip", s.GenerateTrip)
		r.Get("/trips", s.ListTrips)
		r.Get("/trips/{id}", s.GetTrip)
		r.Delete("/trips/{id}", s.DeleteTrip)
		r.Get("/trips/{id}/markers", s.GetTripMarkers)
		r.Get("/trips/{id}/export", s.ExportTrip)

		r.Get("/geocode/suggest", s.SuggestPlaces)
		r.Get("/mappls/search", s.SearchMappls)
	})
	return r
}
