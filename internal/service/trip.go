// Package service contains the business logic for the Voyage API.
// Services validate inputs, enforce business rules, and orchestrate repo calls
// and outbound integrations. No SQL lives here: services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pkordes/voyage/backend/internal/domain"
	"github.com/pkordes/voyage/backend/internal/geocode"
	"github.com/pkordes/voyage/backend/internal/metrics"
	"github.com/pkordes/voyage/backend/internal/notify"
	"github.com/pkordes/voyage/backend/internal/repo"
)

// DemoMessage accompanies a trip whose plan came from the fallback template.
const DemoMessage = "AI service temporarily unavailable. Using demo itinerary."

// SaveFailedMessage is published when a generated trip cannot be stored.
const SaveFailedMessage = "Failed to generate trip. Please try again."

// Planner produces a plan for validated preferences. It never fails; isDemo
// reports that the fallback template was used.
type Planner interface {
	Plan(ctx context.Context, prefs domain.Preferences) (plan domain.Plan, isDemo bool)
}

// Geocoder turns an itinerary into map markers.
type Geocoder interface {
	Geocode(ctx context.Context, destination string, itinerary []domain.DayPlan, progress geocode.ProgressFunc) ([]domain.Marker, error)
}

// Notifier receives user-facing notices.
type Notifier interface {
	Publish(n notify.Notice)
}

// TripService implements business logic for Trip operations.
type TripService struct {
	repo     repo.TripRepo
	planner  Planner
	geocoder Geocoder
	notices  Notifier
	now      func() time.Time
	log      *slog.Logger
}

// NewTripService constructs a TripService. notices may be nil.
func NewTripService(r repo.TripRepo, p Planner, g Geocoder, notices Notifier, log *slog.Logger) *TripService {
	if log == nil {
		log = slog.Default()
	}
	return &TripService{repo: r, planner: p, geocoder: g, notices: notices, now: time.Now, log: log}
}

// SetClock replaces the time source used for marker highlights.
func (s *TripService) SetClock(now func() time.Time) { s.now = now }

// Generate validates prefs, obtains a plan and persists the resulting trip
// exactly once. isDemo is true when the plan came from the fallback template.
// Returns domain.ErrValidation if prefs violate business rules; nothing
// external is called in that case.
func (s *TripService) Generate(ctx context.Context, userID uuid.UUID, prefs domain.Preferences) (domain.Trip, bool, error) {
	prefs, err := NormalizePreferences(prefs)
	if err != nil {
		return domain.Trip{}, false, err
	}

	plan, isDemo := s.planner.Plan(ctx, prefs)

	trip, err := s.repo.Create(ctx, domain.NewTrip(userID, prefs, plan))
	if err != nil {
		s.publish(notify.Notice{Kind: notify.KindError, Message: SaveFailedMessage, UserID: userID})
		return domain.Trip{}, false, fmt.Errorf("service.TripService.Generate: %w", err)
	}

	if isDemo {
		metrics.TripGenerations.WithLabelValues(metrics.SourceFallback).Inc()
		s.publish(notify.Notice{Kind: notify.KindInfo, Message: DemoMessage, UserID: userID})
	} else {
		metrics.TripGenerations.WithLabelValues(metrics.SourceAI).Inc()
		s.publish(notify.Notice{Kind: notify.KindSuccess, Message: "Your trip to " + trip.Destination + " is ready!", UserID: userID})
	}
	return trip, isDemo, nil
}

// GetByID returns a single trip owned by userID.
// Returns domain.ErrNotFound if it does not exist or belongs to someone else.
func (s *TripService) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// List returns one page of the user's trip summaries, newest first, and the
// user's total trip count. Always returns a non-nil slice.
func (s *TripService) List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.TripSummary, int64, error) {
	trips, total, err := s.repo.ListByUser(ctx, userID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.TripSummary{}
	}
	return trips, total, nil
}

// Delete removes a trip owned by userID.
// Returns domain.ErrNotFound if it does not exist or belongs to someone else.
func (s *TripService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// MarkerQuery selects what a map view shows. Day 0 shows every day.
// Highlight, when set, is an index into the full marker list.
type MarkerQuery struct {
	Day       int
	Highlight *int
}

// Markers geocodes the trip's itinerary and presents it for the map.
// An out-of-range Highlight index is ignored.
func (s *TripService) Markers(ctx context.Context, userID, id uuid.UUID, q MarkerQuery) (geocode.View, error) {
	if q.Day < 0 {
		return geocode.View{}, fmt.Errorf("%w: day must not be negative", domain.ErrValidation)
	}

	trip, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return geocode.View{}, fmt.Errorf("service.TripService.Markers: %w", err)
	}

	markers, err := s.geocoder.Geocode(ctx, trip.Destination, trip.Itinerary, nil)
	if err != nil {
		return geocode.View{}, fmt.Errorf("service.TripService.Markers: %w", err)
	}
	if markers == nil {
		markers = []domain.Marker{}
	}

	places := 0
	for _, m := range markers {
		if !m.IsDestination {
			places++
		}
	}
	s.publish(notify.Notice{Kind: notify.KindSuccess, Message: fmt.Sprintf("Found %d locations on the map", places), UserID: userID})

	now := s.now()
	var h *geocode.Highlight
	if q.Highlight != nil && *q.Highlight >= 0 && *q.Highlight < len(markers) {
		h = geocode.NewHighlight(markers[*q.Highlight], now)
	}
	return geocode.Present(markers, q.Day, h, now), nil
}

func (s *TripService) publish(n notify.Notice) {
	if s.notices != nil {
		s.notices.Publish(n)
	}
}

// NormalizePreferences trims and case-folds prefs and enforces the
// generation rules:
//   - destination must be non-empty after trimming
//   - duration must be between domain.MinDuration and domain.MaxDuration
//   - budget must be between domain.MinBudget and domain.MaxBudget
//   - budget category and group type must be known values
//   - at least one known interest; duplicates are dropped
//
// Enum values are accepted in any letter case and returned in canonical form.
func NormalizePreferences(prefs domain.Preferences) (domain.Preferences, error) {
	title := cases.Title(language.English)

	prefs.Destination = strings.TrimSpace(prefs.Destination)
	if prefs.Destination == "" {
		return prefs, fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if prefs.Duration < domain.MinDuration || prefs.Duration > domain.MaxDuration {
		return prefs, fmt.Errorf("%w: duration must be between %d and %d days", domain.ErrValidation, domain.MinDuration, domain.MaxDuration)
	}
	if prefs.Budget < domain.MinBudget || prefs.Budget > domain.MaxBudget {
		return prefs, fmt.Errorf("%w: budget must be between %.2f and %.0f", domain.ErrValidation, domain.MinBudget, float64(domain.MaxBudget))
	}

	prefs.BudgetCategory = domain.BudgetCategory(title.String(strings.TrimSpace(string(prefs.BudgetCategory))))
	if !slices.Contains(domain.BudgetCategories, prefs.BudgetCategory) {
		return prefs, fmt.Errorf("%w: budgetCategory must be one of Low, Medium, Premium", domain.ErrValidation)
	}
	prefs.GroupType = domain.GroupType(title.String(strings.TrimSpace(string(prefs.GroupType))))
	if !slices.Contains(domain.GroupTypes, prefs.GroupType) {
		return prefs, fmt.Errorf("%w: groupType must be one of Solo, Couple, Friends, Family", domain.ErrValidation)
	}

	interests := make([]domain.Interest, 0, len(prefs.Interests))
	for _, in := range prefs.Interests {
		in = domain.Interest(title.String(strings.TrimSpace(string(in))))
		if !slices.Contains(domain.Interests, in) {
			return prefs, fmt.Errorf("%w: unknown interest %q", domain.ErrValidation, in)
		}
		if !slices.Contains(interests, in) {
			interests = append(interests, in)
		}
	}
	if len(interests) == 0 {
		return prefs, fmt.Errorf("%w: select at least one interest", domain.ErrValidation)
	}
	prefs.Interests = interests

	return prefs, nil
}
