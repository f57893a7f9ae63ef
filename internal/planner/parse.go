package planner

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pkordes/voyage/backend/internal/domain"
)

// ErrUnusablePlan is returned by ParsePlan when the model's answer cannot be
// stored as a trip.
var ErrUnusablePlan = errors.New("unusable plan")

// ParsePlan decodes a model answer into a plan for a trip of duration days.
// A surrounding ``` or ```json fence is tolerated. The answer is rejected when
// it is empty, not JSON, has no summary, or has the wrong number of days.
// Day numbers are rewritten to 1..duration in answer order, and hotel
// categories matching a known category in any case are rewritten to its
// canonical spelling.
func ParsePlan(raw string, duration int) (domain.Plan, error) {
	cleaned := stripFence(raw)
	if cleaned == "" {
		return domain.Plan{}, fmt.Errorf("%w: empty answer", ErrUnusablePlan)
	}

	var plan domain.Plan
	if err := json.Unmarshal([]byte(cleaned), &plan); err != nil {
		return domain.Plan{}, fmt.Errorf("%w: %v", ErrUnusablePlan, err)
	}
	if strings.TrimSpace(plan.TripSummary) == "" {
		return domain.Plan{}, fmt.Errorf("%w: missing tripSummary", ErrUnusablePlan)
	}
	if len(plan.Itinerary) != duration {
		return domain.Plan{}, fmt.Errorf("%w: itinerary has %d days, want %d", ErrUnusablePlan, len(plan.Itinerary), duration)
	}

	for i := range plan.Itinerary {
		plan.Itinerary[i].Day = i + 1
	}
	if plan.Hotels == nil {
		plan.Hotels = []domain.Hotel{}
	}
	for i := range plan.Hotels {
		plan.Hotels[i].Category = hotelCategory(plan.Hotels[i].Category)
	}
	if plan.TravelTips == nil {
		plan.TravelTips = []string{}
	}
	return plan, nil
}

func stripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSpace(s)
}

// hotelCategory returns the canonical form of c, or c trimmed when it is not
// a known category.
func hotelCategory(c string) string {
	c = strings.TrimSpace(c)
	for _, known := range domain.HotelCategories {
		if strings.EqualFold(c, known) {
			return known
		}
	}
	return c
}
