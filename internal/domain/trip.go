// Package domain contains the core data types for the Voyage trip planner.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, planner, geocode, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// BudgetCategory is the spending tier a traveller picks for a trip.
type BudgetCategory string

const (
	BudgetLow     BudgetCategory = "Low"
	BudgetMedium  BudgetCategory = "Medium"
	BudgetPremium BudgetCategory = "Premium"
)

// GroupType describes who is travelling.
type GroupType string

const (
	GroupSolo    GroupType = "Solo"
	GroupCouple  GroupType = "Couple"
	GroupFriends GroupType = "Friends"
	GroupFamily  GroupType = "Family"
)

// Interest is one of the fixed activity themes a traveller can select.
type Interest string

const (
	InterestAdventure  Interest = "Adventure"
	InterestCultural   Interest = "Cultural"
	InterestNature     Interest = "Nature"
	InterestNightlife  Interest = "Nightlife"
	InterestSpiritual  Interest = "Spiritual"
	InterestRelaxation Interest = "Relaxation"
)

// BudgetCategories, GroupTypes and Interests list the accepted enum values
// in display order.
var (
	BudgetCategories = []BudgetCategory{BudgetLow, BudgetMedium, BudgetPremium}
	GroupTypes       = []GroupType{GroupSolo, GroupCouple, GroupFriends, GroupFamily}
	Interests        = []Interest{
		InterestAdventure, InterestCultural, InterestNature,
		InterestNightlife, InterestSpiritual, InterestRelaxation,
	}
	HotelCategories = []string{"Budget", "3-star", "4-star", "5-star", "Luxury"}
)

// MinDuration and MaxDuration bound the number of days a trip may span.
const (
	MinDuration = 1
	MaxDuration = 15
)

// MinBudget and MaxBudget bound the trip budget to what the NUMERIC(14,2)
// budget column can hold as a positive value.
const (
	MinBudget = 0.01
	MaxBudget = 100_000_000_000
)

// Preferences is what a user submits to have a trip generated.
type Preferences struct {
	Destination    string         `json:"destination"`
	Duration       int            `json:"duration"`
	Budget         float64        `json:"budget"`
	BudgetCategory BudgetCategory `json:"budgetCategory"`
	GroupType      GroupType      `json:"groupType"`
	Interests      []Interest     `json:"interests"`
}

// BudgetBreakdown splits the estimated trip cost by spending area.
// Total is requested to stay within the trip budget but is never enforced.
type BudgetBreakdown struct {
	Stay       float64 `json:"stay"`
	Food       float64 `json:"food"`
	Transport  float64 `json:"transport"`
	Activities float64 `json:"activities"`
	Total      float64 `json:"total"`
}

// DayPlan is one day of an itinerary. Day is 1-based and contiguous.
type DayPlan struct {
	Day       int    `json:"day"`
	Title     string `json:"title,omitempty"`
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
}

// Hotel is a stay recommendation attached to a trip.
type Hotel struct {
	Name          string  `json:"name"`
	PricePerNight float64 `json:"pricePerNight"`
	Category      string  `json:"category"`
	LocationArea  string  `json:"locationArea"`
	Reason        string  `json:"reason"`
}

// Plan is the generated part of a trip: everything the model (or the
// fallback template) produces from a set of Preferences.
type Plan struct {
	TripSummary     string          `json:"tripSummary"`
	BudgetBreakdown BudgetBreakdown `json:"budgetBreakdown"`
	Itinerary       []DayPlan       `json:"itinerary"`
	Hotels          []Hotel         `json:"hotels"`
	TravelTips      []string        `json:"travelTips"`
}

// Trip is one user's generated plan. It is written once and never mutated;
// it is removed only by an explicit delete from its owner.
type Trip struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"userId"`

	Destination    string         `json:"destination"`
	Duration       int            `json:"duration"`
	Budget         float64        `json:"budget"`
	BudgetCategory BudgetCategory `json:"budgetCategory"`
	GroupType      GroupType      `json:"groupType"`
	Interests      []Interest     `json:"interests"`

	Plan

	CreatedAt time.Time `json:"createdAt"`
}

// NewTrip assembles a Trip for userID from the submitted preferences and a
// generated plan. ID and CreatedAt are left for the store to assign.
func NewTrip(userID uuid.UUID, prefs Preferences, plan Plan) Trip {
	return Trip{
		UserID:         userID,
		Destination:    prefs.Destination,
		Duration:       prefs.Duration,
		Budget:         prefs.Budget,
		BudgetCategory: prefs.BudgetCategory,
		GroupType:      prefs.GroupType,
		Interests:      prefs.Interests,
		Plan:           plan,
	}
}

// TripSummary is the list view of a trip returned by GET /trips.
type TripSummary struct {
	ID              uuid.UUID       `json:"id"`
	Destination     string          `json:"destination"`
	Duration        int             `json:"duration"`
	Budget          float64         `json:"budget"`
	BudgetCategory  BudgetCategory  `json:"budgetCategory"`
	GroupType       GroupType       `json:"groupType"`
	TripSummary     string          `json:"tripSummary"`
	BudgetBreakdown BudgetBreakdown `json:"budgetBreakdown"`
	CreatedAt       time.Time       `json:"createdAt"`
}
