package planner

import (
	"fmt"
	"strings"

	"github.com/pkordes/voyage/backend/internal/domain"
)

// Fallback returns the template plan for destination. It uses nothing but
// the destination name and always yields exactly duration days (at least one).
func Fallback(destination string, duration int) domain.Plan {
	dest := strings.TrimSpace(destination)
	if dest == "" {
		dest = "your destination"
	}
	if duration < 1 {
		duration = 1
	}

	days := make([]domain.DayPlan, duration)
	for i := range days {
		days[i] = domain.DayPlan{
			Day:       i + 1,
			Title:     fmt.Sprintf("Discovering %s - Part %d", dest, i+1),
			Morning:   fmt.Sprintf("Visit the central landmarks and famous temples in %s.", dest),
			Afternoon: fmt.Sprintf("Explore the local markets and cultural centers of %s.", dest),
			Evening:   "Enjoy a peaceful evening walk and dinner at a top-rated local restaurant.",
		}
	}

	return domain.Plan{
		TripSummary: fmt.Sprintf("A relaxed exploration of %s shaped around your interests. "+
			"Our AI planner is unavailable right now, so this itinerary was built from a standard template.", dest),
		BudgetBreakdown: domain.BudgetBreakdown{Stay: 5000, Food: 3000, Transport: 2000, Activities: 4000, Total: 14000},
		Itinerary:       days,
		Hotels: []domain.Hotel{
			{Name: "Grand Heritage Hotel", PricePerNight: 3500, Category: "4-star", LocationArea: "City Center", Reason: "Central location with consistently good reviews."},
			{Name: "Riverside Resort", PricePerNight: 5500, Category: "Luxury", LocationArea: "Riverside", Reason: "Quiet grounds for a relaxing stay."},
			{Name: "Backpackers Nest", PricePerNight: 1200, Category: "Budget", LocationArea: "Old Town", Reason: "Clean, friendly and close to transport."},
		},
		TravelTips: []string{
			"Carry a power bank",
			"Use local transport",
			"Try the street food",
			"Respect local customs",
		},
	}
}
