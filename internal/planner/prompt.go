package planner

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pkordes/voyage/backend/internal/domain"
)

// Currency is the local currency every amount in a plan must use.
type Currency struct {
	Code   string
	Symbol string
}

// DefaultCurrency is Indian Rupees.
var DefaultCurrency = Currency{Code: "INR", Symbol: "₹"}

const systemPrompt = "You are an expert AI travel planner. Respond ONLY with valid JSON: no markdown, no explanation, no comments."

// Amount formats v as a whole-number amount with the currency symbol and
// locale digit grouping, e.g. "₹20,000".
func (c Currency) Amount(v float64) string {
	tag := language.English
	if c.Code == "INR" {
		tag = language.MustParse("en-IN")
	}
	return c.Symbol + message.NewPrinter(tag).Sprintf("%d", int64(math.Round(v)))
}

// hotelBands describes the nightly price range expected for each budget tier.
func hotelBands(c Currency) string {
	return fmt.Sprintf("Low: Budget (%s-%s/night); Medium: 3-star (%s-%s/night); Premium: 4-star, 5-star or Luxury (%s+/night)",
		c.Amount(1000), c.Amount(3000), c.Amount(3000), c.Amount(7000), c.Amount(7000))
}

// BuildPrompt renders the user prompt for prefs. It pins the JSON shape, the
// day count, the hotel count, the currency and the budget ceiling.
func BuildPrompt(prefs domain.Preferences, c Currency) string {
	interests := make([]string, len(prefs.Interests))
	for i, in := range prefs.Interests {
		interests[i] = string(in)
	}
	interestList := strings.Join(interests, ", ")
	budget := c.Amount(prefs.Budget)

	var b strings.Builder
	fmt.Fprintf(&b, "Plan a trip and answer in STRICT JSON. Every monetary value MUST be in %s (symbol %s); never use any other currency.\n\n", c.Code, c.Symbol)
	b.WriteString("Traveller preferences:\n")
	fmt.Fprintf(&b, "- Destination: %s\n", prefs.Destination)
	fmt.Fprintf(&b, "- Duration: %d days\n", prefs.Duration)
	fmt.Fprintf(&b, "- Total budget: %s\n", budget)
	fmt.Fprintf(&b, "- Budget category: %s\n", prefs.BudgetCategory)
	fmt.Fprintf(&b, "- Group type: %s\n", prefs.GroupType)
	fmt.Fprintf(&b, "- Interests: %s\n\n", interestList)

	fmt.Fprintf(&b, `Use exactly this structure:
{
  "tripSummary": "two or three sentence overview",
  "budgetBreakdown": {"stay": <number in %[1]s>, "food": <number in %[1]s>, "transport": <number in %[1]s>, "activities": <number in %[1]s>, "total": <number in %[1]s>},
  "itinerary": [
    {"day": 1, "title": "theme of the day", "morning": "place, activity and estimated cost in %[2]s", "afternoon": "place, activity and estimated cost in %[2]s", "evening": "place, activity and estimated cost in %[2]s"}
  ],
  "hotels": [
    {"name": "hotel name", "pricePerNight": <number in %[1]s>, "category": "Budget|3-star|4-star|5-star|Luxury", "locationArea": "neighbourhood", "reason": "why it suits this trip"}
  ],
  "travelTips": ["tip 1", "tip 2", "tip 3", "tip 4", "tip 5"]
}

`, c.Code, c.Symbol)

	b.WriteString("Rules:\n")
	fmt.Fprintf(&b, "1. The itinerary must contain exactly %d days, numbered from 1.\n", prefs.Duration)
	fmt.Fprintf(&b, "2. Recommend 3 to 5 hotels that fit a %s budget.\n", prefs.BudgetCategory)
	fmt.Fprintf(&b, "3. budgetBreakdown.total must not exceed %s.\n", budget)
	fmt.Fprintf(&b, "4. All prices are in %s.\n", c.Code)
	fmt.Fprintf(&b, "5. Hotel price bands: %s.\n", hotelBands(c))
	fmt.Fprintf(&b, "6. Make activities relevant to: %s.\n", interestList)
	fmt.Fprintf(&b, "7. Suit the activities to a %s trip.\n", prefs.GroupType)
	b.WriteString("8. Start each morning, afternoon and evening with the place name, e.g. \"Visit Gateway of India, ...\".\n")

	return b.String()
}
