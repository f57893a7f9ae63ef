package domain

// Period names a slot of a day plan, or the destination pin.
type Period string

const (
	PeriodDestination Period = "destination"
	PeriodMorning     Period = "morning"
	PeriodAfternoon   Period = "afternoon"
	PeriodEvening     Period = "evening"
)

// Marker is a derived map annotation. It is recomputed every time a trip's
// map view is requested and is never persisted.
// Day is 0 for the destination pin.
type Marker struct {
	Day           int     `json:"day"`
	Period        Period  `json:"period"`
	PeriodLabel   string  `json:"periodLabel,omitempty"`
	Name          string  `json:"name"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	Text          string  `json:"text"`
	Title         string  `json:"title,omitempty"`
	IsDestination bool    `json:"isDestination,omitempty"`
	Color         string  `json:"color,omitempty"`
}
