package domain

// ExportRow is a single row in an itinerary export: one row per day, with
// the trip's destination repeated so a CSV file stands on its own.
type ExportRow struct {
	TripID      string
	Destination string
	Day         int
	Title       string
	Morning     string
	Afternoon   string
	Evening     string
}

// ExportRows flattens a trip's itinerary into export rows in day order.
func ExportRows(t Trip) []ExportRow {
	rows := make([]ExportRow, 0, len(t.Itinerary))
	for _, d := range t.Itinerary {
		rows = append(rows, ExportRow{
			TripID:      t.ID.String(),
			Destination: t.Destination,
			Day:         d.Day,
			Title:       d.Title,
			Morning:     d.Morning,
			Afternoon:   d.Afternoon,
			Evening:     d.Evening,
		})
	}
	return rows
}
