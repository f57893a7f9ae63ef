package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pkordes/voyage/backend/internal/domain"
	"github.com/pkordes/voyage/backend/internal/middleware"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "destination", "day", "title", "morning", "afternoon", "evening",
}

// exportRow is the JSON shape of one exported itinerary day.
type exportRow struct {
	TripID      string `json:"tripId"`
	Destination string `json:"destination"`
	Day         int    `json:"day"`
	Title       string `json:"title,omitempty"`
	Morning     string `json:"morning"`
	Afternoon   string `json:"afternoon"`
	Evening     string `json:"evening"`
}

type exportResponse struct {
	Success bool        `json:"success"`
	Rows    []exportRow `json:"rows"`
}

// ExportTrip handles GET /trips/{id}/export.
// Use ?format=csv to receive a CSV attachment; default is JSON.
func (s *Server) ExportTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, tripNotFound)
		return
	}
	format, err := queryString(r, "format")
	if err != nil || (format != "" && format != "csv" && format != "json") {
		writeError(w, http.StatusBadRequest, "format must be csv or json.")
		return
	}

	rows, err := s.export.Export(r.Context(), middleware.UserID(r.Context()), id)
	if err != nil {
		s.writeServiceError(w, r, err, tripNotFound)
		return
	}

	if format == "csv" {
		writeCSV(w, id.String(), rows)
		return
	}
	out := make([]exportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, exportRow(row))
	}
	writeJSON(w, http.StatusOK, exportResponse{Success: true, Rows: out})
}

// writeCSV encodes rows as an attachment named after the trip.
func writeCSV(w http.ResponseWriter, tripID string, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	// bytes.Buffer writes never fail, so the per-row errors are ignored.
	_ = cw.Write(csvHeaders)
	for _, r := range rows {
		_ = cw.Write([]string{
			r.TripID,
			r.Destination,
			strconv.Itoa(r.Day),
			r.Title,
			r.Morning,
			r.Afternoon,
			r.Evening,
		})
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="trip-%s.csv"`, tripID))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
