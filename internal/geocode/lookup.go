// Package geocode turns itinerary text into map markers. It holds the place
// name heuristic, the best-effort geocoding client, the batched itinerary
// geocoder, and the marker presentation rules used by the map view.
package geocode

import "context"

// Place is a resolved location.
type Place struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"displayName"`
}

// Suggestion is one destination autosuggest result.
type Suggestion struct {
	PlaceName    string  `json:"placeName"`
	PlaceAddress string  `json:"placeAddress"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
}

// GeocodeLookup is a best-effort geocoding capability. Implementations never
// return errors: every failure collapses to an empty result so callers can
// simply skip what could not be resolved.
type GeocodeLookup interface {
	// SearchSuggestions returns up to five places matching query, or an
	// empty slice.
	SearchSuggestions(ctx context.Context, query string) []Suggestion

	// GeocodePlace resolves placeName, scoped by contextDestination when it
	// is non-empty. It reports false when nothing was found.
	GeocodePlace(ctx context.Context, placeName, contextDestination string) (Place, bool)
}

// query builds the free-text search string sent upstream.
func query(placeName, contextDestination string) string {
	if contextDestination == "" {
		return placeName
	}
	return placeName + ", " + contextDestination
}
