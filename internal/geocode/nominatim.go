package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkordes/voyage/backend/internal/metrics"
)

// DefaultNominatimURL is the public OpenStreetMap search endpoint.
const DefaultNominatimURL = "https://nominatim.openstreetmap.org/search"

// DefaultUserAgent identifies this client to Nominatim, whose usage policy
// requires a descriptive User-Agent.
const DefaultUserAgent = "VoyageTripPlanner/1.0"

// RequestTimeout bounds one upstream request made with the default client.
const RequestTimeout = 10 * time.Second

const suggestionLimit = 5

// NominatimClient implements GeocodeLookup against a Nominatim search API.
type NominatimClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	log        *slog.Logger
}

var _ GeocodeLookup = (*NominatimClient)(nil)

// NewNominatimClient constructs a client for baseURL. Empty arguments fall
// back to the public endpoint, DefaultUserAgent, and a client with a
// ten-second timeout.
func NewNominatimClient(baseURL, userAgent string, httpClient *http.Client, log *slog.Logger) *NominatimClient {
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: RequestTimeout}
	}
	if log == nil {
		log = slog.Default()
	}
	return &NominatimClient{baseURL: baseURL, userAgent: userAgent, httpClient: httpClient, log: log}
}

// nominatimResult is the subset of a Nominatim search result we read.
// Coordinates arrive as strings.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// SearchSuggestions implements GeocodeLookup.
func (c *NominatimClient) SearchSuggestions(ctx context.Context, q string) []Suggestion {
	params := url.Values{}
	params.Set("q", q)
	params.Set("limit", strconv.Itoa(suggestionLimit))
	params.Set("addressdetails", "1")

	results, err := c.search(ctx, params)
	if err != nil {
		c.log.DebugContext(ctx, "geocode suggestions failed", "query", q, "error", err)
		metrics.GeocodeLookups.WithLabelValues(metrics.OutcomeError).Inc()
		return []Suggestion{}
	}

	out := make([]Suggestion, 0, len(results))
	for _, r := range results {
		lat, lon, ok := parseCoords(r)
		if !ok {
			continue
		}
		out = append(out, Suggestion{PlaceName: r.DisplayName, PlaceAddress: r.DisplayName, Lat: lat, Lon: lon})
	}
	return out
}

// GeocodePlace implements GeocodeLookup.
func (c *NominatimClient) GeocodePlace(ctx context.Context, placeName, contextDestination string) (Place, bool) {
	q := query(placeName, contextDestination)
	params := url.Values{}
	params.Set("q", q)
	params.Set("limit", "1")

	results, err := c.search(ctx, params)
	if err != nil {
		c.log.DebugContext(ctx, "geocode failed", "query", q, "error", err)
		metrics.GeocodeLookups.WithLabelValues(metrics.OutcomeError).Inc()
		return Place{}, false
	}
	if len(results) == 0 {
		metrics.GeocodeLookups.WithLabelValues(metrics.OutcomeMiss).Inc()
		return Place{}, false
	}

	lat, lon, ok := parseCoords(results[0])
	if !ok {
		metrics.GeocodeLookups.WithLabelValues(metrics.OutcomeError).Inc()
		return Place{}, false
	}
	metrics.GeocodeLookups.WithLabelValues(metrics.OutcomeHit).Inc()
	return Place{Lat: lat, Lon: lon, DisplayName: results[0].DisplayName}, true
}

// search performs one GET against the search endpoint. format and
// accept-language are always set.
func (c *NominatimClient) search(ctx context.Context, params url.Values) ([]nominatimResult, error) {
	params.Set("format", "json")
	params.Set("accept-language", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return results, nil
}

func parseCoords(r nominatimResult) (float64, float64, bool) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}
