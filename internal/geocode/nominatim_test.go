package geocode_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/voyage/backend/internal/geocode"
)

// newNominatim starts a test server running handler and returns a client
// pointed at it.
func newNominatim(t *testing.T, handler http.HandlerFunc) *geocode.NominatimClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return geocode.NewNominatimClient(srv.URL, "", srv.Client(), nil)
}

func TestNominatim_GeocodePlace(t *testing.T) {
	var got url.Values
	var userAgent string
	c := newNominatim(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		userAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`[{"lat":"18.9220","lon":"72.8347","display_name":"Gateway of India, Mumbai"}]`))
	})

	p, ok := c.GeocodePlace(t.Context(), "Gateway of India", "Mumbai")

	require.True(t, ok)
	assert.InDelta(t, 18.9220, p.Lat, 1e-9)
	assert.InDelta(t, 72.8347, p.Lon, 1e-9)
	assert.Equal(t, "Gateway of India, Mumbai", p.DisplayName)

	assert.Equal(t, "Gateway of India, Mumbai", got.Get("q"))
	assert.Equal(t, "1", got.Get("limit"))
	assert.Equal(t, "json", got.Get("format"))
	assert.Equal(t, "en", got.Get("accept-language"))
	assert.Equal(t, geocode.DefaultUserAgent, userAgent)
}

func TestNominatim_GeocodePlace_NoContext(t *testing.T) {
	var q string
	c := newNominatim(t, func(w http.ResponseWriter, r *http.Request) {
		q = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`[]`))
	})

	_, ok := c.GeocodePlace(t.Context(), "Mumbai", "")

	assert.False(t, ok)
	assert.Equal(t, "Mumbai", q)
}

func TestNominatim_GeocodePlace_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
		{"rate limited", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTooManyRequests) }},
		{"malformed body", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`<html>`)) }},
		{"bad coordinates", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[{"lat":"north","lon":"72.8","display_name":"x"}]`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newNominatim(t, tt.handler)
			_, ok := c.GeocodePlace(t.Context(), "Anywhere", "")
			assert.False(t, ok)
		})
	}
}

func TestNominatim_GeocodePlace_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := geocode.NewNominatimClient(srv.URL, "test-agent", nil, nil)

	_, ok := c.GeocodePlace(t.Context(), "Anywhere", "")

	assert.False(t, ok)
}

func TestNominatim_SearchSuggestions(t *testing.T) {
	var got url.Values
	c := newNominatim(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte(`[
			{"lat":"15.2993","lon":"74.1240","display_name":"Goa, India"},
			{"lat":"bad","lon":"0","display_name":"skipped"},
			{"lat":"-8.65","lon":"115.2167","display_name":"Bali, Indonesia"}
		]`))
	})

	results := c.SearchSuggestions(t.Context(), "goa")

	require.Len(t, results, 2)
	assert.Equal(t, "Goa, India", results[0].PlaceName)
	assert.Equal(t, "Goa, India", results[0].PlaceAddress)
	assert.InDelta(t, -8.65, results[1].Lat, 1e-9)
	assert.Equal(t, "5", got.Get("limit"))
	assert.Equal(t, "1", got.Get("addressdetails"))
	assert.Equal(t, "en", got.Get("accept-language"))
}

func TestNominatim_SearchSuggestions_FailureIsEmpty(t *testing.T) {
	c := newNominatim(t, func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadGateway) })

	results := c.SearchSuggestions(t.Context(), "goa")

	assert.NotNil(t, results)
	assert.Empty(t, results)
}
