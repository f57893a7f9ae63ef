package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/voyage/backend/internal/geocode"
	"github.com/pkordes/voyage/backend/internal/handler"
)

type stubSuggester struct {
	got []string
}

func (s *stubSuggester) SearchSuggestions(_ context.Context, q string) []geocode.Suggestion {
	s.got = append(s.got, q)
	if q == "nowhere" {
		return nil
	}
	return []geocode.Suggestion{{PlaceName: "Goa", PlaceAddress: "Goa, India", Lat: 15.3, Lon: 74.1}}
}

type stubMappls struct {
	configured bool
	token      func() (string, error)
	search     func(q string) ([]json.RawMessage, error)
}

func (s *stubMappls) Configured() bool                      { return s.configured }
func (s *stubMappls) Token(context.Context) (string, error) { return s.token() }
func (s *stubMappls) Search(_ context.Context, q string) ([]json.RawMessage, error) {
	return s.search(q)
}

var _ handler.MapplsClient = (*stubMappls)(nil)

func TestSuggestPlaces(t *testing.T) {
	sg := &stubSuggester{}
	h := newRouter(handler.Deps{Suggest: sg})

	rec := do(t, h, http.MethodGet, "/geocode/suggest?q=goa", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[map[string]any](t, rec)["results"], 1)

	rec = do(t, h, http.MethodGet, "/geocode/suggest?q=nowhere", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"results":[]}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/geocode/suggest?q=++", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"goa", "nowhere"}, sg.got, "blank queries never reach the geocoder")
}

func TestSuggestPlaces_400_RepeatedQuery(t *testing.T) {
	sg := &stubSuggester{}

	rec := do(t, newRouter(handler.Deps{Suggest: sg}), http.MethodGet, "/geocode/suggest?q=goa&q=delhi", nil, true)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decode[errorEnvelope](t, rec).Success)
	assert.Empty(t, sg.got)
}

func TestMapplsToken(t *testing.T) {
	m := &stubMappls{configured: true, token: func() (string, error) { return "abc", nil }}

	rec := do(t, newRouter(handler.Deps{Mappls: m}), http.MethodGet, "/mappls/token", nil, false)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"token":"abc"}`, rec.Body.String())
}

func TestMapplsToken_500(t *testing.T) {
	m := &stubMappls{configured: true, token: func() (string, error) { return "", errors.New("upstream 401") }}

	rec := do(t, newRouter(handler.Deps{Mappls: m}), http.MethodGet, "/mappls/token", nil, false)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to get Mappls token", decode[errorEnvelope](t, rec).Message)
}

func TestMappls_503_NotConfigured(t *testing.T) {
	h := newRouter(handler.Deps{Mappls: &stubMappls{}})

	assert.Equal(t, http.StatusServiceUnavailable, do(t, h, http.MethodGet, "/mappls/token", nil, false).Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(t, h, http.MethodGet, "/mappls/search?query=x", nil, true).Code)
}

func TestMapplsSearch(t *testing.T) {
	m := &stubMappls{configured: true, search: func(q string) ([]json.RawMessage, error) {
		assert.Equal(t, "india gate", q)
		return []json.RawMessage{json.RawMessage(`{"placeName":"India Gate"}`)}, nil
	}}
	h := newRouter(handler.Deps{Mappls: m})

	rec := do(t, h, http.MethodGet, "/mappls/search?query=india+gate", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"results":[{"placeName":"India Gate"}]}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/mappls/search", nil, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/mappls/search?query=a&query=b", nil, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/mappls/search?query=x", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMapplsSearch_500(t *testing.T) {
	m := &stubMappls{configured: true, search: func(string) ([]json.RawMessage, error) {
		return nil, errors.New("boom")
	}}

	rec := do(t, newRouter(handler.Deps{Mappls: m}), http.MethodGet, "/mappls/search?query=x", nil, true)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to search places", decode[errorEnvelope](t, rec).Message)
}
