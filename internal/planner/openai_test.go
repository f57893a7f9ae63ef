package planner_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/voyage/backend/internal/planner"
)

func TestOpenAICompleter_Complete(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"{\"ok\":true}"},"finish_reason":"stop"}]}`))
	}))
	t.Cleanup(srv.Close)

	c, err := planner.NewOpenAICompleter("test-key", srv.URL, "", srv.Client())
	require.NoError(t, err)

	got, err := c.Complete(t.Context(), "sys", "usr")

	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, got)
	assert.Equal(t, planner.DefaultModel, body["model"])
	assert.Equal(t, map[string]any{"type": "json_object"}, body["response_format"])
	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, msgs, 2)
}

func TestOpenAICompleter_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","choices":[]}`))
	}))
	t.Cleanup(srv.Close)

	c, err := planner.NewOpenAICompleter("k", srv.URL, "m", srv.Client())
	require.NoError(t, err)

	_, err = c.Complete(t.Context(), "s", "u")
	assert.Error(t, err)
}

func TestOpenAICompleter_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit"}}`))
	}))
	t.Cleanup(srv.Close)

	c, err := planner.NewOpenAICompleter("k", srv.URL, "m", srv.Client())
	require.NoError(t, err)

	_, err = c.Complete(t.Context(), "s", "u")
	assert.Error(t, err)
}

func TestNewOpenAICompleter_RequiresKey(t *testing.T) {
	_, err := planner.NewOpenAICompleter("", "", "", nil)
	assert.Error(t, err)
}
