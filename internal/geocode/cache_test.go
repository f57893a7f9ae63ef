package geocode_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/voyage/backend/internal/geocode"
)

func TestCachedLookup_ReusesSuccess(t *testing.T) {
	inner := &fakeLookup{places: map[string]geocode.Place{
		"Fort Aguada, Goa": {Lat: 15.49, Lon: 73.77, DisplayName: "Fort Aguada"},
	}}
	c := geocode.NewCachedLookup(inner, time.Hour)

	first, ok := c.GeocodePlace(t.Context(), "Fort Aguada", "Goa")
	require.True(t, ok)
	second, ok := c.GeocodePlace(t.Context(), "fort aguada", "GOA")
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.callCount(), "second lookup should be served from cache")
}

func TestCachedLookup_DoesNotCacheMisses(t *testing.T) {
	inner := &fakeLookup{places: map[string]geocode.Place{}}
	c := geocode.NewCachedLookup(inner, time.Hour)

	_, ok := c.GeocodePlace(t.Context(), "Nowhere", "")
	assert.False(t, ok)
	_, ok = c.GeocodePlace(t.Context(), "Nowhere", "")
	assert.False(t, ok)

	assert.Equal(t, 2, inner.callCount())
}
