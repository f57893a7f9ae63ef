package geocode

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/pkordes/voyage/backend/internal/metrics"
)

// DefaultCacheTTL is how long a resolved place is reused before asking
// upstream again.
const DefaultCacheTTL = 24 * time.Hour

// CachedLookup decorates a GeocodeLookup with an in-memory TTL cache for
// GeocodePlace. Only successful lookups are cached, so a transient upstream
// failure is retried on the next map view. Suggestions pass straight through.
type CachedLookup struct {
	next  GeocodeLookup
	cache *gocache.Cache
}

var _ GeocodeLookup = (*CachedLookup)(nil)

// NewCachedLookup wraps next with a cache whose entries live for ttl.
func NewCachedLookup(next GeocodeLookup, ttl time.Duration) *CachedLookup {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedLookup{next: next, cache: gocache.New(ttl, ttl/2)}
}

// SearchSuggestions implements GeocodeLookup.
func (c *CachedLookup) SearchSuggestions(ctx context.Context, q string) []Suggestion {
	return c.next.SearchSuggestions(ctx, q)
}

// GeocodePlace implements GeocodeLookup.
func (c *CachedLookup) GeocodePlace(ctx context.Context, placeName, contextDestination string) (Place, bool) {
	key := strings.ToLower(query(placeName, contextDestination))
	if v, found := c.cache.Get(key); found {
		metrics.GeocodeLookups.WithLabelValues(metrics.OutcomeCached).Inc()
		return v.(Place), true
	}

	p, ok := c.next.GeocodePlace(ctx, placeName, contextDestination)
	if ok {
		c.cache.Set(key, p, gocache.DefaultExpiration)
	}
	return p, ok
}
