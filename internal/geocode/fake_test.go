package geocode_test

import (
	"context"
	"sync"

	"github.com/pkordes/voyage/backend/internal/geocode"
)

// fakeLookup is a test double for geocode.GeocodeLookup. places maps the
// exact query text ("name, context" or "name") to a result; anything else
// is not found. Every GeocodePlace call is recorded.
type fakeLookup struct {
	mu     sync.Mutex
	places map[string]geocode.Place
	calls  []string
	// onCall, when set, runs inside GeocodePlace before the result is returned.
	onCall func(q string)
}

var _ geocode.GeocodeLookup = (*fakeLookup)(nil)

func (f *fakeLookup) SearchSuggestions(_ context.Context, _ string) []geocode.Suggestion {
	return []geocode.Suggestion{}
}

func (f *fakeLookup) GeocodePlace(_ context.Context, name, dest string) (geocode.Place, bool) {
	q := name
	if dest != "" {
		q = name + ", " + dest
	}
	f.mu.Lock()
	f.calls = append(f.calls, q)
	f.mu.Unlock()

	if f.onCall != nil {
		f.onCall(q)
	}
	p, ok := f.places[q]
	return p, ok
}

func (f *fakeLookup) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
