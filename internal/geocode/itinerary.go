package geocode

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pkordes/voyage/backend/internal/domain"
)

// Batch schedule defaults. Nominatim allows roughly one request per second;
// three concurrent lookups every 400 ms keeps bursts short and the average
// rate low.
const (
	DefaultBatchSize  = 3
	DefaultBatchDelay = 400 * time.Millisecond
)

// ProgressFunc is called after each batch with the number of place lookups
// settled so far and the total queued.
type ProgressFunc func(done, total int)

// ItineraryGeocoder resolves a whole itinerary into map markers.
type ItineraryGeocoder struct {
	lookup     GeocodeLookup
	batchSize  int
	batchDelay time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
}

// Option configures an ItineraryGeocoder.
type Option func(*ItineraryGeocoder)

// WithBatchSize overrides the number of concurrent lookups per batch.
func WithBatchSize(n int) Option {
	return func(g *ItineraryGeocoder) {
		if n > 0 {
			g.batchSize = n
		}
	}
}

// WithBatchDelay overrides the pause between batches.
func WithBatchDelay(d time.Duration) Option {
	return func(g *ItineraryGeocoder) { g.batchDelay = d }
}

// WithSleep replaces the inter-batch wait. Tests use it to record delays
// without spending wall-clock time.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(g *ItineraryGeocoder) { g.sleep = fn }
}

// NewItineraryGeocoder returns a geocoder using lookup with the default
// batch schedule.
func NewItineraryGeocoder(lookup GeocodeLookup, opts ...Option) *ItineraryGeocoder {
	g := &ItineraryGeocoder{
		lookup:     lookup,
		batchSize:  DefaultBatchSize,
		batchDelay: DefaultBatchDelay,
		sleep:      sleepContext,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// MaxDuration is the longest Geocode can run for an itinerary of days when
// every lookup takes perLookup: the destination lookup, every batch, and the
// pauses between batches.
func (g *ItineraryGeocoder) MaxDuration(days int, perLookup time.Duration) time.Duration {
	lookups := days * 3
	batches := (lookups + g.batchSize - 1) / g.batchSize
	d := time.Duration(1+batches) * perLookup
	if batches > 1 {
		d += time.Duration(batches-1) * g.batchDelay
	}
	return d
}

// task is one queued place lookup.
type task struct {
	day       domain.DayPlan
	period    domain.Period
	text      string
	placeName string
}

// Geocode returns the destination pin (when it resolves) followed by one
// marker per period whose place name could be extracted and resolved.
// Lookups that fail are dropped.
//
// Lookups run in batches: concurrently within a batch, with a pause before
// every batch but the first. A lookup already in flight is allowed to finish
// when ctx is cancelled, but no further batch starts and ctx.Err() is
// returned.
func (g *ItineraryGeocoder) Geocode(ctx context.Context, destination string, itinerary []domain.DayPlan, progress ProgressFunc) ([]domain.Marker, error) {
	var markers []domain.Marker

	// In-flight lookups must not be torn down mid-request by cancellation.
	lookupCtx := context.WithoutCancel(ctx)

	if p, ok := g.lookup.GeocodePlace(lookupCtx, destination, ""); ok {
		markers = append(markers, domain.Marker{
			Day:           0,
			Period:        domain.PeriodDestination,
			Name:          destination,
			Lat:           p.Lat,
			Lon:           p.Lon,
			Text:          "Main destination: " + destination,
			IsDestination: true,
		})
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	queue := buildQueue(itinerary)

	for start := 0; start < len(queue); start += g.batchSize {
		if start > 0 {
			if err := g.sleep(ctx, g.batchDelay); err != nil {
				return nil, err
			}
		}

		end := min(start+g.batchSize, len(queue))
		batch := queue[start:end]
		results := make([]*Place, len(batch))

		var eg errgroup.Group
		for i, t := range batch {
			eg.Go(func() error {
				if p, ok := g.lookup.GeocodePlace(lookupCtx, t.placeName, destination); ok {
					results[i] = &p
				}
				return nil
			})
		}
		_ = eg.Wait() // lookups never fail the group

		for i, p := range results {
			if p == nil {
				continue
			}
			t := batch[i]
			markers = append(markers, domain.Marker{
				Day:         t.day.Day,
				Period:      t.period,
				PeriodLabel: PeriodLabel(t.period),
				Name:        t.placeName,
				Lat:         p.Lat,
				Lon:         p.Lon,
				Text:        t.text,
				Title:       dayTitle(t.day),
			})
		}

		if progress != nil {
			progress(end, len(queue))
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	return markers, nil
}

// buildQueue lists lookups in day order, then morning, afternoon, evening.
func buildQueue(itinerary []domain.DayPlan) []task {
	var queue []task
	for _, d := range itinerary {
		for _, p := range []struct {
			period domain.Period
			text   string
		}{
			{domain.PeriodMorning, d.Morning},
			{domain.PeriodAfternoon, d.Afternoon},
			{domain.PeriodEvening, d.Evening},
		} {
			if p.text == "" {
				continue
			}
			name, ok := ExtractPlaceName(p.text)
			if !ok {
				continue
			}
			queue = append(queue, task{day: d, period: p.period, text: p.text, placeName: name})
		}
	}
	return queue
}

// PeriodLabel is the display label for a period.
func PeriodLabel(p domain.Period) string {
	switch p {
	case domain.PeriodMorning:
		return "Morning"
	case domain.PeriodAfternoon:
		return "Afternoon"
	case domain.PeriodEvening:
		return "Evening"
	default:
		return "Destination"
	}
}

func dayTitle(d domain.DayPlan) string {
	if d.Title != "" {
		return d.Title
	}
	return "Day " + strconv.Itoa(d.Day)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
