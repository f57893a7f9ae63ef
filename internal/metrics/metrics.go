// Package metrics holds the Prometheus collectors exported at /metrics.
// Collectors are registered on a private Registry rather than the global
// default so tests and the server see exactly the same set.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the registry served by the /metrics endpoint.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// Geocode lookup outcomes.
const (
	OutcomeHit    = "hit"
	OutcomeMiss   = "miss"
	OutcomeError  = "error"
	OutcomeCached = "cached"
)

// Trip generation sources.
const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

var (
	// HTTPRequestDuration observes request latency by route pattern, method
	// and status code.
	HTTPRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "voyage",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "status"})

	// TripGenerations counts persisted trips by where the plan came from.
	TripGenerations = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "voyage",
		Name:      "trip_generations_total",
		Help:      "Trips generated, by plan source.",
	}, []string{"source"})

	// GeocodeLookups counts place lookups by outcome.
	GeocodeLookups = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "voyage",
		Name:      "geocode_lookups_total",
		Help:      "Geocoding lookups, by outcome.",
	}, []string{"outcome"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}
