package geocode

import (
	"time"

	"github.com/pkordes/voyage/backend/internal/domain"
)

// DayColors is the fixed marker palette. Index 0 is the destination accent;
// index N is day N.
var DayColors = [...]string{
	"#6c63ff", // destination
	"#f87171",
	"#fb923c",
	"#fbbf24",
	"#34d399",
	"#22d3ee",
	"#818cf8",
	"#f472b6",
	"#a78bfa",
	"#2dd4bf",
	"#facc15",
	"#fb7185",
	"#38bdf8",
	"#a3e635",
	"#e879f9",
	"#f59e0b",
}

// DestinationColor is the accent used for the destination pin.
var DestinationColor = DayColors[0]

// Viewport zoom levels and padding, in map tiles / pixels.
const (
	HighlightZoom = 14
	SingleZoom    = 13
	BoundsMaxZoom = 14
	BoundsPadding = 60
	DefaultZoom   = 5

	// HighlightTTL is how long a highlighted marker overrides bounds fitting.
	HighlightTTL = 3 * time.Second
)

// DefaultCenter is used when there is nothing to show.
var DefaultCenter = LatLon{Lat: 20.5937, Lon: 78.9629}

// DayColor returns the palette colour for day. Day 0 is the destination
// accent; days past the palette reuse day 1's colour.
func DayColor(day int) string {
	if day >= 0 && day < len(DayColors) {
		return DayColors[day]
	}
	return DayColors[1]
}

// VisibleMarkers filters markers for the active day. activeDay 0 shows all;
// otherwise only that day's markers plus the destination pin are kept.
func VisibleMarkers(markers []domain.Marker, activeDay int) []domain.Marker {
	if activeDay <= 0 {
		return markers
	}
	out := make([]domain.Marker, 0, len(markers))
	for _, m := range markers {
		if m.Day == activeDay || m.IsDestination {
			out = append(out, m)
		}
	}
	return out
}

// LatLon is a coordinate pair.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Bounds is the south-west / north-east box around a marker set.
type Bounds struct {
	SouthWest LatLon `json:"southWest"`
	NorthEast LatLon `json:"northEast"`
}

// ViewportMode tells the client which camera move to make.
type ViewportMode string

const (
	ViewportDefault   ViewportMode = "default"
	ViewportCenter    ViewportMode = "center"
	ViewportBounds    ViewportMode = "bounds"
	ViewportHighlight ViewportMode = "highlight"
)

// Viewport is the camera the map should move to.
type Viewport struct {
	Mode    ViewportMode `json:"mode"`
	Center  *LatLon      `json:"center,omitempty"`
	Zoom    int          `json:"zoom,omitempty"`
	Bounds  *Bounds      `json:"bounds,omitempty"`
	Padding int          `json:"padding,omitempty"`
	MaxZoom int          `json:"maxZoom,omitempty"`
}

// Highlight is a marker the user picked from the itinerary panel. It wins
// over bounds fitting for HighlightTTL after it was set, then clears itself.
type Highlight struct {
	Marker domain.Marker
	SetAt  time.Time
}

// NewHighlight highlights m as of now.
func NewHighlight(m domain.Marker, now time.Time) *Highlight {
	return &Highlight{Marker: m, SetAt: now}
}

// ExpiresAt is the instant the highlight clears.
func (h *Highlight) ExpiresAt() time.Time {
	return h.SetAt.Add(HighlightTTL)
}

// Active reports whether the highlight still applies at now.
func (h *Highlight) Active(now time.Time) bool {
	return h != nil && now.Before(h.ExpiresAt())
}

// FitViewport chooses the camera for the visible markers. An active
// highlight flies to that marker; one marker centres on it; several fit
// their bounds.
func FitViewport(visible []domain.Marker, h *Highlight, now time.Time) Viewport {
	if h.Active(now) {
		return Viewport{
			Mode:   ViewportHighlight,
			Center: &LatLon{Lat: h.Marker.Lat, Lon: h.Marker.Lon},
			Zoom:   HighlightZoom,
		}
	}

	switch len(visible) {
	case 0:
		c := DefaultCenter
		return Viewport{Mode: ViewportDefault, Center: &c, Zoom: DefaultZoom}
	case 1:
		return Viewport{
			Mode:   ViewportCenter,
			Center: &LatLon{Lat: visible[0].Lat, Lon: visible[0].Lon},
			Zoom:   SingleZoom,
		}
	}

	b := Bounds{
		SouthWest: LatLon{Lat: visible[0].Lat, Lon: visible[0].Lon},
		NorthEast: LatLon{Lat: visible[0].Lat, Lon: visible[0].Lon},
	}
	for _, m := range visible[1:] {
		b.SouthWest.Lat = min(b.SouthWest.Lat, m.Lat)
		b.SouthWest.Lon = min(b.SouthWest.Lon, m.Lon)
		b.NorthEast.Lat = max(b.NorthEast.Lat, m.Lat)
		b.NorthEast.Lon = max(b.NorthEast.Lon, m.Lon)
	}
	return Viewport{Mode: ViewportBounds, Bounds: &b, Padding: BoundsPadding, MaxZoom: BoundsMaxZoom}
}

// View is the presented map state for one request.
type View struct {
	Markers            []domain.Marker `json:"markers"`
	Visible            []domain.Marker `json:"visible"`
	Viewport           Viewport        `json:"viewport"`
	HighlightExpiresAt *time.Time      `json:"highlightExpiresAt,omitempty"`
}

// Present colours every marker, filters by activeDay and fits the viewport.
func Present(markers []domain.Marker, activeDay int, h *Highlight, now time.Time) View {
	coloured := make([]domain.Marker, len(markers))
	for i, m := range markers {
		if m.IsDestination {
			m.Color = DestinationColor
		} else {
			m.Color = DayColor(m.Day)
		}
		coloured[i] = m
	}

	visible := VisibleMarkers(coloured, activeDay)
	v := View{
		Markers:  coloured,
		Visible:  visible,
		Viewport: FitViewport(visible, h, now),
	}
	if h.Active(now) {
		exp := h.ExpiresAt()
		v.HighlightExpiresAt = &exp
	}
	return v
}
