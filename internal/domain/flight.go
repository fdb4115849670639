package domain

import (
	"fmt"
	"strings"
	"time"
)

type Flight struct {
	ID            int64     `json:"id"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	PriceCents    int64     `json:"price_cents"`
	// CorrespondingFlightID pairs an outbound leg with its return leg.
	CorrespondingFlightID *int64 `json:"corresponding_flight_id,omitempty"`
}

// Validate checks the invariants a flight must hold before it enters the catalog.
func (f Flight) Validate() error {
	if strings.TrimSpace(f.Origin) == "" || strings.TrimSpace(f.Destination) == "" {
		return fmt.Errorf("%w: origin and destination are required", ErrInvalidFlight)
	}
	if !f.ArrivalTime.After(f.DepartureTime) {
		return fmt.Errorf("%w: arrival must be after departure", ErrInvalidFlight)
	}
	if f.PriceCents < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidFlight)
	}
	return nil
}

func (f Flight) Duration() time.Duration {
	return f.ArrivalTime.Sub(f.DepartureTime)
}

// FormattedDuration returns the flight time as "H:MM".
func (f Flight) FormattedDuration() string {
	return FormatDuration(f.Duration())
}

// DepartsOn reports whether the departure falls on the calendar date of day,
// evaluated in day's location.
func (f Flight) DepartsOn(day time.Time) bool {
	y1, m1, d1 := f.DepartureTime.In(day.Location()).Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// FormatDuration renders d as hours and zero-padded minutes, e.g. "27:05".
// Seconds are truncated.
func FormatDuration(d time.Duration) string {
	minutes := int64(d / time.Minute)
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

// SameLocation compares location names the way searches do: trimmed and case-insensitive.
func SameLocation(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func normalizeLocation(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
