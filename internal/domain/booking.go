package domain

import (
	"fmt"
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingStatusActive   BookingStatus = "active"
	BookingStatusCanceled BookingStatus = "canceled"
)

type BookingType string

const (
	BookingTypeOneWay    BookingType = "one-way"
	BookingTypeRoundTrip BookingType = "round-trip"
	BookingTypeMultiCity BookingType = "multi-city"
)

// ParseBookingType accepts the canonical tags in any case, with '_' or ' '
// in place of '-', and the unseparated forms ("oneway", "roundtrip", "multicity").
func ParseBookingType(raw string) (BookingType, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer("_", "-", " ", "-").Replace(s)
	switch s {
	case "one-way", "oneway":
		return BookingTypeOneWay, nil
	case "round-trip", "roundtrip":
		return BookingTypeRoundTrip, nil
	case "multi-city", "multicity":
		return BookingTypeMultiCity, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBookingType, raw)
}

type Booking struct {
	ID              int64         `json:"id"`
	User            User          `json:"user"`
	Flights         []Flight      `json:"flights"`
	Type            BookingType   `json:"booking_type"`
	CreatedAt       time.Time     `json:"created_at"`
	TotalPriceCents int64         `json:"total_price_cents"`
	Status          BookingStatus `json:"status"`
	Tickets         []Ticket      `json:"tickets"`
}

// NewBooking builds an active booking that owns a private copy of flights.
// The total price is left at zero until CalculateTotalPrice is called.
func NewBooking(id int64, user User, flights []Flight, bookingType BookingType, createdAt time.Time) *Booking {
	legs := make([]Flight, len(flights))
	copy(legs, flights)
	return &Booking{
		ID:        id,
		User:      user.Identity(),
		Flights:   legs,
		Type:      bookingType,
		CreatedAt: createdAt,
		Status:    BookingStatusActive,
		Tickets:   []Ticket{},
	}
}

// CalculateTotalPrice sums the current leg prices and overwrites the stored total.
func (b *Booking) CalculateTotalPrice() int64 {
	var total int64
	for _, f := range b.Flights {
		total += f.PriceCents
	}
	b.TotalPriceCents = total
	return total
}

func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusActive
}

// Cancel flips an active booking to canceled. It returns false when the
// booking was already canceled.
func (b *Booking) Cancel() bool {
	if !b.IsActive() {
		return false
	}
	b.Status = BookingStatusCanceled
	return true
}

// Clone returns a deep copy safe to hand out of a store.
func (b *Booking) Clone() *Booking {
	c := *b
	c.Flights = append([]Flight(nil), b.Flights...)
	c.Tickets = append([]Ticket{}, b.Tickets...)
	return &c
}
