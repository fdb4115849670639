package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking_OwnsLegs(t *testing.T) {
	legs := []Flight{leg(1, "CityA", "CityB"), leg(2, "CityB", "CityC")}
	user := User{ID: 7, Name: "Ada", Email: "ada@example.com", PasswordHash: "secret-hash"}
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	b := NewBooking(1, user, legs, BookingTypeOneWay, createdAt)
	legs[0].Origin = "Elsewhere"

	assert.Equal(t, "CityA", b.Flights[0].Origin)
	assert.Equal(t, BookingStatusActive, b.Status)
	assert.Equal(t, createdAt, b.CreatedAt)
	assert.Empty(t, b.User.PasswordHash)
	assert.NotNil(t, b.Tickets)
	assert.Zero(t, b.TotalPriceCents)
}

func TestBooking_CalculateTotalPrice(t *testing.T) {
	legs := []Flight{leg(1, "CityA", "CityB"), leg(2, "CityB", "CityC")}
	legs[0].PriceCents = 20000
	legs[1].PriceCents = 25000
	b := NewBooking(1, User{Name: "Ada"}, legs, BookingTypeOneWay, time.Now())

	assert.Equal(t, int64(45000), b.CalculateTotalPrice())
	assert.Equal(t, "$450.00", FormatPrice(b.TotalPriceCents))

	b.Flights[1].PriceCents = 30000
	assert.Equal(t, int64(45000), b.TotalPriceCents, "stored total changes only on recalculation")
	assert.Equal(t, int64(50000), b.CalculateTotalPrice())
	assert.Equal(t, int64(50000), b.TotalPriceCents)
}

func TestBooking_Cancel(t *testing.T) {
	b := NewBooking(1, User{}, []Flight{leg(1, "A", "B")}, BookingTypeOneWay, time.Now())

	assert.True(t, b.Cancel())
	assert.Equal(t, BookingStatusCanceled, b.Status)
	assert.False(t, b.Cancel())
	assert.Equal(t, BookingStatusCanceled, b.Status)
}

func TestBooking_Clone(t *testing.T) {
	b := NewBooking(1, User{}, []Flight{leg(1, "A", "B")}, BookingTypeOneWay, time.Now())
	c := b.Clone()
	c.Flights[0].PriceCents = 1
	c.Tickets = append(c.Tickets, Ticket{TicketNumber: "X"})

	assert.Equal(t, int64(10000), b.Flights[0].PriceCents)
	assert.Empty(t, b.Tickets)
}

func TestParseBookingType(t *testing.T) {
	testCases := map[string]BookingType{
		"one-way":    BookingTypeOneWay,
		"One Way":    BookingTypeOneWay,
		"oneway":     BookingTypeOneWay,
		"round-trip": BookingTypeRoundTrip,
		"ROUND_TRIP": BookingTypeRoundTrip,
		"multi-city": BookingTypeMultiCity,
		"multicity":  BookingTypeMultiCity,
	}
	for raw, want := range testCases {
		got, err := ParseBookingType(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseBookingType("open-jaw")
	assert.ErrorIs(t, err, ErrUnknownBookingType)
}
