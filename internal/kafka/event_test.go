package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookingEvent(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	b := &domain.Booking{
		ID:              12,
		User:            domain.User{ID: 3, Name: "Ada", Email: "ada@example.com"},
		Flights:         []domain.Flight{{ID: 1}, {ID: 2}},
		Type:            domain.BookingTypeOneWay,
		Status:          domain.BookingStatusActive,
		TotalPriceCents: 45000,
		Tickets:         []domain.Ticket{{TicketNumber: "TKT1"}, {TicketNumber: "TKT2"}},
	}

	event := NewBookingEvent(EventTicketsIssued, b, at)

	assert.Equal(t, EventTicketsIssued, event.Type)
	assert.Equal(t, int64(12), event.BookingID)
	assert.Equal(t, "ada@example.com", event.Email)
	assert.Equal(t, []int64{1, 2}, event.FlightIDs)
	assert.Equal(t, []string{"TKT1", "TKT2"}, event.TicketNumbers)
	assert.Equal(t, "12", event.Key())
	assert.Equal(t, at, event.OccurredAt)
}

func TestDecodeBookingEvent(t *testing.T) {
	payload, err := json.Marshal(BookingEvent{Type: EventBookingCanceled, BookingID: 5, Status: "canceled"})
	require.NoError(t, err)

	event, err := DecodeBookingEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, int64(5), event.BookingID)

	_, err = DecodeBookingEvent([]byte(`{"booking_id": 5}`))
	assert.Error(t, err)

	_, err = DecodeBookingEvent([]byte(`not json`))
	assert.Error(t, err)
}
