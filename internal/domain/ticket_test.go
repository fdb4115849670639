package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$450.00", FormatPrice(45000))
	assert.Equal(t, "$0.05", FormatPrice(5))
	assert.Equal(t, "-$1.50", FormatPrice(-150))
}

func TestTicket_String(t *testing.T) {
	dep := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)
	tk := Ticket{
		BookingID:     12,
		Flight:        Flight{ID: 101, Origin: "New York", Destination: "Los Angeles", DepartureTime: dep, ArrivalTime: dep.Add(5 * time.Hour), PriceCents: 35000},
		PassengerName: "Ada Lovelace",
		TicketNumber:  "TKT42",
		SeatNumber:    "C14",
	}

	s := tk.String()
	assert.Contains(t, s, "Ticket TKT42 for Ada Lovelace")
	assert.Contains(t, s, "Booking ID: 12")
	assert.Contains(t, s, "Flight: 101 seat C14")
	assert.Contains(t, s, "From: New York at 2026-03-05T08:00:00Z")
	assert.Contains(t, s, "Price: $350.00")
}
