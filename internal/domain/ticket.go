package domain

import (
	"fmt"
	"time"
)

type Ticket struct {
	BookingID     int64     `json:"booking_id"`
	// Leg is the zero-based position of Flight in the booking's itinerary.
	Leg           int       `json:"leg"`
	Flight        Flight    `json:"flight"`
	PassengerName string    `json:"passenger_name"`
	TicketNumber  string    `json:"ticket_number"`
	SeatNumber    string    `json:"seat_number"`
	IssuedAt      time.Time `json:"issued_at"`
}

func (t Ticket) String() string {
	return fmt.Sprintf("Ticket %s for %s\nBooking ID: %d\nFlight: %d seat %s\nFrom: %s at %s\nTo: %s at %s\nPrice: %s",
		t.TicketNumber, t.PassengerName, t.BookingID, t.Flight.ID, t.SeatNumber,
		t.Flight.Origin, t.Flight.DepartureTime.Format(time.RFC3339),
		t.Flight.Destination, t.Flight.ArrivalTime.Format(time.RFC3339),
		FormatPrice(t.Flight.PriceCents))
}

// FormatPrice renders cents as "$450.00".
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
