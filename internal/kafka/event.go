package kafka

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

const (
	EventBookingCreated  = "booking_created"
	EventBookingCanceled = "booking_canceled"
	EventTicketsIssued   = "tickets_issued"
)

type BookingEvent struct {
	Type            string    `json:"type"`
	BookingID       int64     `json:"booking_id"`
	UserID          int64     `json:"user_id"`
	Email           string    `json:"email"`
	PassengerName   string    `json:"passenger_name"`
	BookingType     string    `json:"booking_type"`
	Status          string    `json:"status"`
	FlightIDs       []int64   `json:"flight_ids"`
	TicketNumbers   []string  `json:"ticket_numbers,omitempty"`
	TotalPriceCents int64     `json:"total_price_cents"`
	OccurredAt      time.Time `json:"occurred_at"`
}

func NewBookingEvent(eventType string, b *domain.Booking, at time.Time) BookingEvent {
	event := BookingEvent{
		Type:            eventType,
		BookingID:       b.ID,
		UserID:          b.User.ID,
		Email:           b.User.Email,
		PassengerName:   b.User.Name,
		BookingType:     string(b.Type),
		Status:          string(b.Status),
		FlightIDs:       make([]int64, 0, len(b.Flights)),
		TotalPriceCents: b.TotalPriceCents,
		OccurredAt:      at,
	}
	for _, f := range b.Flights {
		event.FlightIDs = append(event.FlightIDs, f.ID)
	}
	for _, t := range b.Tickets {
		event.TicketNumbers = append(event.TicketNumbers, t.TicketNumber)
	}
	return event
}

// Key partitions events by booking so a booking's history stays ordered.
func (e BookingEvent) Key() string {
	return strconv.FormatInt(e.BookingID, 10)
}

func DecodeBookingEvent(data []byte) (BookingEvent, error) {
	var event BookingEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return BookingEvent{}, fmt.Errorf("decode booking event: %w", err)
	}
	if event.Type == "" {
		return BookingEvent{}, fmt.Errorf("decode booking event: missing type")
	}
	return event, nil
}
