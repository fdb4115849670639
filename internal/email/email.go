package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/logger"
)

// Sender delivers booking notifications. Delivery is a structured log line;
// an SMTP or provider client would replace Deliver.
type Sender struct {
	log logger.Logger
}

func NewSender(log logger.Logger) *Sender {
	return &Sender{log: log}
}

type Message struct {
	To      string
	Subject string
	Body    string
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if event.Email == "" {
		s.log.Warn("booking event without recipient", logger.F("booking_id", event.BookingID), logger.F("type", event.Type))
		return nil
	}
	msg, ok := Compose(event)
	if !ok {
		s.log.Debug("no notification for event type", logger.F("type", event.Type))
		return nil
	}
	return s.Deliver(ctx, msg)
}

func (s *Sender) Deliver(_ context.Context, msg Message) error {
	s.log.Info("send email", logger.F("to", msg.To), logger.F("subject", msg.Subject))
	return nil
}

// Compose renders the notification for an event. It returns false for event
// types that do not notify the passenger.
func Compose(event kafka.BookingEvent) (Message, bool) {
	msg := Message{To: event.Email}
	switch event.Type {
	case kafka.EventBookingCreated:
		msg.Subject = fmt.Sprintf("Booking #%d received", event.BookingID)
		msg.Body = fmt.Sprintf("Hello %s, your %s booking for %d flight(s) is confirmed.",
			event.PassengerName, event.BookingType, len(event.FlightIDs))
	case kafka.EventBookingCanceled:
		msg.Subject = fmt.Sprintf("Booking #%d canceled", event.BookingID)
		msg.Body = fmt.Sprintf("Hello %s, booking #%d has been canceled.", event.PassengerName, event.BookingID)
	case kafka.EventTicketsIssued:
		msg.Subject = fmt.Sprintf("Your tickets for booking #%d", event.BookingID)
		msg.Body = fmt.Sprintf("Hello %s, tickets %v are issued. Total paid %s.",
			event.PassengerName, event.TicketNumbers, domain.FormatPrice(event.TotalPriceCents))
	default:
		return Message{}, false
	}
	return msg, true
}
