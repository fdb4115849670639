package tickets

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/metrics"
	"github.com/Domenick1991/flightbooking/internal/repository"
)

type TicketUseCase interface {
	IssueTickets(ctx context.Context, bookingID int64) ([]domain.Ticket, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type TicketService struct {
	bookings repository.BookingRepository
	issuer   *Issuer
	producer Producer
	topics   []string
	log      logger.Logger
}

type TicketServiceOption func(*TicketService)

// WithProducer publishes a tickets_issued event to every non-empty topic.
func WithProducer(producer Producer, topics ...string) TicketServiceOption {
	return func(s *TicketService) {
		s.producer = producer
		for _, t := range topics {
			if t != "" {
				s.topics = append(s.topics, t)
			}
		}
	}
}

func WithLogger(log logger.Logger) TicketServiceOption {
	return func(s *TicketService) {
		s.log = log
	}
}

func NewTicketService(bookings repository.BookingRepository, issuer *Issuer, opts ...TicketServiceOption) *TicketService {
	service := &TicketService{
		bookings: bookings,
		issuer:   issuer,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// IssueTickets makes sure every leg of an active booking has a ticket and
// returns all of them in leg order. Calling it again returns the same tickets.
func (s *TicketService) IssueTickets(ctx context.Context, bookingID int64) ([]domain.Ticket, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsActive() {
		return nil, fmt.Errorf("%w: booking %d is %s", domain.ErrBookingNotActive, bookingID, booking.Status)
	}

	before := len(booking.Tickets)
	candidates := s.issuer.Generate(booking)

	stored, err := s.bookings.UpsertTickets(ctx, bookingID, candidates)
	if err != nil {
		return nil, fmt.Errorf("store tickets for booking %d: %w", bookingID, err)
	}

	fresh := len(stored) - before
	if fresh <= 0 {
		return stored, nil
	}

	metrics.TicketsIssued.Add(float64(fresh))
	s.log.Info("tickets issued", logger.F("booking_id", bookingID), logger.F("count", fresh))

	if s.producer == nil {
		return stored, nil
	}
	booking.Tickets = stored
	event := kafka.NewBookingEvent(kafka.EventTicketsIssued, booking, s.issuer.now())
	for _, topic := range s.topics {
		if err := s.producer.Publish(ctx, topic, event.Key(), event); err != nil {
			s.log.Warn("publish tickets issued", logger.Err(err), logger.F("topic", topic), logger.F("booking_id", bookingID))
		}
	}
	return stored, nil
}

var _ TicketUseCase = (*TicketService)(nil)
