package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/metrics"
	"github.com/Domenick1991/flightbooking/internal/repository"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id int64) (bool, error)
	GetBookingByID(ctx context.Context, id int64) (*domain.Booking, bool, error)
	ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error)
	RecalculateTotalPrice(ctx context.Context, id int64) (*domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	log                logger.Logger
	now                func() time.Time
}

type CreateBookingInput struct {
	User    domain.User
	Flights []domain.Flight
	Type    domain.BookingType
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithLogger(log logger.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.log = log
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

// NewBookingService builds the ledger. producer may be nil, in which case no
// events are published.
func NewBookingService(
	bookings repository.BookingRepository,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		producer:     producer,
		bookingTopic: bookingTopic,
		log:          logger.Nop(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking validates the itinerary and records an active booking. A
// rejected itinerary consumes no booking id. The total price is not computed;
// call RecalculateTotalPrice once the itinerary is final.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	cyclic, err := domain.IsCyclicItinerary(input.Flights)
	if err != nil {
		metrics.BookingsRejected.WithLabelValues("empty").Inc()
		return nil, err
	}
	if cyclic {
		metrics.BookingsRejected.WithLabelValues("cyclic").Inc()
		s.log.Warn("rejected cyclic itinerary", logger.F("user_id", input.User.ID), logger.F("legs", len(input.Flights)))
		return nil, domain.ErrCyclicItinerary
	}
	if err := domain.ValidateShape(input.Type, input.Flights); err != nil {
		metrics.BookingsRejected.WithLabelValues("shape").Inc()
		s.log.Warn("rejected itinerary shape", logger.Err(err), logger.F("booking_type", string(input.Type)))
		return nil, err
	}

	booking := domain.NewBooking(0, input.User, input.Flights, input.Type, s.now())
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("store booking: %w", err)
	}

	metrics.BookingsCreated.Inc()
	s.log.Info("booking created", logger.F("booking_id", booking.ID), logger.F("user_id", booking.User.ID),
		logger.F("booking_type", string(booking.Type)), logger.F("legs", len(booking.Flights)))
	s.publish(ctx, kafka.EventBookingCreated, booking)
	return booking, nil
}

// CancelBooking returns true only when an active booking was canceled by this
// call. Unknown and already canceled bookings return false.
func (s *BookingService) CancelBooking(ctx context.Context, id int64) (bool, error) {
	canceled, err := s.bookings.Cancel(ctx, id)
	if err != nil {
		return false, fmt.Errorf("cancel booking %d: %w", id, err)
	}
	if !canceled {
		s.log.Debug("cancel ignored", logger.F("booking_id", id))
		return false, nil
	}

	metrics.BookingsCanceled.Inc()
	s.log.Info("booking canceled", logger.F("booking_id", id))
	if s.hasProducer() {
		if booking, err := s.bookings.GetByID(ctx, id); err == nil {
			s.publish(ctx, kafka.EventBookingCanceled, booking)
		}
	}
	return true, nil
}

func (s *BookingService) GetBookingByID(ctx context.Context, id int64) (*domain.Booking, bool, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return booking, true, nil
}

func (s *BookingService) ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// RecalculateTotalPrice recomputes the total from the booking's legs and
// persists it.
func (s *BookingService) RecalculateTotalPrice(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	total := booking.CalculateTotalPrice()
	if err := s.bookings.UpdateTotalPrice(ctx, id, total); err != nil {
		return nil, fmt.Errorf("update total price of booking %d: %w", id, err)
	}
	return booking, nil
}

func (s *BookingService) hasProducer() bool {
	return s.producer != nil && s.bookingTopic != ""
}

// publish is best effort: a failed publication is logged and never undoes the
// ledger change.
func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if !s.hasProducer() {
		return
	}
	event := kafka.NewBookingEvent(eventType, booking, s.now())
	if err := s.producer.Publish(ctx, s.bookingTopic, event.Key(), event); err != nil {
		s.log.Warn("publish booking event", logger.Err(err), logger.F("type", eventType), logger.F("booking_id", booking.ID))
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, event.Key(), event); err != nil {
			s.log.Warn("publish notification", logger.Err(err), logger.F("type", eventType), logger.F("booking_id", booking.ID))
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
