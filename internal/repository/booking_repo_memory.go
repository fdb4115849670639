package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

type MemoryBookingRepository struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]*domain.Booking
}

func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{
		nextID:   1,
		bookings: make(map[int64]*domain.Booking),
	}
}

func (r *MemoryBookingRepository) Create(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking.ID = r.nextID
	r.nextID++
	r.bookings[booking.ID] = booking.Clone()
	return nil
}

func (r *MemoryBookingRepository) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	return b.Clone(), nil
}

func (r *MemoryBookingRepository) ListByUser(_ context.Context, userID int64) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bookings := make([]domain.Booking, 0)
	for _, b := range r.bookings {
		if b.User.ID == userID {
			bookings = append(bookings, *b.Clone())
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID < bookings[j].ID })
	return bookings, nil
}

func (r *MemoryBookingRepository) Cancel(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return false, nil
	}
	return b.Cancel(), nil
}

func (r *MemoryBookingRepository) UpdateTotalPrice(_ context.Context, id int64, totalCents int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.TotalPriceCents = totalCents
	return nil
}

func (r *MemoryBookingRepository) UpsertTickets(_ context.Context, bookingID int64, tickets []domain.Ticket) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}

	if !b.IsActive() {
		return nil, domain.ErrBookingNotActive
	}

	byLeg := make(map[int]domain.Ticket, len(b.Flights))
	for _, t := range b.Tickets {
		byLeg[t.Leg] = t
	}
	for _, t := range tickets {
		if _, exists := byLeg[t.Leg]; !exists {
			byLeg[t.Leg] = t
		}
	}

	b.Tickets = orderTickets(b.Flights, byLeg)
	return append([]domain.Ticket(nil), b.Tickets...), nil
}

var _ BookingRepository = (*MemoryBookingRepository)(nil)
