package repository

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

// FlightRepository is the catalog store. Ids are assigned by callers; with
// duplicate ids GetByID returns the first flight added.
type FlightRepository interface {
	Add(ctx context.Context, flight domain.Flight) error
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
}

// BookingRepository is the ledger store. Create assigns the next id; ids are
// never reused. Cancel must check and flip the status atomically.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	Cancel(ctx context.Context, id int64) (bool, error)
	UpdateTotalPrice(ctx context.Context, id int64, totalCents int64) error
	// UpsertTickets stores tickets keyed by (booking id, leg position), keeping
	// any ticket already issued for a leg, and returns all tickets in leg order.
	// It fails with domain.ErrBookingNotActive once the booking is canceled.
	UpsertTickets(ctx context.Context, bookingID int64, tickets []domain.Ticket) ([]domain.Ticket, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// orderTickets returns the tickets of legs in leg order, restoring each
// ticket's flight from its position. Positions outside legs are dropped.
func orderTickets(legs []domain.Flight, tickets map[int]domain.Ticket) []domain.Ticket {
	ordered := make([]domain.Ticket, 0, len(tickets))
	for pos, leg := range legs {
		if t, ok := tickets[pos]; ok {
			t.Leg = pos
			t.Flight = leg
			ordered = append(ordered, t)
		}
	}
	return ordered
}
