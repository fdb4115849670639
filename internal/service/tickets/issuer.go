package tickets

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/idgen"
)

// Issuer derives one ticket per leg of a booking. Seats are a random
// placeholder and are not checked against seats already issued on a flight.
type Issuer struct {
	numbers     idgen.NumberSource
	seatRows    int
	seatsPerRow int
	now         func() time.Time
	intn        func(n int) int
}

type IssuerOption func(*Issuer)

// WithSeatMap bounds seat codes to rows 1..rows and letters A.. up to seatsPerRow.
func WithSeatMap(rows, seatsPerRow int) IssuerOption {
	return func(i *Issuer) {
		if rows > 0 {
			i.seatRows = rows
		}
		if seatsPerRow > 0 && seatsPerRow <= 26 {
			i.seatsPerRow = seatsPerRow
		}
	}
}

func WithIssuerClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) {
		i.now = now
	}
}

func NewIssuer(numbers idgen.NumberSource, opts ...IssuerOption) *Issuer {
	issuer := &Issuer{
		numbers:     numbers,
		seatRows:    30,
		seatsPerRow: 6,
		now:         time.Now,
		intn:        rand.IntN,
	}
	for _, opt := range opts {
		opt(issuer)
	}
	return issuer
}

// Generate fills the booking's ticket list so that every leg has exactly one
// ticket, keeping tickets already present, and returns the list in leg order.
func (i *Issuer) Generate(b *domain.Booking) []domain.Ticket {
	existing := make(map[int]domain.Ticket, len(b.Tickets))
	for _, t := range b.Tickets {
		existing[t.Leg] = t
	}

	issued := make([]domain.Ticket, 0, len(b.Flights))
	for pos, leg := range b.Flights {
		if t, ok := existing[pos]; ok {
			issued = append(issued, t)
			continue
		}
		issued = append(issued, i.newTicket(b, pos, leg))
	}

	b.Tickets = issued
	return append([]domain.Ticket(nil), issued...)
}

func (i *Issuer) newTicket(b *domain.Booking, pos int, leg domain.Flight) domain.Ticket {
	return domain.Ticket{
		BookingID:     b.ID,
		Leg:           pos,
		Flight:        leg,
		PassengerName: b.User.Name,
		TicketNumber:  i.numbers.Next(),
		SeatNumber:    i.seat(),
		IssuedAt:      i.now(),
	}
}

// seat renders a code such as "C14": seat letter then row number.
func (i *Issuer) seat() string {
	letter := rune('A' + i.intn(i.seatsPerRow))
	row := 1 + i.intn(i.seatRows)
	return fmt.Sprintf("%c%d", letter, row)
}
