package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

var legColumns = []string{
	"booking_id", "position", "flight_id", "origin", "destination",
	"departure_time", "arrival_time", "price_cents", "corresponding_flight_id",
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO bookings (user_id, user_name, user_email, booking_type, status, total_price_cents, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`, booking.User.ID, booking.User.Name, booking.User.Email, booking.Type, booking.Status, booking.TotalPriceCents, booking.CreatedAt).
		Scan(&booking.ID); err != nil {
		return err
	}

	rows := make([][]any, 0, len(booking.Flights))
	for i, f := range booking.Flights {
		rows = append(rows, []any{booking.ID, i, f.ID, f.Origin, f.Destination, f.DepartureTime, f.ArrivalTime, f.PriceCents, f.CorrespondingFlightID})
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"booking_legs"}, legColumns, pgx.CopyFromRows(rows)); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, user_id, user_name, user_email, booking_type, status, total_price_cents, created_at FROM bookings WHERE id=$1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	if err := r.loadLegs(ctx, r.db, b); err != nil {
		return nil, err
	}
	if b.Tickets, err = r.loadTickets(ctx, r.db, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id, user_name, user_email, booking_type, status, total_price_cents, created_at FROM bookings WHERE user_id=$1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	var headers []*domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		headers = append(headers, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	bookings := make([]domain.Booking, 0, len(headers))
	for _, b := range headers {
		if err := r.loadLegs(ctx, r.db, b); err != nil {
			return nil, err
		}
		if b.Tickets, err = r.loadTickets(ctx, r.db, b); err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, nil
}

func (r *PGBookingRepository) Cancel(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.db.Exec(ctx, `UPDATE bookings SET status=$1 WHERE id=$2 AND status=$3`,
		domain.BookingStatusCanceled, id, domain.BookingStatusActive)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *PGBookingRepository) UpdateTotalPrice(ctx context.Context, id int64, totalCents int64) error {
	cmd, err := r.db.Exec(ctx, `UPDATE bookings SET total_price_cents=$1 WHERE id=$2`, totalCents, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *PGBookingRepository) UpsertTickets(ctx context.Context, bookingID int64, tickets []domain.Ticket) ([]domain.Ticket, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	b, err := scanBooking(tx.QueryRow(ctx, `SELECT id, user_id, user_name, user_email, booking_type, status, total_price_cents, created_at FROM bookings WHERE id=$1 FOR UPDATE`, bookingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	if !b.IsActive() {
		return nil, domain.ErrBookingNotActive
	}

	batch := &pgx.Batch{}
	for _, t := range tickets {
		batch.Queue(`INSERT INTO tickets (booking_id, position, flight_id, passenger_name, ticket_number, seat_number, issued_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (booking_id, position) DO NOTHING`,
			bookingID, t.Leg, t.Flight.ID, t.PassengerName, t.TicketNumber, t.SeatNumber, t.IssuedAt)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, err
	}

	if err := r.loadLegs(ctx, tx, b); err != nil {
		return nil, err
	}
	stored, err := r.loadTickets(ctx, tx, b)
	if err != nil {
		return nil, err
	}
	return stored, tx.Commit(ctx)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *PGBookingRepository) loadLegs(ctx context.Context, q querier, b *domain.Booking) error {
	rows, err := q.Query(ctx, `SELECT flight_id, origin, destination, departure_time, arrival_time, price_cents, corresponding_flight_id
		FROM booking_legs WHERE booking_id=$1 ORDER BY position`, b.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	b.Flights = make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return err
		}
		b.Flights = append(b.Flights, f)
	}
	return rows.Err()
}

// loadTickets needs b.Flights populated to restore each ticket's leg.
func (r *PGBookingRepository) loadTickets(ctx context.Context, q querier, b *domain.Booking) ([]domain.Ticket, error) {
	rows, err := q.Query(ctx, `SELECT position, passenger_name, ticket_number, seat_number, issued_at FROM tickets WHERE booking_id=$1`, b.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byLeg := make(map[int]domain.Ticket)
	for rows.Next() {
		t := domain.Ticket{BookingID: b.ID}
		if err := rows.Scan(&t.Leg, &t.PassengerName, &t.TicketNumber, &t.SeatNumber, &t.IssuedAt); err != nil {
			return nil, err
		}
		byLeg[t.Leg] = t
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orderTickets(b.Flights, byLeg), nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.User.ID, &b.User.Name, &b.User.Email, &b.Type, &b.Status, &b.TotalPriceCents, &b.CreatedAt); err != nil {
		return nil, err
	}
	b.Tickets = []domain.Ticket{}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
