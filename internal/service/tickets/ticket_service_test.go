package tickets

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sequence struct {
	next int64
}

func (s *sequence) Next() string {
	s.next++
	return "TKT" + strconv.FormatInt(s.next, 10)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

var issuedAt = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func leg(id int64, from, to string) domain.Flight {
	dep := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)
	return domain.Flight{ID: id, Origin: from, Destination: to, DepartureTime: dep, ArrivalTime: dep.Add(3 * time.Hour), PriceCents: 20000}
}

func newBooking(t *testing.T, repo repository.BookingRepository, legs ...domain.Flight) *domain.Booking {
	t.Helper()
	b := domain.NewBooking(0, domain.User{ID: 9, Name: "Grace Hopper"}, legs, domain.BookingTypeMultiCity, issuedAt)
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}

func newIssuer() *Issuer {
	return NewIssuer(&sequence{}, WithIssuerClock(func() time.Time { return issuedAt }))
}

func TestIssuer_Generate(t *testing.T) {
	b := domain.NewBooking(4, domain.User{Name: "Grace Hopper"}, []domain.Flight{leg(1, "A", "B"), leg(2, "B", "C")}, domain.BookingTypeOneWay, issuedAt)

	tickets := newIssuer().Generate(b)

	require.Len(t, tickets, 2)
	assert.Equal(t, b.Tickets, tickets)
	seat := regexp.MustCompile(`^[A-F]([1-9]|[12][0-9]|30)$`)
	for i, tk := range tickets {
		assert.Equal(t, int64(4), tk.BookingID)
		assert.Equal(t, b.Flights[i].ID, tk.Flight.ID)
		assert.Equal(t, "Grace Hopper", tk.PassengerName)
		assert.Regexp(t, seat, tk.SeatNumber)
		assert.Equal(t, issuedAt, tk.IssuedAt)
	}
	assert.Equal(t, "TKT1", tickets[0].TicketNumber)
	assert.Equal(t, "TKT2", tickets[1].TicketNumber)
}

func TestIssuer_Generate_KeepsExisting(t *testing.T) {
	b := domain.NewBooking(1, domain.User{Name: "Grace Hopper"}, []domain.Flight{leg(1, "A", "B"), leg(2, "B", "C")}, domain.BookingTypeOneWay, issuedAt)
	issuer := newIssuer()

	first := issuer.Generate(b)
	second := issuer.Generate(b)

	assert.Equal(t, first, second)
	assert.Len(t, b.Tickets, 2)
}

func TestIssuer_Generate_SharedFlightID(t *testing.T) {
	b := domain.NewBooking(1, domain.User{Name: "Grace Hopper"}, []domain.Flight{leg(0, "A", "B"), leg(0, "B", "C")}, domain.BookingTypeOneWay, issuedAt)

	tickets := newIssuer().Generate(b)

	require.Len(t, tickets, 2)
	assert.Equal(t, 0, tickets[0].Leg)
	assert.Equal(t, "A", tickets[0].Flight.Origin)
	assert.Equal(t, 1, tickets[1].Leg)
	assert.Equal(t, "B", tickets[1].Flight.Origin)
	assert.NotEqual(t, tickets[0].TicketNumber, tickets[1].TicketNumber)
}

func TestIssuer_SeatBounds(t *testing.T) {
	issuer := NewIssuer(&sequence{}, WithSeatMap(2, 1))
	for i := 0; i < 50; i++ {
		assert.Contains(t, []string{"A1", "A2"}, issuer.seat())
	}
}

func TestTicketService_IssueTickets(t *testing.T) {
	repo := repository.NewMemoryBookingRepository()
	b := newBooking(t, repo, leg(1, "A", "B"), leg(2, "B", "C"), leg(3, "C", "D"))
	svc := NewTicketService(repo, newIssuer())
	ctx := context.Background()

	tickets, err := svc.IssueTickets(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, tickets, 3)

	numbers := map[string]struct{}{}
	for i, tk := range tickets {
		assert.Equal(t, i, tk.Leg)
		assert.Equal(t, b.Flights[i].ID, tk.Flight.ID)
		numbers[tk.TicketNumber] = struct{}{}
	}
	assert.Len(t, numbers, 3)

	again, err := svc.IssueTickets(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, tickets, again)

	stored, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, tickets, stored.Tickets)
}

func TestTicketService_IssueTickets_SharedFlightID(t *testing.T) {
	repo := repository.NewMemoryBookingRepository()
	b := newBooking(t, repo, leg(0, "A", "B"), leg(0, "B", "C"))
	svc := NewTicketService(repo, newIssuer())
	ctx := context.Background()

	tickets, err := svc.IssueTickets(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, "A", tickets[0].Flight.Origin)
	assert.Equal(t, "TKT1", tickets[0].TicketNumber)
	assert.Equal(t, "B", tickets[1].Flight.Origin)
	assert.Equal(t, "TKT2", tickets[1].TicketNumber)

	again, err := svc.IssueTickets(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, tickets, again)
}

func TestTicketService_IssueTickets_Errors(t *testing.T) {
	repo := repository.NewMemoryBookingRepository()
	svc := NewTicketService(repo, newIssuer())
	ctx := context.Background()

	_, err := svc.IssueTickets(ctx, 77)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)

	b := newBooking(t, repo, leg(1, "A", "B"))
	canceled, err := repo.Cancel(ctx, b.ID)
	require.NoError(t, err)
	require.True(t, canceled)

	_, err = svc.IssueTickets(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrBookingNotActive)
}

// cancelingRepository cancels the booking right before tickets are stored.
type cancelingRepository struct {
	*repository.MemoryBookingRepository
}

func (r cancelingRepository) UpsertTickets(ctx context.Context, bookingID int64, tickets []domain.Ticket) ([]domain.Ticket, error) {
	if _, err := r.Cancel(ctx, bookingID); err != nil {
		return nil, err
	}
	return r.MemoryBookingRepository.UpsertTickets(ctx, bookingID, tickets)
}

func TestTicketService_IssueTickets_CanceledWhileIssuing(t *testing.T) {
	repo := cancelingRepository{repository.NewMemoryBookingRepository()}
	b := newBooking(t, repo, leg(1, "A", "B"))
	svc := NewTicketService(repo, newIssuer())
	ctx := context.Background()

	_, err := svc.IssueTickets(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrBookingNotActive)

	stored, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Tickets)
}

func TestTicketService_PublishesOnlyNewTickets(t *testing.T) {
	repo := repository.NewMemoryBookingRepository()
	b := newBooking(t, repo, leg(1, "A", "B"), leg(2, "B", "C"))
	producer := &MockProducer{}
	svc := NewTicketService(repo, newIssuer(), WithProducer(producer, "booking-events"))
	ctx := context.Background()

	producer.On("Publish", ctx, "booking-events", "1", mock.MatchedBy(func(e kafka.BookingEvent) bool {
		return e.Type == kafka.EventTicketsIssued && len(e.TicketNumbers) == 2
	})).Return(errors.New("broker down")).Once()

	_, err := svc.IssueTickets(ctx, b.ID)
	require.NoError(t, err)
	_, err = svc.IssueTickets(ctx, b.ID)
	require.NoError(t, err)

	producer.AssertExpectations(t)
}
