package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/api"
	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/idgen"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/seed"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/Domenick1991/flightbooking/internal/service/tickets"
	"github.com/Domenick1991/flightbooking/internal/service/users"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	now := time.Now().UTC()
	flightSvc := flights.NewFlightService(repository.NewMemoryFlightRepository(), nil,
		flights.WithClock(func() time.Time { return now }))
	_, err := seed.Load(context.Background(), flightSvc, now, logger.Nop())
	require.NoError(t, err)

	bookingRepo := repository.NewMemoryBookingRepository()
	numbers, err := idgen.NewTicketNumbers(1, "TKT")
	require.NoError(t, err)

	userSvc := users.NewUserService(repository.NewMemoryUserRepository(), users.WithBcryptCost(bcrypt.MinCost))

	h := Handlers{
		Flights: api.NewFlightHandler(flightSvc, time.UTC),
		Bookings: api.NewBookingHandler(
			booking.NewBookingService(bookingRepo, nil, ""),
			flightSvc,
			userSvc,
			tickets.NewTicketService(bookingRepo, tickets.NewIssuer(numbers)),
		),
		Users: api.NewUserHandler(userSvc),
	}
	return NewRouter(config.HTTPConfig{}, h, logger.Nop())
}

func TestRouter_healthAndMetrics(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/healthz", "/metrics"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRouter_requestID(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/flights/101", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/flights/weekly", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestRouter_bookingUnknownUser(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings",
		strings.NewReader(`{"user_id":1,"flight_ids":[101],"booking_type":"one-way"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRun_stopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, config.HTTPConfig{Address: "127.0.0.1:0"}, http.NotFoundHandler(), logger.Nop())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
