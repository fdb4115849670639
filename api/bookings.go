package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/Domenick1991/flightbooking/internal/service/tickets"
	"github.com/Domenick1991/flightbooking/internal/service/users"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookings booking.BookingUseCase
	flights  flights.FlightUseCase
	users    users.UserUseCase
	tickets  tickets.TicketUseCase
}

type createBookingRequest struct {
	UserID      int64   `json:"user_id" binding:"required"`
	FlightIDs   []int64 `json:"flight_ids" binding:"required"`
	BookingType string  `json:"booking_type" binding:"required"`
}

type bookingResponse struct {
	*domain.Booking
	TotalPrice      string `json:"total_price"`
	TotalFlightTime string `json:"total_flight_time"`
}

type cancelResponse struct {
	ID       int64 `json:"id"`
	Canceled bool  `json:"canceled"`
}

func NewBookingHandler(
	bookings booking.BookingUseCase,
	flights flights.FlightUseCase,
	users users.UserUseCase,
	tickets tickets.TicketUseCase,
) *BookingHandler {
	return &BookingHandler{bookings: bookings, flights: flights, users: users, tickets: tickets}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.listByUser)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.cancel)
	router.POST("/:id/tickets", h.issueTickets)
}

// create resolves the user and flight ids, books the itinerary and prices it.
func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	bookingType, err := domain.ParseBookingType(req.BookingType)
	if err != nil {
		writeError(c, err)
		return
	}

	ctx := c.Request.Context()
	user, found, err := h.users.GetByID(ctx, req.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrUserNotFound.Error(), "user_id": req.UserID})
		return
	}

	legs := make([]domain.Flight, 0, len(req.FlightIDs))
	for _, id := range req.FlightIDs {
		flight, found, err := h.flights.GetByID(ctx, id)
		if err != nil {
			writeError(c, err)
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrFlightNotFound.Error(), "flight_id": id})
			return
		}
		legs = append(legs, *flight)
	}

	created, err := h.bookings.CreateBooking(ctx, booking.CreateBookingInput{User: *user, Flights: legs, Type: bookingType})
	if err != nil {
		writeError(c, err)
		return
	}
	priced, err := h.bookings.RecalculateTotalPrice(ctx, created.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.response(priced))
}

func (h *BookingHandler) get(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	b, found, err := h.bookings.GetBookingByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrBookingNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, h.response(b))
}

// listByUser answers GET /bookings?user_id=.
func (h *BookingHandler) listByUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	list, err := h.bookings.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]bookingResponse, 0, len(list))
	for i := range list {
		resp = append(resp, h.response(&list[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// cancel keeps the ledger's boolean contract: unknown or already canceled
// bookings answer 200 with canceled=false.
func (h *BookingHandler) cancel(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	canceled, err := h.bookings.CancelBooking(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cancelResponse{ID: id, Canceled: canceled})
}

func (h *BookingHandler) issueTickets(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	issued, err := h.tickets.IssueTickets(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, issued)
}

func (h *BookingHandler) response(b *domain.Booking) bookingResponse {
	return bookingResponse{
		Booking:         b,
		TotalPrice:      domain.FormatPrice(b.TotalPriceCents),
		TotalFlightTime: h.flights.CalculateTotalFlightTime(b.Flights),
	}
}

func bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
