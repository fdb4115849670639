package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/users"
	"github.com/gin-gonic/gin"
)

// writeError maps domain errors to status codes. Anything unrecognised is
// recorded on the context for the request logger and answered with 500.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrFlightNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrCyclicItinerary),
		errors.Is(err, domain.ErrItineraryShape),
		errors.Is(err, domain.ErrEmptyItinerary):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnknownBookingType),
		errors.Is(err, domain.ErrInvalidFlight),
		errors.Is(err, users.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrBookingNotActive),
		errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
