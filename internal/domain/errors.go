package domain

import "errors"

var (
	ErrFlightNotFound  = errors.New("flight not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrUserNotFound    = errors.New("user not found")

	ErrInvalidFlight      = errors.New("invalid flight")
	ErrEmptyItinerary     = errors.New("itinerary must contain at least one flight")
	ErrCyclicItinerary    = errors.New("itinerary revisits an intermediate stop")
	ErrItineraryShape     = errors.New("itinerary does not match booking type")
	ErrUnknownBookingType = errors.New("unknown booking type")
	ErrBookingNotActive   = errors.New("booking is not active")

	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
