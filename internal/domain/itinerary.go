package domain

import (
	"fmt"
	"time"
)

// IsCyclicItinerary reports whether the itinerary revisits a location it has
// already passed through. Returning to the starting origin on the final leg is
// a round trip and is not cyclic.
func IsCyclicItinerary(itinerary []Flight) (bool, error) {
	if len(itinerary) == 0 {
		return false, ErrEmptyItinerary
	}

	start := normalizeLocation(itinerary[0].Origin)
	visited := map[string]struct{}{start: {}}
	last := len(itinerary) - 1

	for i, leg := range itinerary {
		dest := normalizeLocation(leg.Destination)
		if _, seen := visited[dest]; seen {
			if i == last && dest == start {
				continue
			}
			return true, nil
		}
		visited[dest] = struct{}{}
	}
	return false, nil
}

// IsRoundTrip reports whether the final leg lands where the first leg departed.
func IsRoundTrip(itinerary []Flight) bool {
	if len(itinerary) == 0 {
		return false
	}
	return SameLocation(itinerary[len(itinerary)-1].Destination, itinerary[0].Origin)
}

// ValidateShape checks that the itinerary is consistent with the booking type.
func ValidateShape(bookingType BookingType, itinerary []Flight) error {
	if len(itinerary) == 0 {
		return ErrEmptyItinerary
	}
	switch bookingType {
	case BookingTypeOneWay:
		if IsRoundTrip(itinerary) {
			return fmt.Errorf("%w: one-way itinerary returns to its origin", ErrItineraryShape)
		}
	case BookingTypeRoundTrip:
		if len(itinerary) < 2 || !IsRoundTrip(itinerary) {
			return fmt.Errorf("%w: round-trip itinerary must end at its origin", ErrItineraryShape)
		}
	case BookingTypeMultiCity:
		if len(itinerary) < 2 {
			return fmt.Errorf("%w: multi-city itinerary needs at least two legs", ErrItineraryShape)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBookingType, bookingType)
	}
	return nil
}

// TotalFlightTime sums the airborne time of every leg and formats it as "H:MM".
// Each leg is truncated to whole minutes before summing.
func TotalFlightTime(flights []Flight) string {
	var total time.Duration
	for _, f := range flights {
		total += f.Duration().Truncate(time.Minute)
	}
	return FormatDuration(total)
}
