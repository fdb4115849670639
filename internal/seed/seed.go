package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/logger"
)

const seedDays = 14

var routes = []struct {
	origin      string
	destination string
}{
	{"New York", "Los Angeles"},
	{"Chicago", "Miami"},
	{"San Francisco", "Seattle"},
	{"Miami", "New York"},
	{"Seattle", "Chicago"},
}

// Catalog is the part of the flight catalog the seeder needs.
type Catalog interface {
	AddFlight(ctx context.Context, flight domain.Flight) error
	List(ctx context.Context) ([]domain.Flight, error)
}

// ReferenceFlights returns the demo inventory relative to now: three fixed
// flights (101-103) and two weeks of daily departures on five routes starting
// tomorrow at 08:00 in now's location.
func ReferenceFlights(now time.Time) []domain.Flight {
	outbound, inbound := int64(101), int64(102)
	flights := []domain.Flight{
		fixed(outbound, now.AddDate(0, 0, 1), 5*time.Hour, "New York", "Los Angeles", 35000, &inbound),
		fixed(inbound, now.AddDate(0, 0, 2), 5*time.Hour, "Los Angeles", "New York", 35000, &outbound),
		fixed(103, now.AddDate(0, 0, 3), 3*time.Hour, "New York", "Miami", 25000, nil),
	}

	y, m, d := now.AddDate(0, 0, 1).Date()
	start := time.Date(y, m, d, 8, 0, 0, 0, now.Location())

	for day := 0; day < seedDays; day++ {
		for i, r := range routes {
			departure := start.AddDate(0, 0, day).Add(time.Duration(i*2) * time.Hour)
			duration := time.Duration(2+i%3)*time.Hour + time.Duration(i*10%60)*time.Minute
			flights = append(flights, domain.Flight{
				ID:            int64(day*len(routes) + i + 1),
				Origin:        r.origin,
				Destination:   r.destination,
				DepartureTime: departure,
				ArrivalTime:   departure.Add(duration),
				PriceCents:    int64(100+i*50+day*10) * 100,
			})
		}
	}
	return flights
}

func fixed(id int64, departure time.Time, duration time.Duration, origin, destination string, priceCents int64, pair *int64) domain.Flight {
	return domain.Flight{
		ID:                    id,
		Origin:                origin,
		Destination:           destination,
		DepartureTime:         departure,
		ArrivalTime:           departure.Add(duration),
		PriceCents:            priceCents,
		CorrespondingFlightID: pair,
	}
}

// Load adds the reference flights to an empty catalog. A catalog that already
// holds flights is left untouched so restarts against a database do not
// duplicate inventory.
func Load(ctx context.Context, catalog Catalog, now time.Time, log logger.Logger) (int, error) {
	existing, err := catalog.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list catalog: %w", err)
	}
	if len(existing) > 0 {
		log.Info("catalog already seeded", logger.F("flights", len(existing)))
		return 0, nil
	}

	flights := ReferenceFlights(now)
	for _, f := range flights {
		if err := catalog.AddFlight(ctx, f); err != nil {
			return 0, fmt.Errorf("seed flight %d: %w", f.ID, err)
		}
	}
	log.Info("catalog seeded", logger.F("flights", len(flights)))
	return len(flights), nil
}
