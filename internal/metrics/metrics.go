package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Bookings accepted by the ledger",
	})
	BookingsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookings_rejected_total",
		Help: "Booking requests rejected before a record was created",
	}, []string{"reason"})
	BookingsCanceled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookings_canceled_total",
		Help: "Bookings moved from active to canceled",
	})
	TicketsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tickets_issued_total",
		Help: "Tickets newly issued (re-issues of existing legs are not counted)",
	})
	FlightSearches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flight_searches_total",
		Help: "Catalog searches by kind",
	}, []string{"kind"})
	SearchCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flight_search_cache_hits_total",
		Help: "Catalog searches answered from the cache",
	})
)
