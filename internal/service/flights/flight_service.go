package flights

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/flightbooking/internal/cache"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/metrics"
	"github.com/Domenick1991/flightbooking/internal/repository"
)

const dateLayout = "2006-01-02"

type FlightUseCase interface {
	AddFlight(ctx context.Context, flight domain.Flight) error
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, bool, error)
	SearchDirectFlights(ctx context.Context, origin, destination string, date time.Time) ([]domain.Flight, error)
	SearchMultiStopFlights(ctx context.Context, origin, destination string, date time.Time) ([][]domain.Flight, error)
	SearchFlights(ctx context.Context, origin, destination string, departureDate time.Time, returnDate *time.Time) ([]domain.Flight, error)
	GetWeeklyFlights(ctx context.Context) ([]domain.Flight, error)
	CalculateTotalFlightTime(flights []domain.Flight) string
}

// SearchCache stores search results. Implementations may be remote; every
// failure is treated as a miss.
type SearchCache interface {
	GetFlights(ctx context.Context, key string) ([]domain.Flight, bool, error)
	SetFlights(ctx context.Context, key string, flights []domain.Flight) error
	GetConnections(ctx context.Context, key string) ([][]domain.Flight, bool, error)
	SetConnections(ctx context.Context, key string, routes [][]domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache SearchCache
	log   logger.Logger
	now   func() time.Time
}

type FlightServiceOption func(*FlightService)

func WithClock(now func() time.Time) FlightServiceOption {
	return func(s *FlightService) {
		s.now = now
	}
}

func WithLogger(log logger.Logger) FlightServiceOption {
	return func(s *FlightService) {
		s.log = log
	}
}

// NewFlightService builds the catalog. cache may be nil.
func NewFlightService(repo repository.FlightRepository, cache SearchCache, opts ...FlightServiceOption) *FlightService {
	s := &FlightService{
		repo:  repo,
		cache: cache,
		log:   logger.Nop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddFlight appends a flight to the catalog. Ids are not checked for
// uniqueness; callers must assign them.
func (s *FlightService) AddFlight(ctx context.Context, flight domain.Flight) error {
	if err := flight.Validate(); err != nil {
		return err
	}
	if err := s.repo.Add(ctx, flight); err != nil {
		return fmt.Errorf("add flight %d: %w", flight.ID, err)
	}
	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			s.log.Warn("invalidate flight cache", logger.Err(err))
		}
	}
	return nil
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	return s.repo.List(ctx)
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, bool, error) {
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrFlightNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return flight, true, nil
}

func (s *FlightService) SearchDirectFlights(ctx context.Context, origin, destination string, date time.Time) ([]domain.Flight, error) {
	metrics.FlightSearches.WithLabelValues("direct").Inc()
	key := cache.SearchKey("direct", origin, destination, dayKey(date))
	if cached, ok := s.cachedFlights(ctx, key); ok {
		return cached, nil
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	matches := directMatches(all, origin, destination, date)

	s.storeFlights(ctx, key, matches)
	s.log.Debug("direct search", logger.F("origin", origin), logger.F("destination", destination),
		logger.F("date", dayKey(date)), logger.F("results", len(matches)))
	return matches, nil
}

// SearchMultiStopFlights returns every feasible two-leg connection: the first
// leg departs origin on date, the second leaves the first leg's destination
// strictly after it lands and arrives at destination.
func (s *FlightService) SearchMultiStopFlights(ctx context.Context, origin, destination string, date time.Time) ([][]domain.Flight, error) {
	metrics.FlightSearches.WithLabelValues("multistop").Inc()
	key := cache.SearchKey("multistop", origin, destination, dayKey(date))
	if s.cache != nil {
		routes, ok, err := s.cache.GetConnections(ctx, key)
		if err != nil {
			s.log.Warn("read search cache", logger.Err(err), logger.F("key", key))
		} else if ok {
			metrics.SearchCacheHits.Inc()
			return routes, nil
		}
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	routes := make([][]domain.Flight, 0)
	for _, first := range all {
		if !domain.SameLocation(first.Origin, origin) || !first.DepartsOn(date) {
			continue
		}
		for _, second := range all {
			if domain.SameLocation(second.Origin, first.Destination) &&
				domain.SameLocation(second.Destination, destination) &&
				second.DepartureTime.After(first.ArrivalTime) {
				routes = append(routes, []domain.Flight{first, second})
			}
		}
	}

	if s.cache != nil {
		if err := s.cache.SetConnections(ctx, key, routes); err != nil {
			s.log.Warn("write search cache", logger.Err(err), logger.F("key", key))
		}
	}
	s.log.Debug("multi-stop search", logger.F("origin", origin), logger.F("destination", destination),
		logger.F("date", dayKey(date)), logger.F("results", len(routes)))
	return routes, nil
}

// SearchFlights returns outbound direct flights on departureDate followed by
// return flights on returnDate when one is given. The result is flat; callers
// split it by direction.
func (s *FlightService) SearchFlights(ctx context.Context, origin, destination string, departureDate time.Time, returnDate *time.Time) ([]domain.Flight, error) {
	outbound, err := s.SearchDirectFlights(ctx, origin, destination, departureDate)
	if err != nil {
		return nil, err
	}
	if returnDate == nil {
		return outbound, nil
	}

	inbound, err := s.SearchDirectFlights(ctx, destination, origin, *returnDate)
	if err != nil {
		return nil, err
	}

	results := make([]domain.Flight, 0, len(outbound)+len(inbound))
	results = append(results, outbound...)
	return append(results, inbound...), nil
}

// GetWeeklyFlights returns flights departing Monday through Sunday of the
// current week in the clock's location.
func (s *FlightService) GetWeeklyFlights(ctx context.Context) ([]domain.Flight, error) {
	metrics.FlightSearches.WithLabelValues("weekly").Inc()
	start, end := weekBounds(s.now())
	key := cache.SearchKey("weekly", dayKey(start))
	if cached, ok := s.cachedFlights(ctx, key); ok {
		return cached, nil
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	weekly := make([]domain.Flight, 0)
	for _, f := range all {
		dep := f.DepartureTime.In(start.Location())
		if !dep.Before(start) && dep.Before(end) {
			weekly = append(weekly, f)
		}
	}

	s.storeFlights(ctx, key, weekly)
	return weekly, nil
}

func (s *FlightService) CalculateTotalFlightTime(flights []domain.Flight) string {
	return domain.TotalFlightTime(flights)
}

func (s *FlightService) cachedFlights(ctx context.Context, key string) ([]domain.Flight, bool) {
	if s.cache == nil {
		return nil, false
	}
	flights, ok, err := s.cache.GetFlights(ctx, key)
	if err != nil {
		s.log.Warn("read search cache", logger.Err(err), logger.F("key", key))
		return nil, false
	}
	if ok {
		metrics.SearchCacheHits.Inc()
	}
	return flights, ok
}

func (s *FlightService) storeFlights(ctx context.Context, key string, flights []domain.Flight) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetFlights(ctx, key, flights); err != nil {
		s.log.Warn("write search cache", logger.Err(err), logger.F("key", key))
	}
}

func directMatches(all []domain.Flight, origin, destination string, date time.Time) []domain.Flight {
	matches := make([]domain.Flight, 0)
	for _, f := range all {
		if domain.SameLocation(f.Origin, origin) &&
			domain.SameLocation(f.Destination, destination) &&
			f.DepartsOn(date) {
			matches = append(matches, f)
		}
	}
	return matches
}

// weekBounds returns midnight of the Monday starting now's ISO week and
// midnight of the following Monday.
func weekBounds(now time.Time) (time.Time, time.Time) {
	sinceMonday := (int(now.Weekday()) + 6) % 7
	y, m, d := now.Date()
	start := time.Date(y, m, d-sinceMonday, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 7)
}

func dayKey(t time.Time) string {
	return t.Format(dateLayout) + "@" + t.Location().String()
}

var _ FlightUseCase = (*FlightService)(nil)
var _ SearchCache = (*cache.RedisCache)(nil)
