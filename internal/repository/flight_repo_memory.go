package repository

import (
	"context"
	"sync"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

type MemoryFlightRepository struct {
	mu      sync.RWMutex
	flights []domain.Flight
}

func NewMemoryFlightRepository() *MemoryFlightRepository {
	return &MemoryFlightRepository{}
}

func (r *MemoryFlightRepository) Add(_ context.Context, flight domain.Flight) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flights = append(r.flights, flight)
	return nil
}

func (r *MemoryFlightRepository) List(_ context.Context) ([]domain.Flight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	flights := make([]domain.Flight, len(r.flights))
	copy(flights, r.flights)
	return flights, nil
}

func (r *MemoryFlightRepository) GetByID(_ context.Context, id int64) (*domain.Flight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.flights {
		if f.ID == id {
			found := f
			return &found, nil
		}
	}
	return nil, domain.ErrFlightNotFound
}

var _ FlightRepository = (*MemoryFlightRepository)(nil)
