package seed

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 4, 15, 20, 0, 0, time.UTC)

func TestReferenceFlights(t *testing.T) {
	all := ReferenceFlights(now)
	require.Len(t, all, 3+seedDays*len(routes))

	byID := map[int64]domain.Flight{}
	for _, f := range all {
		require.NoError(t, f.Validate())
		byID[f.ID] = f
	}

	require.NotNil(t, byID[101].CorrespondingFlightID)
	assert.Equal(t, int64(102), *byID[101].CorrespondingFlightID)
	assert.Equal(t, int64(101), *byID[102].CorrespondingFlightID)
	assert.Nil(t, byID[103].CorrespondingFlightID)
	assert.Equal(t, "5:00", byID[101].FormattedDuration())
	assert.Equal(t, int64(35000), byID[101].PriceCents)

	first := byID[1]
	assert.Equal(t, "New York", first.Origin)
	assert.Equal(t, "Los Angeles", first.Destination)
	assert.Equal(t, time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC), first.DepartureTime)
	assert.Equal(t, "2:00", first.FormattedDuration())
	assert.Equal(t, int64(10000), first.PriceCents)

	// day 1, route 4: Seattle -> Chicago
	f := byID[10]
	assert.Equal(t, "Seattle", f.Origin)
	assert.Equal(t, time.Date(2026, 3, 6, 16, 0, 0, 0, time.UTC), f.DepartureTime)
	assert.Equal(t, "3:40", f.FormattedDuration())
	assert.Equal(t, int64(31000), f.PriceCents)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	catalog := flights.NewFlightService(repository.NewMemoryFlightRepository(), nil)

	n, err := Load(ctx, catalog, now, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, 73, n)

	n, err = Load(ctx, catalog, now, logger.Nop())
	require.NoError(t, err)
	assert.Zero(t, n)

	list, err := catalog.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 73)
}
