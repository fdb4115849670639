package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFlight_Validate(t *testing.T) {
	dep := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	valid := Flight{ID: 1, Origin: "A", Destination: "B", DepartureTime: dep, ArrivalTime: dep.Add(time.Hour), PriceCents: 100}
	assert.NoError(t, valid.Validate())

	sameTime := valid
	sameTime.ArrivalTime = dep
	assert.ErrorIs(t, sameTime.Validate(), ErrInvalidFlight)

	negative := valid
	negative.PriceCents = -1
	assert.ErrorIs(t, negative.Validate(), ErrInvalidFlight)

	noOrigin := valid
	noOrigin.Origin = " "
	assert.ErrorIs(t, noOrigin.Validate(), ErrInvalidFlight)
}

func TestFlight_FormattedDuration(t *testing.T) {
	dep := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	f := Flight{DepartureTime: dep, ArrivalTime: dep.Add(3*time.Hour + 7*time.Minute)}
	assert.Equal(t, "3:07", f.FormattedDuration())
	assert.Equal(t, "0:45", FormatDuration(45*time.Minute))
	assert.Equal(t, "12:00", FormatDuration(12*time.Hour))
}

func TestFlight_DepartsOn(t *testing.T) {
	dep := time.Date(2026, 3, 2, 23, 30, 0, 0, time.UTC)
	f := Flight{DepartureTime: dep}

	assert.True(t, f.DepartsOn(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
	assert.False(t, f.DepartsOn(time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)))

	plusTwo := time.FixedZone("UTC+2", 2*60*60)
	assert.True(t, f.DepartsOn(time.Date(2026, 3, 3, 0, 0, 0, 0, plusTwo)))
}

func TestSameLocation(t *testing.T) {
	assert.True(t, SameLocation("New York", " new york "))
	assert.False(t, SameLocation("New York", "Newark"))
}
