package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/stretchr/testify/assert"
)

func TestSearchKey(t *testing.T) {
	a := SearchKey("direct", "New York", "Miami", "2026-03-02")
	b := SearchKey("direct", " new york", "MIAMI", "2026-03-02")
	c := SearchKey("multistop", "New York", "Miami", "2026-03-02")
	d := SearchKey("direct", "New York", "Miami", "2026-03-03")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	assert.True(t, strings.HasPrefix(a, "cache:flights:direct:"))
}

func TestNewRedisCache(t *testing.T) {
	c := NewRedisCache(config.RedisConfig{Addr: "localhost:6379"}, time.Minute)
	assert.NotNil(t, c)
	assert.Equal(t, time.Minute, c.flightsTTL)
	assert.NoError(t, c.Close())
}
