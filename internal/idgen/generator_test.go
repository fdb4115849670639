package idgen

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketNumbers_UniqueUnderConcurrency(t *testing.T) {
	numbers, err := NewTicketNumbers(1, "TKT")
	require.NoError(t, err)

	const workers, perWorker = 8, 200
	out := make(chan string, workers*perWorker)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				out <- numbers.Next()
			}
		}()
	}
	wg.Wait()
	close(out)

	seen := make(map[string]struct{})
	for n := range out {
		assert.True(t, strings.HasPrefix(n, "TKT"), n)
		assert.Equal(t, strings.ToUpper(n), n)
		seen[n] = struct{}{}
	}
	assert.Len(t, seen, workers*perWorker)
}

func TestNewTicketNumbers_InvalidNode(t *testing.T) {
	_, err := NewTicketNumbers(4096, "TKT")
	assert.Error(t, err)
}
