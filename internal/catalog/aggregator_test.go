package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockWithPokemon(n int) *MockAPI {
	api := &MockAPI{}
	for i := 1; i <= n; i++ {
		api.Pokemons = append(api.Pokemons, newPokemon(i, fmt.Sprintf("poke-%d", i), Normal))
	}
	return api
}

func TestAggregator_FetchAll(t *testing.T) {
	api := mockWithPokemon(45)
	agg := NewAggregator(api, 100, 20, nil)

	items, err := agg.FetchAll(context.Background())
	require.NoError(t, err)

	got := itemIDs(items)
	slices.Sort(got)
	assert.Len(t, got, 45)
	assert.Equal(t, 1, got[0])
	assert.Equal(t, 45, got[44])
	assert.Equal(t, 45, api.PokemonCalls)
}

func TestAggregator_BatchesRunSequentially(t *testing.T) {
	const batchSize = 4
	api := mockWithPokemon(14)

	var (
		inFlight  atomic.Int32
		peak      atomic.Int32
		completed atomic.Int32

		mu sync.Mutex
		// doneBefore records how many fetches had finished when each id started.
		doneBefore = make(map[int]int32)
	)
	api.OnPokemon = func(name string) {
		id, err := strconv.Atoi(strings.TrimPrefix(name, "poke-"))
		assert.NoError(t, err)

		mu.Lock()
		doneBefore[id] = completed.Load()
		mu.Unlock()

		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		inFlight.Add(-1)
		completed.Add(1)
	}

	items, err := NewAggregator(api, 100, batchSize, nil).FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 14)

	assert.LessOrEqual(t, peak.Load(), int32(batchSize))
	assert.Greater(t, peak.Load(), int32(1))

	require.Len(t, doneBefore, 14)
	for id, done := range doneBefore {
		batch := (id - 1) / batchSize
		assert.GreaterOrEqual(t, done, int32(batch*batchSize),
			"poke-%d started before batch %d finished", id, batch-1)
	}
}

func TestAggregator_RespectsListLimit(t *testing.T) {
	api := mockWithPokemon(30)
	agg := NewAggregator(api, 10, 4, nil)

	items, err := agg.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 10)
}

func TestAggregator_DropsFailedItems(t *testing.T) {
	api := mockWithPokemon(25)
	api.FailDetail = map[string]bool{"poke-3": true, "poke-21": true}
	agg := NewAggregator(api, 100, 20, nil)

	items, err := agg.FetchAll(context.Background())
	require.NoError(t, err)

	got := itemIDs(items)
	assert.Len(t, got, 23)
	assert.NotContains(t, got, 3)
	assert.NotContains(t, got, 21)
}

func TestAggregator_ListingFailureAborts(t *testing.T) {
	api := mockWithPokemon(5)
	api.ListErr = errors.New("connection refused")
	agg := NewAggregator(api, 100, 20, nil)

	items, err := agg.FetchAll(context.Background())
	assert.Error(t, err)
	assert.Nil(t, items)
	assert.Contains(t, err.Error(), "failed to fetch listing")
	assert.Equal(t, 0, api.PokemonCalls)
}

func TestAggregator_Cancelled(t *testing.T) {
	api := mockWithPokemon(50)
	agg := NewAggregator(api, 100, 20, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := agg.FetchAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAggregator_Defaults(t *testing.T) {
	agg := NewAggregator(&MockAPI{}, 0, 0, nil)
	assert.Equal(t, DefaultListLimit, agg.limit)
	assert.Equal(t, DefaultBatchSize, agg.batchSize)
}
