package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/AdventureBot_Go/internal/testing/leaktest"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	bus := NewMemoryBus()

	var got []Event
	bus.Subscribe(ItemSold, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	err := bus.Publish(context.Background(), Event{
		Version: "1.0",
		Type:    ItemSold,
		Payload: TradePayload{PlayerID: "p1", MoneyDelta: 5},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)

	payload, ok := got[0].Payload.(TradePayload)
	require.True(t, ok)
	assert.Equal(t, "p1", payload.PlayerID)
	assert.Equal(t, 5, payload.MoneyDelta)
}

func TestPublishNoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	assert.NoError(t, bus.Publish(context.Background(), Event{Type: DropAwarded}))
}

func TestPublishTypeIsolation(t *testing.T) {
	bus := NewMemoryBus()

	calls := 0
	bus.Subscribe(ItemBought, func(_ context.Context, _ Event) error {
		calls++
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), Event{Type: ItemSold}))
	assert.Zero(t, calls)
}

func TestPublishCollectsHandlerErrors(t *testing.T) {
	bus := NewMemoryBus()
	bus.Subscribe(ItemSold, func(_ context.Context, _ Event) error {
		return errors.New("boom")
	})

	calls := 0
	bus.Subscribe(ItemSold, func(_ context.Context, _ Event) error {
		calls++
		return nil
	})

	err := bus.Publish(context.Background(), Event{Type: ItemSold})
	assert.Error(t, err)
	assert.Equal(t, 1, calls, "later handlers still run")
}

func TestConcurrentPublishLeavesNoGoroutines(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	bus := NewMemoryBus()
	var delivered sync.Map
	bus.Subscribe(DropAwarded, func(_ context.Context, e Event) error {
		delivered.Store(e.Payload, true)
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = bus.Publish(context.Background(), Event{Type: DropAwarded, Payload: n})
		}(i)
	}
	wg.Wait()

	count := 0
	delivered.Range(func(_, _ any) bool {
		count++
		return true
	})
	assert.Equal(t, 50, count)

	checker.Check(2)
}
