package trade

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/osse101/AdventureBot_Go/internal/achievement"
	"github.com/osse101/AdventureBot_Go/internal/catalog"
	"github.com/osse101/AdventureBot_Go/internal/concurrency"
	"github.com/osse101/AdventureBot_Go/internal/domain"
	"github.com/osse101/AdventureBot_Go/internal/event"
	"github.com/osse101/AdventureBot_Go/internal/inventory"
	"github.com/osse101/AdventureBot_Go/internal/narrative"
	"github.com/osse101/AdventureBot_Go/internal/pricing"
	"github.com/osse101/AdventureBot_Go/internal/repository"
)

type engineFixture struct {
	engine   *Engine
	store    *repository.MemoryStore
	registry *narrative.Registry
	player   *domain.Player
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	c := catalog.New()
	require.NoError(t, c.Register(&domain.Item{Name: "apple", Rarity: domain.RarityN, MaxCount: 20, Value: 1, Bid: 1}))
	require.NoError(t, c.Register(&domain.Item{Name: "sword", Rarity: domain.RarityN, MaxCount: 5, Value: 2, Bid: 3}))
	require.NoError(t, c.Register(&domain.Item{Name: "pearl", Rarity: domain.RarityR, MaxCount: 10, Value: 7, Bid: 10}))
	require.NoError(t, c.Register(&domain.Item{Name: "junk", Rarity: domain.RarityN, MaxCount: 10}))
	require.NoError(t, c.Register(&domain.Item{Name: "music box", Rarity: domain.RaritySP, MaxCount: 1, Value: 10, Plot: true}))

	registry := narrative.NewRegistry()
	registry.RegisterSaleTrigger("music box", narrative.SaleTrigger{
		Sequence: "1-1",
		Opening:  "The melody begins.",
	})

	store := repository.NewMemoryStore()
	player := domain.NewPlayer("player-1", "alice")
	require.NoError(t, store.CreatePlayer(context.Background(), player))

	engine := NewEngine(
		c,
		inventory.NewMutator(c),
		pricing.NewStaticSource(c),
		registry,
		achievement.NewService(nil),
		store,
		event.NewMemoryBus(),
		concurrency.NewLockManager(),
	)

	return &engineFixture{engine: engine, store: store, registry: registry, player: player}
}

// setPlayer overwrites the stored snapshot for the fixture player.
func (f *engineFixture) setPlayer(t *testing.T, mutate func(p *domain.Player)) {
	t.Helper()
	p, err := f.store.GetPlayer(context.Background(), f.player.ID)
	require.NoError(t, err)
	mutate(p)
	require.NoError(t, f.store.CommitPlayer(context.Background(), p))
}

func (f *engineFixture) getPlayer(t *testing.T) *domain.Player {
	t.Helper()
	p, err := f.store.GetPlayer(context.Background(), f.player.ID)
	require.NoError(t, err)
	return p
}

func (f *engineFixture) freezeTime(at time.Time) {
	f.engine.now = func() time.Time { return at }
}

func (f *engineFixture) forceRand(v float64) {
	f.engine.rnd = func() float64 { return v }
}
