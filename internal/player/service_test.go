package player

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/AdventureBot_Go/internal/catalog"
	"github.com/osse101/AdventureBot_Go/internal/concurrency"
	"github.com/osse101/AdventureBot_Go/internal/domain"
	"github.com/osse101/AdventureBot_Go/internal/event"
	"github.com/osse101/AdventureBot_Go/internal/inventory"
	"github.com/osse101/AdventureBot_Go/internal/loot"
	"github.com/osse101/AdventureBot_Go/internal/pricing"
	"github.com/osse101/AdventureBot_Go/internal/repository"
)

type serviceFixture struct {
	svc   Service
	store *repository.MemoryStore
}

// newServiceFixture wires a service over a small catalog with a deterministic
// RNG: every weighted draw lands on the first eligible candidate.
func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	c := catalog.New()
	require.NoError(t, c.Register(&domain.Item{Name: "apple", Rarity: domain.RarityN, MaxCount: 5, Value: 1, Bid: 1, Fishing: 2}))
	require.NoError(t, c.Register(&domain.Item{Name: "pearl", Rarity: domain.RarityR, Value: 7, Bid: 10}))
	require.NoError(t, c.Register(&domain.Item{Name: "music box", Rarity: domain.RaritySP, MaxCount: 1, Value: 10, Plot: true}))

	store := repository.NewMemoryStore()
	mutator := inventory.NewMutator(c)
	distributor := loot.NewDistributorWithRand(func() float64 { return 0 })
	locks := concurrency.NewLockManager()

	svc := NewService(
		c,
		mutator,
		distributor,
		inventory.NewOverflowResolver(c, nil),
		pricing.NewStaticSource(c),
		store,
		event.NewMemoryBus(),
		locks,
	)

	return &serviceFixture{svc: svc, store: store}
}

func (f *serviceFixture) register(t *testing.T) *domain.Player {
	t.Helper()
	player, err := f.svc.Register(context.Background(), "alice")
	require.NoError(t, err)
	return player
}

func TestRegister(t *testing.T) {
	f := newServiceFixture(t)

	player := f.register(t)
	assert.NotEmpty(t, player.ID)
	assert.Equal(t, "alice", player.Username)

	stored, err := f.svc.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, player.ID, stored.ID)
}

func TestRegisterEmptyUsername(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.svc.Register(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGainAndLoseItem(t *testing.T) {
	f := newServiceFixture(t)
	player := f.register(t)
	ctx := context.Background()

	msg, err := f.svc.GainItem(ctx, player.ID, "apple", 3)
	require.NoError(t, err)
	assert.Contains(t, msg, "You received apple ×3.")

	msg, err = f.svc.LoseItem(ctx, player.ID, "apple", 1)
	require.NoError(t, err)
	assert.Contains(t, msg, "You lost apple ×1.")

	stored, err := f.svc.Get(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Warehouse["apple"])
	assert.Equal(t, 3, stored.Gains["apple"])
}

func TestGainItemUnknownPlayer(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.svc.GainItem(context.Background(), "missing", "apple", 1)
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}

func TestDropAwardsAndPersists(t *testing.T) {
	f := newServiceFixture(t)
	player := f.register(t)

	// rnd pinned to zero: the N tier is drawn and its first bucket entry
	// ("apple") picked.
	msg, err := f.svc.Drop(context.Background(), player.ID)
	require.NoError(t, err)
	assert.Contains(t, msg, "You obtained apple (N)!")

	stored, err := f.svc.Get(context.Background(), player.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Warehouse["apple"])
	assert.Equal(t, []string{"apple"}, stored.Recent)
}

func TestDropResolvesOverflow(t *testing.T) {
	f := newServiceFixture(t)
	player := f.register(t)
	ctx := context.Background()

	// Fill the apple stack to capacity, then drop one more. With no forced
	// seller wired the resolver clamps back to capacity.
	_, err := f.svc.GainItem(ctx, player.ID, "apple", 5)
	require.NoError(t, err)

	_, err = f.svc.Drop(ctx, player.ID)
	require.NoError(t, err)

	stored, err := f.svc.Get(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Warehouse["apple"], "clamped to capacity")
	assert.Equal(t, 6, stored.Gains["apple"], "cumulative count still increments")
}

func TestFishUsesFishingWeights(t *testing.T) {
	f := newServiceFixture(t)
	player := f.register(t)

	// Only "apple" carries a fishing weight.
	msg, err := f.svc.Fish(context.Background(), player.ID)
	require.NoError(t, err)
	assert.Contains(t, msg, "You obtained apple (N)!")
}

func TestOverview(t *testing.T) {
	f := newServiceFixture(t)
	player := f.register(t)
	ctx := context.Background()

	_, err := f.svc.GainItem(ctx, player.ID, "apple", 2)
	require.NoError(t, err)

	msg, err := f.svc.Overview(ctx, player.ID)
	require.NoError(t, err)
	assert.Contains(t, msg, "alice, you have obtained 1 of 3 items.")
	assert.Contains(t, msg, "N (1/1): apple ×2")
	assert.Contains(t, msg, "R (0/1)")
}

func TestItemDetail(t *testing.T) {
	f := newServiceFixture(t)
	player := f.register(t)
	ctx := context.Background()

	_, err := f.svc.GainItem(ctx, player.ID, "apple", 2)
	require.NoError(t, err)

	msg, err := f.svc.ItemDetail(ctx, player.ID, "apple")
	require.NoError(t, err)
	assert.Contains(t, msg, "apple (N)")
	assert.Contains(t, msg, "Currently held: 2")
	assert.Contains(t, msg, "Total obtained: 2")
	assert.Contains(t, msg, "Stack limit: 5")
	assert.Contains(t, msg, "Sell price: 1")
	assert.Contains(t, msg, "Buy price: 1")
	assert.Contains(t, msg, "lottery")
	assert.Contains(t, msg, "fishing")
	assert.Contains(t, msg, "shop")
}

func TestItemDetailNeverObtained(t *testing.T) {
	f := newServiceFixture(t)
	player := f.register(t)

	msg, err := f.svc.ItemDetail(context.Background(), player.ID, "apple")
	require.NoError(t, err)
	assert.Equal(t, "You have never obtained this item.", msg)
}

func TestItemDetailUnknownItem(t *testing.T) {
	f := newServiceFixture(t)
	player := f.register(t)

	_, err := f.svc.ItemDetail(context.Background(), player.ID, "ghost")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestItemDetailPlotItemSource(t *testing.T) {
	f := newServiceFixture(t)
	player := f.register(t)
	ctx := context.Background()

	_, err := f.svc.GainItem(ctx, player.ID, "music box", 1)
	require.NoError(t, err)

	msg, err := f.svc.ItemDetail(ctx, player.ID, "music box")
	require.NoError(t, err)
	assert.Contains(t, msg, "story")
	assert.NotContains(t, msg, "lottery")
}

func TestCommandsSerializePerPlayer(t *testing.T) {
	f := newServiceFixture(t)
	player := f.register(t)
	ctx := context.Background()

	done := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func() {
			_, err := f.svc.GainItem(ctx, player.ID, "pearl", 1)
			done <- err
		}()
	}
	for i := 0; i < 10; i++ {
		require.NoError(t, <-done)
	}

	stored, err := f.svc.Get(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, stored.Warehouse["pearl"], "no lost updates under concurrency")
}
