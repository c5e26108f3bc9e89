package inventory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/AdventureBot_Go/internal/catalog"
	"github.com/osse101/AdventureBot_Go/internal/domain"
)

func mutatorFixture(t *testing.T) (*Mutator, *domain.Player) {
	t.Helper()
	c := catalog.New()
	require.NoError(t, c.Register(&domain.Item{Name: "apple", Rarity: domain.RarityN}))
	require.NoError(t, c.Register(&domain.Item{
		Name:   "lantern",
		Rarity: domain.RarityN,
		OnGain: domain.HookFunc(func(_ *domain.Player) string { return "it glows" }),
		OnLose: domain.HookFunc(func(_ *domain.Player) string { return "it dims" }),
	}))
	require.NoError(t, c.Register(&domain.Item{Name: "music box", Rarity: domain.RaritySP}))
	for i := 0; i < 12; i++ {
		require.NoError(t, c.Register(&domain.Item{Name: fmt.Sprintf("filler-%d", i), Rarity: domain.RarityN}))
	}
	return NewMutator(c), domain.NewPlayer("player-1", "alice")
}

func TestGainUpdatesCountsAndRecent(t *testing.T) {
	m, player := mutatorFixture(t)

	_, err := m.Gain(context.Background(), player, "apple", 3)
	require.NoError(t, err)

	assert.Equal(t, 3, player.Warehouse["apple"])
	assert.Equal(t, 3, player.Gains["apple"])
	assert.Equal(t, []string{"apple"}, player.Recent)
}

func TestGainFiresHook(t *testing.T) {
	m, player := mutatorFixture(t)

	msg, err := m.Gain(context.Background(), player, "lantern", 1)
	require.NoError(t, err)
	assert.Equal(t, "it glows", msg)
}

func TestGainSPItemSkipsRecent(t *testing.T) {
	m, player := mutatorFixture(t)

	_, err := m.Gain(context.Background(), player, "music box", 1)
	require.NoError(t, err)

	assert.Equal(t, 1, player.Warehouse["music box"])
	assert.Empty(t, player.Recent)
}

func TestGainRejectsBadInput(t *testing.T) {
	m, player := mutatorFixture(t)

	_, err := m.Gain(context.Background(), player, "apple", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = m.Gain(context.Background(), player, "unknown", 1)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestRecentDeduplicatesAndMovesToFront(t *testing.T) {
	m, player := mutatorFixture(t)
	ctx := context.Background()

	_, err := m.Gain(ctx, player, "apple", 1)
	require.NoError(t, err)
	_, err = m.Gain(ctx, player, "lantern", 1)
	require.NoError(t, err)
	_, err = m.Gain(ctx, player, "apple", 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"apple", "lantern"}, player.Recent)
}

func TestRecentBounded(t *testing.T) {
	m, player := mutatorFixture(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := m.Gain(ctx, player, fmt.Sprintf("filler-%d", i), 1)
		require.NoError(t, err)
	}

	require.Len(t, player.Recent, domain.MaxRecentItems)
	assert.Equal(t, "filler-11", player.Recent[0], "newest first")
	assert.NotContains(t, player.Recent, "filler-0", "oldest dropped")
	assert.NotContains(t, player.Recent, "filler-1")
}

func TestLoseDecrements(t *testing.T) {
	m, player := mutatorFixture(t)
	player.Warehouse["apple"] = 5

	_, err := m.Lose(context.Background(), player, "apple", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, player.Warehouse["apple"])
}

func TestLoseClampsAtZero(t *testing.T) {
	m, player := mutatorFixture(t)
	player.Warehouse["apple"] = 2

	_, err := m.Lose(context.Background(), player, "apple", 5)
	require.NoError(t, err)
	assert.Zero(t, player.Warehouse["apple"])
}

func TestLoseFiresHook(t *testing.T) {
	m, player := mutatorFixture(t)
	player.Warehouse["lantern"] = 1

	msg, err := m.Lose(context.Background(), player, "lantern", 1)
	require.NoError(t, err)
	assert.Equal(t, "it dims", msg)
}

func TestLoseRejectsBadInput(t *testing.T) {
	m, player := mutatorFixture(t)

	_, err := m.Lose(context.Background(), player, "apple", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = m.Lose(context.Background(), player, "unknown", 1)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}
