package trade

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/AdventureBot_Go/internal/domain"
)

func TestSellNoArgsReturnsHeldListing(t *testing.T) {
	f := newEngineFixture(t)
	f.setPlayer(t, func(p *domain.Player) {
		p.Warehouse["apple"] = 2
		p.Warehouse["junk"] = 1
	})

	res, err := f.engine.Sell(context.Background(), f.player.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeListed, res.Outcome)
	assert.Contains(t, res.Message, "Apple (N) 1")
	assert.NotContains(t, res.Message, "Junk", "unsellable holdings are not listed")
	assert.NotContains(t, res.Message, "Sword", "unheld items are not listed")
}

func TestSellNoArgsEmptyWarehouse(t *testing.T) {
	f := newEngineFixture(t)

	res, err := f.engine.Sell(context.Background(), f.player.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeListed, res.Outcome)
	assert.Equal(t, "You hold nothing that can be sold.", res.Message)
}

func TestSellCommitsBatch(t *testing.T) {
	f := newEngineFixture(t)
	f.setPlayer(t, func(p *domain.Player) {
		p.Warehouse["apple"] = 5
		p.Warehouse["pearl"] = 2
	})

	res, err := f.engine.Sell(context.Background(), f.player.ID, []string{"apple", "3", "pearl"})
	require.NoError(t, err)
	require.Equal(t, OutcomeCommitted, res.Outcome)

	assert.Equal(t, map[string]int{"apple": 3, "pearl": 1}, res.Items)
	assert.Equal(t, 10, res.MoneyDelta)
	assert.Contains(t, res.Message, "You sold apple ×3, pearl ×1 for 10 money.")

	stored := f.getPlayer(t)
	assert.Equal(t, 10, stored.Money)
	assert.Equal(t, 2, stored.Warehouse["apple"])
	assert.Equal(t, 1, stored.Warehouse["pearl"])
}

func TestSellFillSellsEntireStock(t *testing.T) {
	f := newEngineFixture(t)
	f.setPlayer(t, func(p *domain.Player) { p.Warehouse["apple"] = 7 })

	res, err := f.engine.Sell(context.Background(), f.player.ID, []string{"apple", "*"})
	require.NoError(t, err)
	require.Equal(t, OutcomeCommitted, res.Outcome)
	assert.Equal(t, map[string]int{"apple": 7}, res.Items)
	assert.Zero(t, f.getPlayer(t).Warehouse["apple"])
}

func TestSellIfUntouchedSellsOverflowOnly(t *testing.T) {
	f := newEngineFixture(t)
	f.setPlayer(t, func(p *domain.Player) { p.Warehouse["pearl"] = 13 })

	res, err := f.engine.Sell(context.Background(), f.player.ID, []string{"pearl", "?"})
	require.NoError(t, err)
	require.Equal(t, OutcomeCommitted, res.Outcome)
	assert.Equal(t, map[string]int{"pearl": 3}, res.Items, "sold down to capacity")
	assert.Equal(t, 10, f.getPlayer(t).Warehouse["pearl"])
}

func TestSellIfUntouchedAtCapacitySellsOne(t *testing.T) {
	f := newEngineFixture(t)
	f.setPlayer(t, func(p *domain.Player) { p.Warehouse["pearl"] = 10 })

	res, err := f.engine.Sell(context.Background(), f.player.ID, []string{"pearl", "?"})
	require.NoError(t, err)
	require.Equal(t, OutcomeCommitted, res.Outcome)
	assert.Equal(t, map[string]int{"pearl": 1}, res.Items)
}

func TestSellIfUntouchedBelowCapacitySkips(t *testing.T) {
	f := newEngineFixture(t)
	f.setPlayer(t, func(p *domain.Player) { p.Warehouse["pearl"] = 4 })

	res, err := f.engine.Sell(context.Background(), f.player.ID, []string{"pearl", "?"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeRejected, res.Outcome)
	assert.Equal(t, MsgNothingToSell, res.Message)
}

func TestSellRejectsInsufficientStock(t *testing.T) {
	f := newEngineFixture(t)
	f.setPlayer(t, func(p *domain.Player) { p.Warehouse["apple"] = 2 })

	res, err := f.engine.Sell(context.Background(), f.player.ID, []string{"apple", "5"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeRejected, res.Outcome)
	assert.Equal(t, MsgInsufficientStock, res.Message)
	assert.Equal(t, 2, f.getPlayer(t).Warehouse["apple"])
}

func TestSellRejectsUnsellable(t *testing.T) {
	f := newEngineFixture(t)
	f.setPlayer(t, func(p *domain.Player) { p.Warehouse["junk"] = 3 })

	res, err := f.engine.Sell(context.Background(), f.player.ID, []string{"junk"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeRejected, res.Outcome)
	assert.Contains(t, res.Message, `"junk" cannot be sold`)
}

func TestSellBlockedByProgress(t *testing.T) {
	f := newEngineFixture(t)
	f.setPlayer(t, func(p *domain.Player) {
		p.Progress = "1-2"
		p.Warehouse["apple"] = 5
	})

	res, err := f.engine.Sell(context.Background(), f.player.ID, []string{"apple"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeRejected, res.Outcome)
	assert.Equal(t, MsgProgressBlocked, res.Message)
}

func TestSellImpairedDiscard(t *testing.T) {
	f := newEngineFixture(t)
	f.setPlayer(t, func(p *domain.Player) {
		p.Warehouse["apple"] = 5
		p.SetTimer(domain.TimerImpaired, time.Now().Add(time.Hour))
	})
	f.forceRand(0.1) // below the 25% discard chance

	res, err := f.engine.Sell(context.Background(), f.player.ID, []string{"apple", "3"})
	require.NoError(t, err)
	require.Equal(t, OutcomeCommitted, res.Outcome)
	assert.True(t, res.Discarded)
	assert.Zero(t, res.MoneyDelta)
	assert.Contains(t, res.Message, "fumbles")
	assert.Contains(t, res.Message, "apple (N)")

	stored := f.getPlayer(t)
	assert.Zero(t, stored.Money, "no proceeds on a fumbled sale")
	assert.Equal(t, 2, stored.Warehouse["apple"], "items lost anyway")
}

func TestSellImpairedUsuallySucceeds(t *testing.T) {
	f := newEngineFixture(t)
	f.setPlayer(t, func(p *domain.Player) {
		p.Warehouse["apple"] = 5
		p.SetTimer(domain.TimerImpaired, time.Now().Add(time.Hour))
	})
	f.forceRand(0.9) // above the discard chance

	res, err := f.engine.Sell(context.Background(), f.player.ID, []string{"apple", "3"})
	require.NoError(t, err)
	require.Equal(t, OutcomeCommitted, res.Outcome)
	assert.False(t, res.Discarded)
	assert.Equal(t, 3, res.MoneyDelta)
}

func TestSellSingleTriggerItemHandsOff(t *testing.T) {
	f := newEngineFixture(t)
	f.setPlayer(t, func(p *domain.Player) { p.Warehouse["music box"] = 1 })

	res, err := f.engine.Sell(context.Background(), f.player.ID, []string{"music box"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeHandedOff, res.Outcome)
	assert.Equal(t, "The melody begins.", res.Message)

	stored := f.getPlayer(t)
	assert.Equal(t, "1-1", stored.Progress, "progress marker persisted")
	assert.Zero(t, stored.Money, "no currency changes hands")
	assert.Equal(t, 1, stored.Warehouse["music box"], "the item is not consumed by the handoff")
}

func TestSellTriggerItemInBatchSellsNormally(t *testing.T) {
	f := newEngineFixture(t)
	f.setPlayer(t, func(p *domain.Player) {
		p.Warehouse["music box"] = 1
		p.Warehouse["apple"] = 1
	})

	res, err := f.engine.Sell(context.Background(), f.player.ID, []string{"music box", "apple"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCommitted, res.Outcome)
	assert.Equal(t, 11, res.MoneyDelta)
	assert.Empty(t, f.getPlayer(t).Progress)
}

func TestSellCommitFailureReturnsError(t *testing.T) {
	f := newEngineFixture(t)
	f.setPlayer(t, func(p *domain.Player) { p.Warehouse["apple"] = 5 })
	f.store.FailCommits = true

	_, err := f.engine.Sell(context.Background(), f.player.ID, []string{"apple"})
	assert.ErrorIs(t, err, domain.ErrCommitFailed)
}

func TestForceSellClampsToHeld(t *testing.T) {
	f := newEngineFixture(t)
	player := f.getPlayer(t)
	player.Warehouse["apple"] = 3
	player.Warehouse["pearl"] = 1

	msg, err := f.engine.ForceSell(context.Background(), player, map[string]int{
		"apple": 5,
		"pearl": 1,
	})
	require.NoError(t, err)

	assert.Zero(t, player.Warehouse["apple"], "clamped to held count")
	assert.Zero(t, player.Warehouse["pearl"])
	assert.Equal(t, 10, player.Money)
	assert.Contains(t, msg, "apple ×3")
	assert.Contains(t, msg, "pearl ×1")
	assert.Contains(t, msg, "for 10 money")
}

func TestForceSellRejectsBadBatch(t *testing.T) {
	f := newEngineFixture(t)
	player := f.getPlayer(t)

	_, err := f.engine.ForceSell(context.Background(), player, map[string]int{"apple": 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.engine.ForceSell(context.Background(), player, map[string]int{"ghost": 1})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}
