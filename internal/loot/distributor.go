package loot

import (
	"context"
	"fmt"

	"github.com/osse101/AdventureBot_Go/internal/catalog"
	"github.com/osse101/AdventureBot_Go/internal/domain"
	"github.com/osse101/AdventureBot_Go/internal/logger"
	"github.com/osse101/AdventureBot_Go/internal/utils"
)

// Distributor draws one item from a weighted, conditionally-filtered subset
// of candidates. Selection is uniform over the cumulative weight space.
type Distributor struct {
	rnd func() float64
}

// NewDistributor creates a Distributor using the default RNG.
func NewDistributor() *Distributor {
	return &Distributor{rnd: utils.RandomFloat}
}

// NewDistributorWithRand creates a Distributor with an injected RNG, for
// deterministic tests.
func NewDistributorWithRand(rnd func() float64) *Distributor {
	return &Distributor{rnd: rnd}
}

// Pick selects one item from candidates. Items with an explicit zero lottery
// weight are excluded, as are items whose condition rejects the player
// snapshot. An empty eligible set is a recoverable no-drop outcome; callers
// either guarantee at least one unconditional candidate or treat the error
// as "nothing dropped".
func (d *Distributor) Pick(ctx context.Context, candidates []*domain.Item, player *domain.Player, isLast bool) (*domain.Item, error) {
	eligible := make([]*domain.Item, 0, len(candidates))
	for _, item := range candidates {
		if item.LotteryWeight() == 0 {
			continue
		}
		if item.Condition != nil && !item.Condition(player, isLast) {
			continue
		}
		eligible = append(eligible, item)
	}
	if len(eligible) == 0 {
		return nil, fmt.Errorf("%w: all candidates filtered out", domain.ErrNoEligibleItems)
	}

	picked := d.weightedPick(eligible, func(item *domain.Item) int { return item.LotteryWeight() })
	logger.FromContext(ctx).Debug("Loot picked", "item", picked.Name, "eligible", len(eligible))
	return picked, nil
}

// PickFishing selects one item over the fishing drop channel. Only items
// carrying a fishing weight participate; conditions apply as in Pick.
func (d *Distributor) PickFishing(ctx context.Context, candidates []*domain.Item, player *domain.Player) (*domain.Item, error) {
	eligible := make([]*domain.Item, 0, len(candidates))
	for _, item := range candidates {
		if item.Fishing <= 0 {
			continue
		}
		if item.Condition != nil && !item.Condition(player, false) {
			continue
		}
		eligible = append(eligible, item)
	}
	if len(eligible) == 0 {
		return nil, fmt.Errorf("%w: no fishing candidates", domain.ErrNoEligibleItems)
	}

	picked := d.weightedPick(eligible, func(item *domain.Item) int { return item.Fishing })
	logger.FromContext(ctx).Debug("Fishing loot picked", "item", picked.Name, "eligible", len(eligible))
	return picked, nil
}

// PickRarity draws a tier from the fixed basis-point table. SP carries zero
// weight and is never returned.
func (d *Distributor) PickRarity() domain.Rarity {
	total := 0
	for _, r := range domain.Rarities {
		total += domain.DropWeights[r]
	}

	target := d.rnd() * float64(total)
	cumulative := 0.0
	for _, r := range domain.Rarities {
		cumulative += float64(domain.DropWeights[r])
		if target < cumulative {
			return r
		}
	}
	return domain.RarityN
}

// Draw performs a full random drop against a catalog: a rarity tier is drawn
// by the basis-point weights, then one item is picked from that tier's
// bucket. Tiers whose buckets yield no eligible item fall through to N.
func (d *Distributor) Draw(ctx context.Context, c *catalog.Catalog, player *domain.Player, isLast bool) (*domain.Item, error) {
	rarity := d.PickRarity()
	item, err := d.Pick(ctx, c.Bucket(rarity), player, isLast)
	if err == nil {
		return item, nil
	}
	if rarity == domain.RarityN {
		return nil, err
	}
	return d.Pick(ctx, c.Bucket(domain.RarityN), player, isLast)
}

func (d *Distributor) weightedPick(items []*domain.Item, weight func(*domain.Item) int) *domain.Item {
	total := 0
	for _, item := range items {
		total += weight(item)
	}

	target := d.rnd() * float64(total)
	cumulative := 0.0
	for _, item := range items {
		cumulative += float64(weight(item))
		if target < cumulative {
			return item
		}
	}
	// Floating point edge at target == total.
	return items[len(items)-1]
}
