package inventory

import (
	"context"
	"time"

	"github.com/osse101/AdventureBot_Go/internal/catalog"
	"github.com/osse101/AdventureBot_Go/internal/domain"
	"github.com/osse101/AdventureBot_Go/internal/logger"
)

// OverflowNotice prefixes the forced-sale message produced when holdings
// exceed capacity.
const OverflowNotice = "Your warehouse is full, so the excess was sold automatically. "

// ForcedSeller executes a pre-validated sale batch. Implemented by the
// transaction engine's direct sell path.
type ForcedSeller interface {
	ForceSell(ctx context.Context, player *domain.Player, items map[string]int) (string, error)
}

// OverflowResolver scans a player's holdings against per-item capacity,
// forcing either a clamp or a forced sale.
type OverflowResolver struct {
	catalog *catalog.Catalog
	seller  ForcedSeller
	now     func() time.Time
}

// NewOverflowResolver creates a resolver. seller may be nil, in which case
// every overflow is clamped.
func NewOverflowResolver(c *catalog.Catalog, seller ForcedSeller) *OverflowResolver {
	return &OverflowResolver{catalog: c, seller: seller, now: time.Now}
}

// Resolve brings the named holdings back within capacity. With no names it
// scans the whole warehouse. Overflowing sellable items are queued into a
// single forced-sale batch, unless the player's periodic forced-sale
// allowance is spent (the shop timer is active); everything else is clamped
// to capacity, silently discarding the excess. An empty result means nothing
// needed resolution.
func (r *OverflowResolver) Resolve(ctx context.Context, player *domain.Player, names ...string) (string, error) {
	if len(names) == 0 {
		names = make([]string, 0, len(player.Warehouse))
		for name := range player.Warehouse {
			names = append(names, name)
		}
	}

	shopSpent := player.TimerActive(domain.TimerShop, r.now())
	batch := make(map[string]int)
	for _, name := range names {
		item, ok := r.catalog.Lookup(name)
		if !ok {
			// Warehouse keys always come from the catalog; an unknown
			// key means a stale snapshot and is skipped, not fatal.
			logger.FromContext(ctx).Warn("Unknown item in warehouse", "player", player.ID, "item", name)
			continue
		}
		overflow := player.Warehouse[name] - item.MaxCount
		if overflow <= 0 {
			continue
		}
		if item.Sellable() && !shopSpent && r.seller != nil {
			batch[name] = overflow
		} else {
			player.Warehouse[name] = item.MaxCount
			logger.FromContext(ctx).Info("Overflow clamped",
				"player", player.ID, "item", name, "discarded", overflow)
		}
	}

	if len(batch) == 0 {
		return "", nil
	}

	msg, err := r.seller.ForceSell(ctx, player, batch)
	if err != nil {
		return "", err
	}
	return OverflowNotice + msg, nil
}
