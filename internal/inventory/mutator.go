package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/AdventureBot_Go/internal/catalog"
	"github.com/osse101/AdventureBot_Go/internal/domain"
	"github.com/osse101/AdventureBot_Go/internal/logger"
)

// Mutator applies gain and loss of held quantity to a player snapshot,
// maintains the recently-obtained list, and fires per-item hooks. It never
// persists; callers signal the store after a successful unit of work.
type Mutator struct {
	catalog *catalog.Catalog
}

// NewMutator creates a Mutator over the given catalog.
func NewMutator(c *catalog.Catalog) *Mutator {
	return &Mutator{catalog: c}
}

// Gain increments the player's cumulative and held counts for an item and
// refreshes the recent list. An unregistered name or non-positive count is a
// programming error on the caller's side, never a user error.
func (m *Mutator) Gain(ctx context.Context, player *domain.Player, name string, count int) (string, error) {
	if count <= 0 {
		return "", fmt.Errorf("%w: gain count %d for %q", domain.ErrInvalidQuantity, count, name)
	}
	item, ok := m.catalog.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %q passed to gain", domain.ErrItemNotFound, name)
	}

	player.Gains[name] += count
	player.Warehouse[name] += count

	if item.Rarity != domain.RaritySP {
		m.touchRecent(player, name)
	}

	var output []string
	if item.OnGain != nil {
		if msg := item.OnGain.Apply(player); msg != "" {
			output = append(output, msg)
		}
	}

	logger.FromContext(ctx).Debug("Item gained",
		"player", player.ID, "item", name, "count", count, "held", player.Warehouse[name])
	return strings.Join(output, "\n"), nil
}

// Lose decrements the player's held count for an item. The count is clamped
// at zero: callers are expected to pre-validate sufficient stock, and a
// negative warehouse entry must never be observable.
func (m *Mutator) Lose(ctx context.Context, player *domain.Player, name string, count int) (string, error) {
	if count <= 0 {
		return "", fmt.Errorf("%w: lose count %d for %q", domain.ErrInvalidQuantity, count, name)
	}
	item, ok := m.catalog.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %q passed to lose", domain.ErrItemNotFound, name)
	}

	if held, ok := player.Warehouse[name]; ok {
		remaining := held - count
		if remaining < 0 {
			logger.FromContext(ctx).Warn("Lose clamped at zero",
				"player", player.ID, "item", name, "held", held, "count", count)
			remaining = 0
		}
		player.Warehouse[name] = remaining
	}

	if item.OnLose != nil {
		if msg := item.OnLose.Apply(player); msg != "" {
			return msg, nil
		}
	}
	return "", nil
}

// touchRecent moves name to the front of the recent list. The list holds at
// most MaxRecentItems distinct names; when the name is absent the oldest
// entries are dropped to make room.
func (m *Mutator) touchRecent(player *domain.Player, name string) {
	recent := player.Recent
	for i, existing := range recent {
		if existing == name {
			recent = append(recent[:i], recent[i+1:]...)
			player.Recent = append([]string{name}, recent...)
			return
		}
	}
	if len(recent) > domain.MaxRecentItems-1 {
		recent = recent[:domain.MaxRecentItems-1]
	}
	player.Recent = append([]string{name}, recent...)
}
