package pricing

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/AdventureBot_Go/internal/catalog"
	"github.com/osse101/AdventureBot_Go/internal/domain"
)

// Func resolves an item name to a price for one player. Zero means the item
// is not tradeable in that direction.
type Func func(itemName string) int

// Source supplies the pluggable pricing functions the transaction engine
// consumes. Prices may depend on the player record, so pricers are created
// per player.
type Source interface {
	BuyPricer(player *domain.Player) Func
	SellPricer(player *domain.Player) Func
}

// StaticSource prices items by their catalog base values.
type StaticSource struct {
	catalog *catalog.Catalog
}

// NewStaticSource creates a Source backed by catalog base prices.
func NewStaticSource(c *catalog.Catalog) *StaticSource {
	return &StaticSource{catalog: c}
}

// BuyPricer returns the catalog bid price for every item.
func (s *StaticSource) BuyPricer(_ *domain.Player) Func {
	return func(name string) int {
		item, ok := s.catalog.Lookup(name)
		if !ok {
			return 0
		}
		return item.Bid
	}
}

// SellPricer returns the catalog sell value for every item.
func (s *StaticSource) SellPricer(_ *domain.Player) Func {
	return func(name string) int {
		item, ok := s.catalog.Lookup(name)
		if !ok {
			return 0
		}
		return item.Value
	}
}

const (
	cacheSize = 1024
	cacheTTL  = time.Minute
)

// CachingSource memoizes per-player price resolutions from a wrapped Source.
// Dynamic pricing can touch the player record on every lookup; the short TTL
// keeps listings cheap without letting prices go stale across transactions.
type CachingSource struct {
	inner Source
	cache *expirable.LRU[string, int]
}

// NewCachingSource wraps a Source with an expiring LRU cache.
func NewCachingSource(inner Source) *CachingSource {
	return &CachingSource{
		inner: inner,
		cache: expirable.NewLRU[string, int](cacheSize, nil, cacheTTL),
	}
}

func (s *CachingSource) cached(direction string, player *domain.Player, pricer Func) Func {
	return func(name string) int {
		key := fmt.Sprintf("%s:%s:%s", direction, player.ID, name)
		if price, ok := s.cache.Get(key); ok {
			return price
		}
		price := pricer(name)
		s.cache.Add(key, price)
		return price
	}
}

// BuyPricer returns a caching wrapper around the inner buy pricer.
func (s *CachingSource) BuyPricer(player *domain.Player) Func {
	return s.cached("buy", player, s.inner.BuyPricer(player))
}

// SellPricer returns a caching wrapper around the inner sell pricer.
func (s *CachingSource) SellPricer(player *domain.Player) Func {
	return s.cached("sell", player, s.inner.SellPricer(player))
}
