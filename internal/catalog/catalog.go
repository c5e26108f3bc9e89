package catalog

import (
	"fmt"

	"github.com/osse101/AdventureBot_Go/internal/domain"
)

// Catalog is the static registry of item definitions, partitioned by rarity
// tier. It is populated once at startup and immutable afterwards; there is no
// removal operation.
type Catalog struct {
	byName  map[string]*domain.Item
	ordered []*domain.Item
	buckets map[domain.Rarity][]*domain.Item
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		byName:  make(map[string]*domain.Item),
		buckets: make(map[domain.Rarity][]*domain.Item),
	}
}

// Register adds an item to the flat list and its rarity bucket, filling the
// MaxCount default when unset. A duplicate name is a programming error and
// fatal at startup, never a runtime condition.
func (c *Catalog) Register(item *domain.Item) error {
	if item.Name == "" {
		return fmt.Errorf("%w: item has no name", domain.ErrInvalidInput)
	}
	if _, exists := c.byName[item.Name]; exists {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateItem, item.Name)
	}
	if item.MaxCount == 0 {
		item.MaxCount = domain.DefaultMaxCount
	}
	if item.MaxCount < 0 {
		return fmt.Errorf("%w: item %q has negative max count", domain.ErrInvalidInput, item.Name)
	}
	c.byName[item.Name] = item
	c.ordered = append(c.ordered, item)
	c.buckets[item.Rarity] = append(c.buckets[item.Rarity], item)
	return nil
}

// MustRegister registers an item and panics on error. Intended for
// code-defined items wired at process start.
func (c *Catalog) MustRegister(item *domain.Item) {
	if err := c.Register(item); err != nil {
		panic(err)
	}
}

// Lookup returns the item registered under name.
func (c *Catalog) Lookup(name string) (*domain.Item, bool) {
	item, ok := c.byName[name]
	return item, ok
}

// Bucket returns the items of a rarity tier in registration order.
func (c *Catalog) Bucket(r domain.Rarity) []*domain.Item {
	return c.buckets[r]
}

// Items returns all registered items in registration order.
func (c *Catalog) Items() []*domain.Item {
	return c.ordered
}

// Len returns the number of registered items.
func (c *Catalog) Len() int { return len(c.ordered) }

// Names returns all registered item names in registration order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.ordered))
	for _, item := range c.ordered {
		names = append(names, item.Name)
	}
	return names
}
