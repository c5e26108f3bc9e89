package event

import (
	"context"
	"fmt"
	"sync"
)

// Type represents the type of an event
type Type string

// Common event types
const (
	ItemGained   Type = "item.gained"
	ItemLost     Type = "item.lost"
	ItemBought   Type = "item.bought"
	ItemSold     Type = "item.sold"
	DropAwarded  Type = "drop.awarded"
	SaleHijacked Type = "sale.hijacked"
)

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// TradePayload is the typed payload for buy/sell events.
type TradePayload struct {
	PlayerID   string         `json:"player_id"`
	Items      map[string]int `json:"items"`
	MoneyDelta int            `json:"money_delta"`
	Timestamp  int64          `json:"timestamp"`
}

// DropPayload is the typed payload for random drop events.
type DropPayload struct {
	PlayerID  string `json:"player_id"`
	ItemName  string `json:"item_name"`
	Rarity    string `json:"rarity"`
	Timestamp int64  `json:"timestamp"`
}

// Handler processes a published event.
type Handler func(ctx context.Context, event Event) error

// Bus publishes events to subscribers.
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the event Bus. Handlers run
// synchronously on the publishing goroutine.
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: make(map[Type][]Handler)}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()
	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d handler(s) failed for %s: %v", len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe registers a handler for an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
