package trade

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/osse101/AdventureBot_Go/internal/achievement"
	"github.com/osse101/AdventureBot_Go/internal/catalog"
	"github.com/osse101/AdventureBot_Go/internal/concurrency"
	"github.com/osse101/AdventureBot_Go/internal/event"
	"github.com/osse101/AdventureBot_Go/internal/inventory"
	"github.com/osse101/AdventureBot_Go/internal/narrative"
	"github.com/osse101/AdventureBot_Go/internal/pricing"
	"github.com/osse101/AdventureBot_Go/internal/repository"
	"github.com/osse101/AdventureBot_Go/internal/utils"
)

// ImpairedDiscardChance is the probability that an impaired player fumbles a
// sell, discarding the queued items instead (25%).
const ImpairedDiscardChance = 0.25

// Outcome is the closed set of terminal states a transaction can reach.
type Outcome int

const (
	// OutcomeCommitted means the whole validated batch was applied and
	// persisted.
	OutcomeCommitted Outcome = iota

	// OutcomeRejected means validation failed; no state changed.
	OutcomeRejected

	// OutcomeHandedOff means a sale was hijacked into a narrative
	// sequence; no currency changed hands.
	OutcomeHandedOff

	// OutcomeListed means a zero-argument invocation produced a price
	// listing instead of a transaction.
	OutcomeListed
)

// Result describes how a buy/sell invocation terminated.
type Result struct {
	Outcome Outcome

	// Message is the composed user-facing response.
	Message string

	// Items holds the resolved per-item quantities of a committed batch.
	Items map[string]int

	// MoneyDelta is the signed balance change (negative for buys).
	MoneyDelta int

	// Discarded reports that an impaired sell lost the items instead of
	// selling them.
	Discarded bool
}

func rejected(message string) *Result {
	return &Result{Outcome: OutcomeRejected, Message: message}
}

// Engine validates and commits multi-item buy/sell operations against
// balance and capacity constraints. Validation always completes before any
// mutation begins, so a rejected transaction never leaves partial state. The
// caller serializes commands per player; the engine itself holds no locks.
type Engine struct {
	catalog      *catalog.Catalog
	suggester    *catalog.Suggester
	mutator      *inventory.Mutator
	pricing      pricing.Source
	narrative    narrative.Collaborator
	achievements achievement.Checker
	store        repository.Player
	bus          event.Bus
	locks        *concurrency.LockManager

	rnd func() float64
	now func() time.Time
}

// NewEngine wires a transaction engine. bus may be nil when no event
// consumers are registered. locks serializes commands per player; sharing
// one manager with the other services keeps a player's warehouse/money pair
// free of concurrent in-flight transactions.
func NewEngine(
	c *catalog.Catalog,
	mutator *inventory.Mutator,
	pricingSource pricing.Source,
	narrativeCollab narrative.Collaborator,
	achievements achievement.Checker,
	store repository.Player,
	bus event.Bus,
	locks *concurrency.LockManager,
) *Engine {
	return &Engine{
		catalog:      c,
		suggester:    catalog.NewSuggester(c),
		mutator:      mutator,
		pricing:      pricingSource,
		narrative:    narrativeCollab,
		achievements: achievements,
		store:        store,
		bus:          bus,
		locks:        locks,
		rnd:          utils.RandomFloat,
		now:          time.Now,
	}
}

// User-facing rejection messages.
const (
	MsgInvalidQuantity   = "Invalid quantity."
	MsgInsufficientFunds = "Insufficient funds."
	MsgOverCapacity      = "Quantity exceeds the holding limit."
	MsgInsufficientStock = "Not enough of that item left to sell."
	MsgNothingToBuy      = "You didn't buy anything."
	MsgNothingToSell     = "You didn't sell anything."
	MsgProgressBlocked   = "You have an unfinished story. Continue it before selling."
)

// formatBatch renders "name ×2, name ×1" in batch order.
func formatBatch(order []string, counts map[string]int) string {
	parts := make([]string, 0, len(order))
	for _, name := range order {
		parts = append(parts, fmt.Sprintf("%s ×%d", name, counts[name]))
	}
	return strings.Join(parts, ", ")
}

// formatNames renders names with their rarity tags, sorted by ascending
// tier.
func (e *Engine) formatNames(names []string) string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, _ := e.catalog.Lookup(sorted[i])
		b, _ := e.catalog.Lookup(sorted[j])
		return a.Rarity < b.Rarity
	})
	parts := make([]string, 0, len(sorted))
	for _, name := range sorted {
		item, _ := e.catalog.Lookup(name)
		parts = append(parts, fmt.Sprintf("%s (%s)", name, item.Rarity))
	}
	return strings.Join(parts, ", ")
}
