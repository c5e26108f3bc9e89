package trade

import (
	"context"
	"fmt"

	"github.com/osse101/AdventureBot_Go/internal/domain"
	"github.com/osse101/AdventureBot_Go/internal/event"
	"github.com/osse101/AdventureBot_Go/internal/logger"
	"github.com/osse101/AdventureBot_Go/internal/metrics"
)

// Buy validates and commits a purchase batch. With no arguments it returns
// the buyable price listing instead.
//
// A pending narrative handoff blocks buying, but an active progress marker
// does not; the asymmetry with Sell is deliberate.
func (e *Engine) Buy(ctx context.Context, playerID string, args []string) (*Result, error) {
	log := logger.FromContext(ctx)
	log.Info("Buy called", "player", playerID, "args", args)

	lock := e.locks.GetLock(playerID)
	lock.Lock()
	defer lock.Unlock()

	player, err := e.store.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if msg := e.narrative.PendingSequence(ctx, player); msg != "" {
		metrics.TransactionsRejected.WithLabelValues("buy", "narrative_pending").Inc()
		return rejected(msg), nil
	}

	toBid := e.pricing.BuyPricer(player)
	if len(args) == 0 {
		return &Result{Outcome: OutcomeListed, Message: e.buyListing(toBid)}, nil
	}

	m, parseReject := e.parseItemMap(args)
	if parseReject != "" {
		metrics.TransactionsRejected.WithLabelValues("buy", "parse").Inc()
		return rejected(parseReject), nil
	}

	// Validation pass: resolve sentinels, enforce capacity and the running
	// cost against the balance. Nothing is mutated until the whole map
	// validates.
	resolved := make(map[string]int)
	var order []string
	totalCost := 0
	for _, name := range m.order {
		item, _ := e.catalog.Lookup(name)
		bid := toBid(name)
		if bid <= 0 {
			metrics.TransactionsRejected.WithLabelValues("buy", "not_buyable").Inc()
			return rejected(fmt.Sprintf("Item %q cannot be purchased.", name)), nil
		}

		held := player.Held(name)
		var count int
		switch q := m.quantities[name]; q.Kind {
		case domain.QuantityFill:
			if held >= item.MaxCount {
				continue
			}
			count = item.MaxCount - held
		case domain.QuantityIfUntouched:
			if held > 0 {
				continue
			}
			count = 1
		default:
			if q.Count <= 0 {
				metrics.TransactionsRejected.WithLabelValues("buy", "invalid_quantity").Inc()
				return rejected(MsgInvalidQuantity), nil
			}
			if held+q.Count > item.MaxCount {
				metrics.TransactionsRejected.WithLabelValues("buy", "over_capacity").Inc()
				return rejected(MsgOverCapacity), nil
			}
			count = q.Count
		}

		totalCost += count * bid
		if totalCost > player.Money {
			metrics.TransactionsRejected.WithLabelValues("buy", "insufficient_funds").Inc()
			return rejected(MsgInsufficientFunds), nil
		}
		resolved[name] = count
		order = append(order, name)
	}

	if len(resolved) == 0 {
		metrics.TransactionsRejected.WithLabelValues("buy", "empty").Inc()
		return rejected(MsgNothingToBuy), nil
	}

	// Commit: the whole batch applies as one logical step. Gains go
	// through the mutator so cumulative counters, the recent list, and
	// per-item hooks all fire.
	messages := []string{fmt.Sprintf("You bought %s for %d money.", formatBatch(order, resolved), totalCost)}
	for _, name := range order {
		hookMsg, err := e.mutator.Gain(ctx, player, name, resolved[name])
		if err != nil {
			return nil, fmt.Errorf("buy commit for %q: %w", name, err)
		}
		if hookMsg != "" {
			messages = append(messages, hookMsg)
		}
	}
	player.Money -= totalCost

	e.achievements.OnTransactionComplete(ctx, player, &messages)

	if err := e.store.CommitPlayer(ctx, player); err != nil {
		// The composed message must not reach the player when the
		// commit failed; state and response would diverge.
		return nil, fmt.Errorf("buy persistence: %w", err)
	}

	for name, count := range resolved {
		metrics.ItemsBought.WithLabelValues(name).Add(float64(count))
	}
	e.publish(ctx, event.ItemBought, event.TradePayload{
		PlayerID:   player.ID,
		Items:      resolved,
		MoneyDelta: -totalCost,
		Timestamp:  e.now().Unix(),
	})

	log.Info("Buy committed", "player", player.ID, "items", len(resolved), "cost", totalCost)
	return &Result{
		Outcome:    OutcomeCommitted,
		Message:    joinMessages(messages),
		Items:      resolved,
		MoneyDelta: -totalCost,
	}, nil
}

func (e *Engine) publish(ctx context.Context, eventType event.Type, payload interface{}) {
	if e.bus == nil {
		return
	}
	if err := e.bus.Publish(ctx, event.Event{Version: "1.0", Type: eventType, Payload: payload}); err != nil {
		logger.FromContext(ctx).Warn("Event publish failed", "type", eventType, "error", err)
	}
}

func joinMessages(messages []string) string {
	out := ""
	for i, msg := range messages {
		if i > 0 {
			out += "\n"
		}
		out += msg
	}
	return out
}
