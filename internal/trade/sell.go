package trade

import (
	"context"
	"fmt"

	"github.com/osse101/AdventureBot_Go/internal/domain"
	"github.com/osse101/AdventureBot_Go/internal/event"
	"github.com/osse101/AdventureBot_Go/internal/logger"
	"github.com/osse101/AdventureBot_Go/internal/metrics"
)

// Sell validates and commits a sale batch. With no arguments it returns the
// sellable price listing instead. Both a pending narrative handoff and an
// active progress marker block selling.
func (e *Engine) Sell(ctx context.Context, playerID string, args []string) (*Result, error) {
	log := logger.FromContext(ctx)
	log.Info("Sell called", "player", playerID, "args", args)

	lock := e.locks.GetLock(playerID)
	lock.Lock()
	defer lock.Unlock()

	player, err := e.store.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if msg := e.narrative.PendingSequence(ctx, player); msg != "" {
		metrics.TransactionsRejected.WithLabelValues("sell", "narrative_pending").Inc()
		return rejected(msg), nil
	}
	if player.Progress != "" {
		metrics.TransactionsRejected.WithLabelValues("sell", "progress").Inc()
		return rejected(MsgProgressBlocked), nil
	}

	toValue := e.pricing.SellPricer(player)
	if len(args) == 0 {
		return &Result{Outcome: OutcomeListed, Message: e.sellListing(player, toValue)}, nil
	}

	m, parseReject := e.parseItemMap(args)
	if parseReject != "" {
		metrics.TransactionsRejected.WithLabelValues("sell", "parse").Inc()
		return rejected(parseReject), nil
	}

	// Validation pass. For the "?" sentinel on an overflowing stack we
	// sell the whole overflow (minimum one unit); holdings at or below
	// capacity drop the entry.
	resolved := make(map[string]int)
	var order []string
	proceeds := 0
	for _, name := range m.order {
		item, _ := e.catalog.Lookup(name)
		value := toValue(name)
		if value <= 0 {
			metrics.TransactionsRejected.WithLabelValues("sell", "not_sellable").Inc()
			return rejected(fmt.Sprintf("Item %q cannot be sold.", name)), nil
		}

		held := player.Held(name)
		var count int
		switch q := m.quantities[name]; q.Kind {
		case domain.QuantityFill:
			if held == 0 {
				continue
			}
			count = held
		case domain.QuantityIfUntouched:
			if held < item.MaxCount {
				continue
			}
			count = held - item.MaxCount
			if count < 1 {
				count = 1
			}
		default:
			if q.Count <= 0 {
				metrics.TransactionsRejected.WithLabelValues("sell", "invalid_quantity").Inc()
				return rejected(MsgInvalidQuantity), nil
			}
			if held < q.Count {
				metrics.TransactionsRejected.WithLabelValues("sell", "insufficient_stock").Inc()
				return rejected(MsgInsufficientStock), nil
			}
			count = q.Count
		}

		proceeds += count * value
		resolved[name] = count
		order = append(order, name)
	}

	if len(resolved) == 0 {
		metrics.TransactionsRejected.WithLabelValues("sell", "empty").Inc()
		return rejected(MsgNothingToSell), nil
	}

	// An impaired player fumbles 25% of sells: the queued items are lost
	// through the mutator and no currency changes hands.
	if player.TimerActive(domain.TimerImpaired, e.now()) && e.rnd() < ImpairedDiscardChance {
		return e.commitDiscard(ctx, player, order, resolved)
	}

	// Selling exactly one unit of a sale-trigger item hands the
	// transaction off to the narrative engine instead.
	if len(order) == 1 && resolved[order[0]] == 1 && e.narrative.IsSaleTrigger(order[0]) {
		return e.commitHandoff(ctx, player, order[0])
	}

	// Commit: one logical step over the validated batch.
	messages := []string{fmt.Sprintf("You sold %s for %d money.", formatBatch(order, resolved), proceeds)}
	for _, name := range order {
		player.Warehouse[name] -= resolved[name]
	}
	player.Money += proceeds

	e.achievements.OnTransactionComplete(ctx, player, &messages)

	if err := e.store.CommitPlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("sell persistence: %w", err)
	}

	for name, count := range resolved {
		metrics.ItemsSold.WithLabelValues(name).Add(float64(count))
	}
	e.publish(ctx, event.ItemSold, event.TradePayload{
		PlayerID:   player.ID,
		Items:      resolved,
		MoneyDelta: proceeds,
		Timestamp:  e.now().Unix(),
	})

	log.Info("Sell committed", "player", player.ID, "items", len(resolved), "proceeds", proceeds)
	return &Result{
		Outcome:    OutcomeCommitted,
		Message:    joinMessages(messages),
		Items:      resolved,
		MoneyDelta: proceeds,
	}, nil
}

func (e *Engine) commitDiscard(ctx context.Context, player *domain.Player, order []string, resolved map[string]int) (*Result, error) {
	messages := []string{fmt.Sprintf(
		"%s fumbles in a daze and drops the items meant for sale: %s!",
		player.Username, e.formatNames(order),
	)}
	for _, name := range order {
		hookMsg, err := e.mutator.Lose(ctx, player, name, resolved[name])
		if err != nil {
			return nil, fmt.Errorf("discard for %q: %w", name, err)
		}
		if hookMsg != "" {
			messages = append(messages, hookMsg)
		}
	}

	if err := e.store.CommitPlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("discard persistence: %w", err)
	}

	logger.FromContext(ctx).Info("Impaired sell discarded", "player", player.ID, "items", len(order))
	return &Result{
		Outcome:   OutcomeCommitted,
		Message:   joinMessages(messages),
		Items:     resolved,
		Discarded: true,
	}, nil
}

func (e *Engine) commitHandoff(ctx context.Context, player *domain.Player, itemName string) (*Result, error) {
	opening, err := e.narrative.BeginSequence(ctx, player, itemName)
	if err != nil {
		return nil, fmt.Errorf("narrative handoff for %q: %w", itemName, err)
	}

	// Only the progress marker changed; it must still be persisted before
	// the narrative response goes out.
	if err := e.store.CommitPlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("handoff persistence: %w", err)
	}

	metrics.NarrativeHijacks.Inc()
	e.publish(ctx, event.SaleHijacked, event.TradePayload{
		PlayerID:  player.ID,
		Items:     map[string]int{itemName: 1},
		Timestamp: e.now().Unix(),
	})
	return &Result{Outcome: OutcomeHandedOff, Message: opening}, nil
}

// ForceSell executes a pre-validated sale batch directly, bypassing the
// precondition, sentinel, and hijack stages. The overflow resolver uses it to
// liquidate excess holdings; persistence stays with the enclosing unit of
// work.
func (e *Engine) ForceSell(ctx context.Context, player *domain.Player, items map[string]int) (string, error) {
	toValue := e.pricing.SellPricer(player)

	proceeds := 0
	order := make([]string, 0, len(items))
	for name, count := range items {
		if count <= 0 {
			return "", fmt.Errorf("%w: forced sale of %d %q", domain.ErrInvalidQuantity, count, name)
		}
		if _, ok := e.catalog.Lookup(name); !ok {
			return "", fmt.Errorf("%w: %q in forced sale", domain.ErrItemNotFound, name)
		}
		order = append(order, name)
	}
	// Deterministic message order regardless of map iteration.
	sortByCatalogOrder(e.catalog, order)

	for _, name := range order {
		count := items[name]
		held := player.Held(name)
		if count > held {
			count = held
			items[name] = count
		}
		player.Warehouse[name] -= count
		proceeds += count * toValue(name)
	}
	player.Money += proceeds

	metrics.ForcedSales.Inc()
	for name, count := range items {
		metrics.ItemsSold.WithLabelValues(name).Add(float64(count))
	}
	e.publish(ctx, event.ItemSold, event.TradePayload{
		PlayerID:   player.ID,
		Items:      items,
		MoneyDelta: proceeds,
		Timestamp:  e.now().Unix(),
	})

	logger.FromContext(ctx).Info("Forced sale executed", "player", player.ID, "items", len(items), "proceeds", proceeds)
	return fmt.Sprintf("You sold %s for %d money.", formatBatch(order, items), proceeds), nil
}
