package player

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/osse101/AdventureBot_Go/internal/catalog"
	"github.com/osse101/AdventureBot_Go/internal/concurrency"
	"github.com/osse101/AdventureBot_Go/internal/domain"
	"github.com/osse101/AdventureBot_Go/internal/event"
	"github.com/osse101/AdventureBot_Go/internal/inventory"
	"github.com/osse101/AdventureBot_Go/internal/logger"
	"github.com/osse101/AdventureBot_Go/internal/loot"
	"github.com/osse101/AdventureBot_Go/internal/metrics"
	"github.com/osse101/AdventureBot_Go/internal/pricing"
	"github.com/osse101/AdventureBot_Go/internal/repository"
)

// Service defines the player-facing operations outside of buy/sell: direct
// quantity changes from non-trade sources, random drops, and catalog views.
type Service interface {
	Register(ctx context.Context, username string) (*domain.Player, error)
	Get(ctx context.Context, playerID string) (*domain.Player, error)
	GetByUsername(ctx context.Context, username string) (*domain.Player, error)
	GainItem(ctx context.Context, playerID, itemName string, count int) (string, error)
	LoseItem(ctx context.Context, playerID, itemName string, count int) (string, error)
	Drop(ctx context.Context, playerID string) (string, error)
	Fish(ctx context.Context, playerID string) (string, error)
	Overview(ctx context.Context, playerID string) (string, error)
	ItemDetail(ctx context.Context, playerID, itemName string) (string, error)
}

type service struct {
	catalog     *catalog.Catalog
	mutator     *inventory.Mutator
	distributor *loot.Distributor
	overflow    *inventory.OverflowResolver
	pricing     pricing.Source
	store       repository.Player
	bus         event.Bus
	locks       *concurrency.LockManager
}

// NewService creates a player service. The lock manager is shared with the
// trade engine so all commands for one player serialize on the same mutex.
func NewService(
	c *catalog.Catalog,
	mutator *inventory.Mutator,
	distributor *loot.Distributor,
	overflow *inventory.OverflowResolver,
	pricingSource pricing.Source,
	store repository.Player,
	bus event.Bus,
	locks *concurrency.LockManager,
) Service {
	return &service{
		catalog:     c,
		mutator:     mutator,
		distributor: distributor,
		overflow:    overflow,
		pricing:     pricingSource,
		store:       store,
		bus:         bus,
		locks:       locks,
	}
}

func (s *service) Register(ctx context.Context, username string) (*domain.Player, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: empty username", domain.ErrInvalidInput)
	}
	player := domain.NewPlayer(uuid.NewString(), username)
	if err := s.store.CreatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to register player: %w", err)
	}
	logger.FromContext(ctx).Info("Player registered", "player", player.ID, "username", username)
	return player, nil
}

func (s *service) Get(ctx context.Context, playerID string) (*domain.Player, error) {
	return s.store.GetPlayer(ctx, playerID)
}

func (s *service) GetByUsername(ctx context.Context, username string) (*domain.Player, error) {
	return s.store.GetPlayerByUsername(ctx, username)
}

// GainItem applies a gain from a non-trade source (quest reward, admin
// grant) and persists the result.
func (s *service) GainItem(ctx context.Context, playerID, itemName string, count int) (string, error) {
	lock := s.locks.GetLock(playerID)
	lock.Lock()
	defer lock.Unlock()

	player, err := s.store.GetPlayer(ctx, playerID)
	if err != nil {
		return "", err
	}

	hookMsg, err := s.mutator.Gain(ctx, player, itemName, count)
	if err != nil {
		return "", err
	}
	if err := s.store.CommitPlayer(ctx, player); err != nil {
		return "", fmt.Errorf("gain persistence: %w", err)
	}

	s.publish(ctx, event.ItemGained, event.TradePayload{
		PlayerID: player.ID, Items: map[string]int{itemName: count},
	})

	msg := fmt.Sprintf("You received %s ×%d.", itemName, count)
	if hookMsg != "" {
		msg += "\n" + hookMsg
	}
	return msg, nil
}

// LoseItem applies a loss from a non-trade source and persists the result.
func (s *service) LoseItem(ctx context.Context, playerID, itemName string, count int) (string, error) {
	lock := s.locks.GetLock(playerID)
	lock.Lock()
	defer lock.Unlock()

	player, err := s.store.GetPlayer(ctx, playerID)
	if err != nil {
		return "", err
	}

	hookMsg, err := s.mutator.Lose(ctx, player, itemName, count)
	if err != nil {
		return "", err
	}
	if err := s.store.CommitPlayer(ctx, player); err != nil {
		return "", fmt.Errorf("lose persistence: %w", err)
	}

	s.publish(ctx, event.ItemLost, event.TradePayload{
		PlayerID: player.ID, Items: map[string]int{itemName: count},
	})

	msg := fmt.Sprintf("You lost %s ×%d.", itemName, count)
	if hookMsg != "" {
		msg += "\n" + hookMsg
	}
	return msg, nil
}

// Drop awards one random item: a rarity tier is drawn by the fixed weights,
// one eligible item is picked from its bucket, and overflow for that item is
// resolved opportunistically before the snapshot is persisted.
func (s *service) Drop(ctx context.Context, playerID string) (string, error) {
	return s.award(ctx, playerID, func(player *domain.Player) (*domain.Item, error) {
		return s.distributor.Draw(ctx, s.catalog, player, true)
	})
}

// Fish awards one item over the fishing drop channel.
func (s *service) Fish(ctx context.Context, playerID string) (string, error) {
	return s.award(ctx, playerID, func(player *domain.Player) (*domain.Item, error) {
		return s.distributor.PickFishing(ctx, s.catalog.Items(), player)
	})
}

func (s *service) award(ctx context.Context, playerID string, draw func(*domain.Player) (*domain.Item, error)) (string, error) {
	lock := s.locks.GetLock(playerID)
	lock.Lock()
	defer lock.Unlock()

	player, err := s.store.GetPlayer(ctx, playerID)
	if err != nil {
		return "", err
	}

	item, err := draw(player)
	if err != nil {
		if strings.Contains(err.Error(), domain.ErrMsgNoEligibleItems) {
			// Recoverable no-drop outcome.
			return "Nothing dropped this time.", nil
		}
		return "", err
	}

	messages := []string{fmt.Sprintf("You obtained %s (%s)!", item.Name, item.Rarity)}
	hookMsg, err := s.mutator.Gain(ctx, player, item.Name, 1)
	if err != nil {
		return "", err
	}
	if hookMsg != "" {
		messages = append(messages, hookMsg)
	}

	overflowMsg, err := s.overflow.Resolve(ctx, player, item.Name)
	if err != nil {
		return "", fmt.Errorf("overflow resolution: %w", err)
	}
	if overflowMsg != "" {
		messages = append(messages, overflowMsg)
	}

	if err := s.store.CommitPlayer(ctx, player); err != nil {
		return "", fmt.Errorf("drop persistence: %w", err)
	}

	metrics.DropsAwarded.WithLabelValues(item.Rarity.String()).Inc()
	s.publish(ctx, event.DropAwarded, event.DropPayload{
		PlayerID: player.ID, ItemName: item.Name, Rarity: item.Rarity.String(),
	})

	return strings.Join(messages, "\n"), nil
}

func (s *service) publish(ctx context.Context, eventType event.Type, payload interface{}) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, event.Event{Version: "1.0", Type: eventType, Payload: payload}); err != nil {
		logger.FromContext(ctx).Warn("Event publish failed", "type", eventType, "error", err)
	}
}
