package achievement

import (
	"context"

	"github.com/osse101/AdventureBot_Go/internal/domain"
	"github.com/osse101/AdventureBot_Go/internal/logger"
)

// Checker is invoked with the resulting player state after a committed
// transaction. Implementations may append additional messages; they must not
// mutate anything but the accumulator and the player's achievement flags.
type Checker interface {
	OnTransactionComplete(ctx context.Context, player *domain.Player, messages *[]string)
}

// Rule describes one achievement: a predicate over the player snapshot and
// the message announced when it first passes.
type Rule struct {
	Key     string
	Check   func(player *domain.Player) bool
	Message string
}

// Service evaluates achievement rules against transaction results.
type Service struct {
	rules []Rule
}

// NewService creates a Service with the given rules.
func NewService(rules []Rule) *Service {
	return &Service{rules: rules}
}

// OnTransactionComplete marks newly earned achievements and appends their
// announcements to the accumulator.
func (s *Service) OnTransactionComplete(ctx context.Context, player *domain.Player, messages *[]string) {
	for _, rule := range s.rules {
		if player.Achievements[rule.Key] {
			continue
		}
		if !rule.Check(player) {
			continue
		}
		if player.Achievements == nil {
			player.Achievements = make(map[string]bool)
		}
		player.Achievements[rule.Key] = true
		if rule.Message != "" {
			*messages = append(*messages, rule.Message)
		}
		logger.FromContext(ctx).Info("Achievement earned", "player", player.ID, "achievement", rule.Key)
	}
}

// DefaultRules returns the built-in wealth and collection milestones.
func DefaultRules() []Rule {
	return []Rule{
		{
			Key:     "first_fortune",
			Check:   func(p *domain.Player) bool { return p.Money >= 1000 },
			Message: "Achievement earned: First Fortune (1000 money)!",
		},
		{
			Key:     "packrat",
			Check:   func(p *domain.Player) bool { return len(p.Warehouse) >= 20 },
			Message: "Achievement earned: Packrat (20 distinct items)!",
		},
		{
			Key: "collector",
			Check: func(p *domain.Player) bool {
				total := 0
				for _, n := range p.Gains {
					total += n
				}
				return total >= 100
			},
			Message: "Achievement earned: Collector (100 items obtained)!",
		},
	}
}
