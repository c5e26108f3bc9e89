package narrative

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/AdventureBot_Go/internal/domain"
	"github.com/osse101/AdventureBot_Go/internal/logger"
)

// Collaborator is the boundary to the narrative state machine. The trade
// engine consults it before and during sell transactions; the full phase
// engine lives outside this core.
type Collaborator interface {
	// PendingSequence returns a directive message when the player has an
	// unresolved narrative sequence blocking trade, or "" otherwise.
	PendingSequence(ctx context.Context, player *domain.Player) string

	// IsSaleTrigger reports whether selling exactly one unit of the item
	// starts a narrative sequence instead of a normal sale.
	IsSaleTrigger(itemName string) bool

	// BeginSequence sets the player's progress marker and returns the
	// sequence's opening message.
	BeginSequence(ctx context.Context, player *domain.Player, itemName string) (string, error)
}

// SaleTrigger binds an item name to the narrative sequence its sale starts.
type SaleTrigger struct {
	Sequence string
	Opening  string
}

// Registry is an in-memory Collaborator for deployments without an external
// narrative engine, and for tests. Pending sequences are distinct from the
// progress marker: the marker lives on the player record and only blocks
// sells, while a pending sequence (a handoff the narrative engine still owes
// a response for) blocks trade in both directions.
type Registry struct {
	mu       sync.RWMutex
	triggers map[string]SaleTrigger
	pending  map[string]string
}

// NewRegistry creates an empty narrative registry.
func NewRegistry() *Registry {
	return &Registry{
		triggers: make(map[string]SaleTrigger),
		pending:  make(map[string]string),
	}
}

// RegisterSaleTrigger marks an item as starting a narrative sequence when
// sold singly.
func (r *Registry) RegisterSaleTrigger(itemName string, trigger SaleTrigger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.triggers[itemName] = trigger
}

// SetPending records an unresolved narrative handoff for a player. An empty
// message clears it.
func (r *Registry) SetPending(playerID, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if message == "" {
		delete(r.pending, playerID)
		return
	}
	r.pending[playerID] = message
}

// PendingSequence implements Collaborator.
func (r *Registry) PendingSequence(_ context.Context, player *domain.Player) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pending[player.ID]
}

// IsSaleTrigger implements Collaborator.
func (r *Registry) IsSaleTrigger(itemName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.triggers[itemName]
	return ok
}

// BeginSequence implements Collaborator.
func (r *Registry) BeginSequence(ctx context.Context, player *domain.Player, itemName string) (string, error) {
	r.mu.RLock()
	trigger, ok := r.triggers[itemName]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: no sale trigger for %q", domain.ErrInvalidInput, itemName)
	}

	player.Progress = trigger.Sequence
	logger.FromContext(ctx).Info("Narrative sequence started",
		"player", player.ID, "item", itemName, "sequence", trigger.Sequence)
	return trigger.Opening, nil
}
