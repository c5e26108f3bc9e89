package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/osse101/AdventureBot_Go/internal/domain"
)

// MemoryStore is an in-memory Player store for local runs and tests. Commits
// deep-copy the snapshot so later in-memory mutations don't leak into the
// "persisted" state, mirroring a real store's semantics.
type MemoryStore struct {
	mu      sync.RWMutex
	players map[string]*domain.Player
	byName  map[string]string

	// FailCommits makes CommitPlayer fail, for exercising the
	// persistence-failure path in tests.
	FailCommits bool
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		players: make(map[string]*domain.Player),
		byName:  make(map[string]string),
	}
}

func clonePlayer(p *domain.Player) (*domain.Player, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode player: %w", err)
	}
	var out domain.Player
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode player: %w", err)
	}
	if out.Warehouse == nil {
		out.Warehouse = make(map[string]int)
	}
	if out.Gains == nil {
		out.Gains = make(map[string]int)
	}
	return &out, nil
}

// GetPlayer implements Player.
func (s *MemoryStore) GetPlayer(ctx context.Context, id string) (*domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, id)
	}
	return clonePlayer(player)
}

// GetPlayerByUsername implements Player.
func (s *MemoryStore) GetPlayerByUsername(ctx context.Context, username string) (*domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byName[username]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, username)
	}
	return clonePlayer(s.players[id])
}

// CreatePlayer implements Player.
func (s *MemoryStore) CreatePlayer(ctx context.Context, player *domain.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.players[player.ID]; exists {
		return fmt.Errorf("%w: player %s already exists", domain.ErrInvalidInput, player.ID)
	}
	copied, err := clonePlayer(player)
	if err != nil {
		return err
	}
	s.players[player.ID] = copied
	s.byName[player.Username] = player.ID
	return nil
}

// CommitPlayer implements Player.
func (s *MemoryStore) CommitPlayer(ctx context.Context, player *domain.Player) error {
	if s.FailCommits {
		return fmt.Errorf("%w: memory store configured to fail", domain.ErrCommitFailed)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.players[player.ID]; !exists {
		return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, player.ID)
	}
	copied, err := clonePlayer(player)
	if err != nil {
		return err
	}
	s.players[player.ID] = copied
	s.byName[player.Username] = player.ID
	return nil
}
