package repository

import (
	"context"

	"github.com/osse101/AdventureBot_Go/internal/domain"
)

// Player defines the interface for player-record persistence. The engine
// mutates a live snapshot and calls Commit to signal "apply now"; it never
// initiates persistence on its own schedule.
type Player interface {
	// GetPlayer loads a snapshot by internal ID.
	// Returns domain.ErrPlayerNotFound when no record exists.
	GetPlayer(ctx context.Context, id string) (*domain.Player, error)

	// GetPlayerByUsername loads a snapshot by username.
	GetPlayerByUsername(ctx context.Context, username string) (*domain.Player, error)

	// CreatePlayer stores a fresh snapshot.
	CreatePlayer(ctx context.Context, player *domain.Player) error

	// CommitPlayer durably writes a mutated snapshot. A failure here is
	// fatal to the enclosing operation and must never be swallowed.
	CommitPlayer(ctx context.Context, player *domain.Player) error
}
