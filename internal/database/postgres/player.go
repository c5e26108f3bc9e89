// Package postgres implements the persistence interfaces on top of a pgx
// connection pool.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/AdventureBot_Go/internal/domain"
)

// PlayerRepository implements the player repository for PostgreSQL
type PlayerRepository struct {
	db *pgxpool.Pool
}

// NewPlayerRepository creates a new PlayerRepository
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

const playerColumns = `player_id, username, warehouse, gains, recent, money, progress, timers, achievements`

// GetPlayer loads a player snapshot by internal ID.
func (r *PlayerRepository) GetPlayer(ctx context.Context, id string) (*domain.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE player_id = $1`
	return r.scanPlayer(r.db.QueryRow(ctx, query, id), id)
}

// GetPlayerByUsername loads a player snapshot by username.
func (r *PlayerRepository) GetPlayerByUsername(ctx context.Context, username string) (*domain.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE username = $1`
	return r.scanPlayer(r.db.QueryRow(ctx, query, username), username)
}

// CreatePlayer inserts a fresh player record.
func (r *PlayerRepository) CreatePlayer(ctx context.Context, player *domain.Player) error {
	warehouse, gains, recent, timers, achievements, err := encodePlayer(player)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO players (player_id, username, warehouse, gains, recent, money, progress, timers, achievements, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err = r.db.Exec(ctx, query,
		player.ID, player.Username, warehouse, gains, recent,
		player.Money, player.Progress, timers, achievements)
	if err != nil {
		return fmt.Errorf("failed to insert player: %w", err)
	}
	return nil
}

// CommitPlayer writes a mutated snapshot back to the database.
func (r *PlayerRepository) CommitPlayer(ctx context.Context, player *domain.Player) error {
	warehouse, gains, recent, timers, achievements, err := encodePlayer(player)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCommitFailed, err)
	}

	query := `
		UPDATE players
		SET username = $2, warehouse = $3, gains = $4, recent = $5,
		    money = $6, progress = $7, timers = $8, achievements = $9,
		    updated_at = NOW()
		WHERE player_id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		player.ID, player.Username, warehouse, gains, recent,
		player.Money, player.Progress, timers, achievements)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCommitFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, player.ID)
	}
	return nil
}

func (r *PlayerRepository) scanPlayer(row pgx.Row, key string) (*domain.Player, error) {
	var (
		player                                      domain.Player
		warehouse, gains, recent, timers, achieved []byte
	)
	err := row.Scan(&player.ID, &player.Username, &warehouse, &gains, &recent,
		&player.Money, &player.Progress, &timers, &achieved)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, key)
		}
		return nil, fmt.Errorf("failed to scan player: %w", err)
	}

	if err := json.Unmarshal(warehouse, &player.Warehouse); err != nil {
		return nil, fmt.Errorf("failed to decode warehouse: %w", err)
	}
	if err := json.Unmarshal(gains, &player.Gains); err != nil {
		return nil, fmt.Errorf("failed to decode gains: %w", err)
	}
	if err := json.Unmarshal(recent, &player.Recent); err != nil {
		return nil, fmt.Errorf("failed to decode recent list: %w", err)
	}
	if err := json.Unmarshal(timers, &player.Timers); err != nil {
		return nil, fmt.Errorf("failed to decode timers: %w", err)
	}
	if err := json.Unmarshal(achieved, &player.Achievements); err != nil {
		return nil, fmt.Errorf("failed to decode achievements: %w", err)
	}

	if player.Warehouse == nil {
		player.Warehouse = make(map[string]int)
	}
	if player.Gains == nil {
		player.Gains = make(map[string]int)
	}
	if player.Timers == nil {
		player.Timers = make(map[string]time.Time)
	}
	if player.Achievements == nil {
		player.Achievements = make(map[string]bool)
	}
	return &player, nil
}

func encodePlayer(player *domain.Player) (warehouse, gains, recent, timers, achievements []byte, err error) {
	if warehouse, err = json.Marshal(player.Warehouse); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("failed to encode warehouse: %w", err)
	}
	if gains, err = json.Marshal(player.Gains); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("failed to encode gains: %w", err)
	}
	if recent, err = json.Marshal(player.Recent); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("failed to encode recent list: %w", err)
	}
	if timers, err = json.Marshal(player.Timers); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("failed to encode timers: %w", err)
	}
	if achievements, err = json.Marshal(player.Achievements); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("failed to encode achievements: %w", err)
	}
	return warehouse, gains, recent, timers, achievements, nil
}
