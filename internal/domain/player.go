package domain

import "time"

// Timer keys for player status effects. A timer is active while its expiry
// lies in the future.
const (
	// TimerShop marks the periodic forced-sale allowance as used. While
	// active, overflow resolution clamps instead of auto-selling.
	TimerShop = "shop"

	// TimerImpaired marks the player as impaired; sells have a 25% chance
	// of discarding the queued items instead.
	TimerImpaired = "impaired"
)

// MaxRecentItems bounds the recently-obtained list.
const MaxRecentItems = 10

// Player is the live snapshot of a player record. The persistent store owns
// durability; this core mutates the snapshot in place and signals the store
// to commit after a successful transaction.
type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`

	// Warehouse maps item name to currently held count. An absent key
	// means zero; counts never go negative.
	Warehouse map[string]int `json:"warehouse"`

	// Gains maps item name to the cumulative ever-obtained count. It is
	// monotonically non-decreasing.
	Gains map[string]int `json:"gains"`

	// Recent holds up to MaxRecentItems distinct non-SP item names,
	// most-recently-gained first.
	Recent []string `json:"recent"`

	// Money is the non-negative currency balance.
	Money int `json:"money"`

	// Progress marks an active narrative sequence. While set, ordinary
	// sell commands are blocked.
	Progress string `json:"progress,omitempty"`

	// Timers maps status keys to their expiry times.
	Timers map[string]time.Time `json:"timers,omitempty"`

	// Achievements maps achievement keys to their unlocked state.
	Achievements map[string]bool `json:"achievements,omitempty"`
}

// NewPlayer creates an empty player snapshot.
func NewPlayer(id, username string) *Player {
	return &Player{
		ID:           id,
		Username:     username,
		Warehouse:    make(map[string]int),
		Gains:        make(map[string]int),
		Money:        0,
		Timers:       make(map[string]time.Time),
		Achievements: make(map[string]bool),
	}
}

// TimerActive reports whether the named status timer is still running.
func (p *Player) TimerActive(name string, now time.Time) bool {
	expiry, ok := p.Timers[name]
	return ok && expiry.After(now)
}

// SetTimer starts or extends the named status timer.
func (p *Player) SetTimer(name string, expiry time.Time) {
	if p.Timers == nil {
		p.Timers = make(map[string]time.Time)
	}
	p.Timers[name] = expiry
}

// Held returns the currently held count for an item name.
func (p *Player) Held(name string) int { return p.Warehouse[name] }
