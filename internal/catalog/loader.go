package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/osse101/AdventureBot_Go/internal/domain"
)

// Config represents the JSON configuration for the item catalog.
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`
	Items       []Def  `json:"items"`
}

// Def is a single item definition in the JSON config. Behavior that cannot
// be expressed as data (gain/lose hooks, drop conditions) is referenced by
// name and resolved against the hook and condition registries at load time.
type Def struct {
	Name        string `json:"name"`
	Rarity      string `json:"rarity"`
	Description string `json:"description"`
	MaxCount    int    `json:"max_count,omitempty"`
	Value       int    `json:"value,omitempty"`
	Bid         int    `json:"bid,omitempty"`
	Lottery     *int   `json:"lottery,omitempty"`
	Fishing     int    `json:"fishing,omitempty"`
	Plot        bool   `json:"plot,omitempty"`
	OnGain      string `json:"on_gain,omitempty"`
	OnLose      string `json:"on_lose,omitempty"`
	Condition   string `json:"condition,omitempty"`
}

// Loader turns a JSON item config into a populated catalog.
type Loader struct {
	hooks      map[string]domain.ItemHook
	conditions map[string]domain.Condition
}

// NewLoader creates a Loader with empty hook and condition registries.
func NewLoader() *Loader {
	return &Loader{
		hooks:      make(map[string]domain.ItemHook),
		conditions: make(map[string]domain.Condition),
	}
}

// RegisterHook makes a named hook available to item definitions.
func (l *Loader) RegisterHook(name string, hook domain.ItemHook) {
	l.hooks[name] = hook
}

// RegisterCondition makes a named drop condition available to item definitions.
func (l *Loader) RegisterCondition(name string, cond domain.Condition) {
	l.conditions[name] = cond
}

// Load reads and parses an item config file.
func (l *Loader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read item config: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse item config: %w", err)
	}
	return &config, nil
}

// Build validates the config and registers every definition into a new
// catalog. Any inconsistency is fatal: a bad catalog means a misconfigured
// deployment, not a user error.
func (l *Loader) Build(config *Config) (*Catalog, error) {
	if config == nil || len(config.Items) == 0 {
		return nil, fmt.Errorf("%w: no items defined", domain.ErrInvalidInput)
	}

	c := New()
	for i := range config.Items {
		def := &config.Items[i]
		item, err := l.buildItem(def)
		if err != nil {
			return nil, err
		}
		if err := c.Register(item); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (l *Loader) buildItem(def *Def) (*domain.Item, error) {
	rarity, ok := domain.ParseRarity(def.Rarity)
	if !ok {
		return nil, fmt.Errorf("%w: item %q has unknown rarity %q", domain.ErrInvalidInput, def.Name, def.Rarity)
	}
	if def.Value < 0 || def.Bid < 0 || def.MaxCount < 0 || def.Fishing < 0 {
		return nil, fmt.Errorf("%w: item %q has negative numeric field", domain.ErrInvalidInput, def.Name)
	}

	item := &domain.Item{
		Name:        def.Name,
		Description: def.Description,
		Rarity:      rarity,
		MaxCount:    def.MaxCount,
		Value:       def.Value,
		Bid:         def.Bid,
		Lottery:     def.Lottery,
		Fishing:     def.Fishing,
		Plot:        def.Plot,
	}

	if def.OnGain != "" {
		hook, ok := l.hooks[def.OnGain]
		if !ok {
			return nil, fmt.Errorf("%w: item %q references unknown hook %q", domain.ErrInvalidInput, def.Name, def.OnGain)
		}
		item.OnGain = hook
	}
	if def.OnLose != "" {
		hook, ok := l.hooks[def.OnLose]
		if !ok {
			return nil, fmt.Errorf("%w: item %q references unknown hook %q", domain.ErrInvalidInput, def.Name, def.OnLose)
		}
		item.OnLose = hook
	}
	if def.Condition != "" {
		cond, ok := l.conditions[def.Condition]
		if !ok {
			return nil, fmt.Errorf("%w: item %q references unknown condition %q", domain.ErrInvalidInput, def.Name, def.Condition)
		}
		item.Condition = cond
	}
	return item, nil
}

// LoadCatalog is the common load-and-build path used at startup.
func (l *Loader) LoadCatalog(path string) (*Catalog, error) {
	config, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	return l.Build(config)
}
