package main

import (
	"github.com/osse101/AdventureBot_Go/internal/catalog"
	"github.com/osse101/AdventureBot_Go/internal/domain"
	"github.com/osse101/AdventureBot_Go/internal/narrative"
)

// loadContent builds the item catalog and the narrative registry. Hooks and
// drop conditions referenced from the item config are registered here; the
// config file only carries their names.
func loadContent(itemsPath string) (*catalog.Catalog, *narrative.Registry, error) {
	loader := catalog.NewLoader()

	loader.RegisterHook("glow", domain.HookFunc(func(_ *domain.Player) string {
		return "It gives off a faint glow in your warehouse."
	}))
	loader.RegisterHook("crumble", domain.HookFunc(func(_ *domain.Player) string {
		return "It crumbles a little as it leaves your hands."
	}))

	// The world seed only drops once the player has started a story.
	loader.RegisterCondition("story_started", func(p *domain.Player, _ bool) bool {
		return p.Progress != ""
	})
	// Dragon scales avoid the freshly registered.
	loader.RegisterCondition("seasoned", func(p *domain.Player, _ bool) bool {
		return len(p.Gains) >= 5
	})

	cat, err := loader.LoadCatalog(itemsPath)
	if err != nil {
		return nil, nil, err
	}

	registry := narrative.NewRegistry()
	registry.RegisterSaleTrigger("old music box", narrative.SaleTrigger{
		Sequence: "1-1",
		Opening:  "As you hand over the music box, it begins to play a melody you almost remember...",
	})

	return cat, registry, nil
}
