package player

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/AdventureBot_Go/internal/domain"
)

// Overview renders the player's collection progress grouped by rarity tier:
// how many of each tier's items have ever been obtained, and which of them
// are currently held.
func (s *service) Overview(ctx context.Context, playerID string) (string, error) {
	player, err := s.store.GetPlayer(ctx, playerID)
	if err != nil {
		return "", err
	}

	held := make(map[domain.Rarity][]string)
	for _, item := range s.catalog.Items() {
		if player.Warehouse[item.Name] > 0 {
			held[item.Rarity] = append(held[item.Rarity], item.Name)
		}
	}

	obtained := 0
	for name := range player.Gains {
		if player.Gains[name] > 0 {
			obtained++
		}
	}

	lines := []string{fmt.Sprintf(
		"%s, you have obtained %d of %d items.",
		player.Username, obtained, s.catalog.Len(),
	)}
	for _, rarity := range domain.Rarities {
		names := held[rarity]
		line := fmt.Sprintf("%s (%d/%d)", rarity, len(names), len(s.catalog.Bucket(rarity)))
		if len(names) > 0 {
			parts := make([]string, 0, len(names))
			for _, name := range names {
				parts = append(parts, fmt.Sprintf("%s ×%d", name, player.Warehouse[name]))
			}
			line += ": " + strings.Join(parts, ", ")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// ItemDetail renders one item's record for a player: held and cumulative
// counts, stack limit, prices, and where the item can be obtained.
func (s *service) ItemDetail(ctx context.Context, playerID, itemName string) (string, error) {
	player, err := s.store.GetPlayer(ctx, playerID)
	if err != nil {
		return "", err
	}
	item, ok := s.catalog.Lookup(itemName)
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemName)
	}
	if player.Gains[itemName] == 0 {
		return "You have never obtained this item.", nil
	}

	lines := []string{
		fmt.Sprintf("%s (%s)", item.Name, item.Rarity),
		fmt.Sprintf("Currently held: %d", player.Warehouse[itemName]),
		fmt.Sprintf("Total obtained: %d", player.Gains[itemName]),
		fmt.Sprintf("Stack limit: %d", item.MaxCount),
	}

	var sources []string
	if item.Rarity != domain.RaritySP && item.LotteryWeight() != 0 {
		sources = append(sources, "lottery")
	}
	if item.Fishing > 0 {
		sources = append(sources, "fishing")
	}
	if value := s.pricing.SellPricer(player)(itemName); value > 0 {
		lines = append(lines, fmt.Sprintf("Sell price: %d", value))
	}
	if bid := s.pricing.BuyPricer(player)(itemName); bid > 0 {
		sources = append(sources, "shop")
		lines = append(lines, fmt.Sprintf("Buy price: %d", bid))
	}
	if item.Plot || len(sources) == 0 {
		sources = append(sources, "story")
	}
	lines = append(lines, "Obtained from: "+strings.Join(sources, " / "))

	if item.Description != "" {
		lines = append(lines, item.Description)
	}
	return strings.Join(lines, "\n"), nil
}
