package trade

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/AdventureBot_Go/internal/catalog"
	"github.com/osse101/AdventureBot_Go/internal/domain"
	"github.com/osse101/AdventureBot_Go/internal/pricing"
)

var titleCaser = cases.Title(language.English)

type priceRow struct {
	name   string
	rarity domain.Rarity
	price  int
}

// renderListing sorts rows ascending by price, ties broken by ascending
// rarity tier, under the given header.
func renderListing(header string, rows []priceRow) string {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].price != rows[j].price {
			return rows[i].price < rows[j].price
		}
		return rows[i].rarity < rows[j].rarity
	})

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, header)
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%s (%s) %d", titleCaser.String(row.name), row.rarity, row.price))
	}
	return strings.Join(lines, "\n")
}

// buyListing lists every item the player could purchase, with prices.
func (e *Engine) buyListing(toBid pricing.Func) string {
	var rows []priceRow
	for _, item := range e.catalog.Items() {
		if bid := toBid(item.Name); bid > 0 {
			rows = append(rows, priceRow{item.Name, item.Rarity, bid})
		}
	}
	if len(rows) == 0 {
		return "Nothing is for sale right now."
	}
	return renderListing("Item - buy price", rows)
}

// sellListing lists the sellable items the player currently holds, with
// prices.
func (e *Engine) sellListing(player *domain.Player, toValue pricing.Func) string {
	var rows []priceRow
	for _, item := range e.catalog.Items() {
		if player.Held(item.Name) == 0 {
			continue
		}
		if value := toValue(item.Name); value > 0 {
			rows = append(rows, priceRow{item.Name, item.Rarity, value})
		}
	}
	if len(rows) == 0 {
		return "You hold nothing that can be sold."
	}
	return renderListing("Item - sell price", rows)
}

// sortByCatalogOrder orders names by their catalog registration order, so
// batch messages stay deterministic.
func sortByCatalogOrder(c *catalog.Catalog, names []string) {
	index := make(map[string]int, c.Len())
	for i, item := range c.Items() {
		index[item.Name] = i
	}
	sort.SliceStable(names, func(i, j int) bool {
		return index[names[i]] < index[names[j]]
	})
}
