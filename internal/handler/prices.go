package handler

import (
	"net/http"
	"sort"

	"github.com/osse101/AdventureBot_Go/internal/catalog"
	"github.com/osse101/AdventureBot_Go/internal/logger"
)

type ItemPrice struct {
	Name   string `json:"name"`
	Rarity string `json:"rarity"`
	Price  int    `json:"price"`
}

type PricesResponse struct {
	Items []ItemPrice `json:"items"`
}

// HandleGetSellPrices lists base sell prices for all sellable items
// @Summary Sell prices
// @Description List base sell prices, cheapest first
// @Tags prices
// @Produce json
// @Success 200 {object} PricesResponse
// @Router /prices/sell [get]
func HandleGetSellPrices(c *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		prices := collectPrices(c, false)
		log.Debug("Sell prices listed", "count", len(prices))

		respondJSON(w, http.StatusOK, PricesResponse{Items: prices})
	}
}

// HandleGetBuyPrices lists base purchase prices for all buyable items
// @Summary Buy prices
// @Description List base purchase prices, cheapest first
// @Tags prices
// @Produce json
// @Success 200 {object} PricesResponse
// @Router /prices/buy [get]
func HandleGetBuyPrices(c *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		prices := collectPrices(c, true)
		log.Debug("Buy prices listed", "count", len(prices))

		respondJSON(w, http.StatusOK, PricesResponse{Items: prices})
	}
}

func collectPrices(c *catalog.Catalog, buy bool) []ItemPrice {
	type row struct {
		price ItemPrice
		tier  int
	}
	items := c.Items()
	rows := make([]row, 0, len(items))
	for _, item := range items {
		price := item.Value
		if buy {
			price = item.Bid
		}
		if price <= 0 {
			continue
		}
		rows = append(rows, row{
			price: ItemPrice{Name: item.Name, Rarity: item.Rarity.String(), Price: price},
			tier:  int(item.Rarity),
		})
	}
	// Cheapest first, rarity tier breaking ties, mirroring the chat listings.
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].price.Price != rows[j].price.Price {
			return rows[i].price.Price < rows[j].price.Price
		}
		return rows[i].tier < rows[j].tier
	})
	prices := make([]ItemPrice, len(rows))
	for i, r := range rows {
		prices[i] = r.price
	}
	return prices
}
