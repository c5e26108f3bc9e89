package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// splitArgs turns the free-form items option into chat-style trade tokens.
// "mushroom 2 feather *" buys two mushrooms and fills up on feathers.
func splitArgs(raw string) []string {
	return strings.Fields(raw)
}

// BuyCommand returns the buy command definition and handler
func BuyCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "buy",
		Description: "Buy items; leave empty to see the price listing",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "items",
				Description: "Items and counts, e.g. \"mushroom 2 feather *\"",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, playerAction(i, client, func(playerID string) (string, error) {
			var raw string
			if options := getOptions(i); len(options) > 0 {
				raw = options[0].StringValue()
			}
			return client.Buy(playerID, splitArgs(raw))
		}), ResponseConfig{
			Title: "💰 Shop",
			Color: 0x2ecc71, // Green
		})
	}

	return cmd, handler
}

// SellCommand returns the sell command definition and handler
func SellCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "sell",
		Description: "Sell items; leave empty to see your sellable listing",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "items",
				Description: "Items and counts, e.g. \"mushroom * feather 3\"",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, playerAction(i, client, func(playerID string) (string, error) {
			var raw string
			if options := getOptions(i); len(options) > 0 {
				raw = options[0].StringValue()
			}
			return client.Sell(playerID, splitArgs(raw))
		}), ResponseConfig{
			Title: "💵 Sale",
			Color: 0xf39c12, // Orange
		})
	}

	return cmd, handler
}

// PricesCommand returns the prices command definition and handler (buy prices)
func PricesCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "prices",
		Description: "View buy prices (cost to purchase items)",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			return client.GetBuyPrices()
		}, ResponseConfig{
			Title: "🏪 Buy Prices",
			Color: 0x3498db, // Blue
		})
	}

	return cmd, handler
}

// SellPricesCommand returns the sell prices command definition and handler
func SellPricesCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "prices-sell",
		Description: "View sell prices (what you get when selling)",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			return client.GetSellPrices()
		}, ResponseConfig{
			Title: "💰 Sell Prices",
			Color: 0xf1c40f, // Yellow
		})
	}

	return cmd, handler
}
