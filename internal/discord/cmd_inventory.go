package discord

import (
	"github.com/bwmarrin/discordgo"
)

// OverviewCommand returns the collection overview command and handler
func OverviewCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "collection",
		Description: "View your obtained items grouped by rarity",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, playerAction(i, client, func(playerID string) (string, error) {
			return client.Overview(playerID)
		}), ResponseConfig{
			Title: "🎒 Collection",
			Color: 0x9b59b6, // Purple
		})
	}

	return cmd, handler
}

// ItemCommand returns the item detail command and handler
func ItemCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "item",
		Description: "Inspect one item you have obtained",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "name",
				Description: "Item name",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, playerAction(i, client, func(playerID string) (string, error) {
			return client.ItemDetail(playerID, getOptions(i)[0].StringValue())
		}), ResponseConfig{
			Title: "🔎 Item",
			Color: 0x1abc9c, // Teal
		})
	}

	return cmd, handler
}
