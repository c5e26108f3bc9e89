package discord

import (
	"github.com/bwmarrin/discordgo"
)

// DropCommand returns the lottery drop command and handler
func DropCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "drop",
		Description: "Try your luck at a random item drop",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, playerAction(i, client, func(playerID string) (string, error) {
			return client.Drop(playerID)
		}), ResponseConfig{
			Title: "🎲 Drop",
			Color: 0xe74c3c, // Red
		})
	}

	return cmd, handler
}

// FishCommand returns the fishing command and handler
func FishCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "fish",
		Description: "Cast a line and see what bites",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, playerAction(i, client, func(playerID string) (string, error) {
			return client.Fish(playerID)
		}), ResponseConfig{
			Title: "🎣 Fishing",
			Color: 0x3498db, // Blue
		})
	}

	return cmd, handler
}
