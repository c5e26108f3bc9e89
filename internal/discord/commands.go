package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// CommandHandler handles a slash command
type CommandHandler func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient)

// CommandRegistry holds the registered commands
type CommandRegistry struct {
	Commands map[string]*discordgo.ApplicationCommand
	Handlers map[string]CommandHandler
}

// NewCommandRegistry creates a new registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		Commands: make(map[string]*discordgo.ApplicationCommand),
		Handlers: make(map[string]CommandHandler),
	}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(cmd *discordgo.ApplicationCommand, handler CommandHandler) {
	r.Commands[cmd.Name] = cmd
	r.Handlers[cmd.Name] = handler
}

// Handle processes an interaction
func (r *CommandRegistry) Handle(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	if h, ok := r.Handlers[i.ApplicationCommandData().Name]; ok {
		h(s, i, client)
	}
}

// RegisterCommands registers/updates commands with Discord. Bulk overwrite is
// only performed when the command set actually changed, to avoid rate limits.
func (b *Bot) RegisterCommands(registry *CommandRegistry, forceUpdate bool) error {
	slog.Info("Checking Discord commands...")

	existingCmds, err := b.Session.ApplicationCommands(b.AppID, "")
	if err != nil {
		return fmt.Errorf("failed to fetch existing commands: %w", err)
	}

	desiredCmds := make([]*discordgo.ApplicationCommand, 0, len(registry.Commands))
	for _, cmd := range registry.Commands {
		desiredCmds = append(desiredCmds, cmd)
	}

	if !forceUpdate && commandsEqual(existingCmds, desiredCmds) {
		slog.Info("Commands unchanged, skipping registration", "count", len(existingCmds))
		return nil
	}

	slog.Info("Updating commands", "existing", len(existingCmds), "desired", len(desiredCmds))
	if _, err := b.Session.ApplicationCommandBulkOverwrite(b.AppID, "", desiredCmds); err != nil {
		return fmt.Errorf("failed to update commands: %w", err)
	}

	slog.Info("Commands updated successfully", "count", len(desiredCmds))
	return nil
}

// commandsEqual checks if two command sets are equivalent
func commandsEqual(existing, desired []*discordgo.ApplicationCommand) bool {
	if len(existing) != len(desired) {
		return false
	}

	existingMap := make(map[string]*discordgo.ApplicationCommand)
	for _, cmd := range existing {
		existingMap[cmd.Name] = cmd
	}

	for _, want := range desired {
		have, ok := existingMap[want.Name]
		if !ok || !commandEqual(have, want) {
			return false
		}
	}

	return true
}

// commandEqual checks if two commands are equivalent
func commandEqual(a, b *discordgo.ApplicationCommand) bool {
	if a.Name != b.Name || a.Description != b.Description {
		return false
	}

	if len(a.Options) != len(b.Options) {
		return false
	}
	for i := range a.Options {
		if !optionEqual(a.Options[i], b.Options[i]) {
			return false
		}
	}

	return true
}

// optionEqual checks if two command options are equivalent
func optionEqual(a, b *discordgo.ApplicationCommandOption) bool {
	return a.Type == b.Type && a.Name == b.Name &&
		a.Description == b.Description && a.Required == b.Required
}

// deferResponse acknowledges an interaction with a deferred message.
// Required before any operation that might take longer than 3 seconds.
// Returns false if deferral failed (should return early from handler).
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		slog.Error("Failed to send deferred response", "error", err)
		return false
	}
	return true
}

// getInteractionUser extracts the user from an interaction.
// Handles both guild (i.Member.User) and DM (i.User) contexts.
func getInteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// getOptions extracts command options from an interaction.
func getOptions(i *discordgo.InteractionCreate) []*discordgo.ApplicationCommandInteractionDataOption {
	return i.ApplicationCommandData().Options
}

func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &message,
	}); err != nil {
		slog.Error("Failed to edit interaction response", "error", err)
	}
}

// respondFriendlyError maps technical API error text onto a readable message.
func respondFriendlyError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	respondError(s, i, formatFriendlyError(message))
}

// formatFriendlyError cleans up technical error messages
func formatFriendlyError(msg string) string {
	msg = strings.TrimPrefix(msg, "API error: ")

	switch {
	case strings.Contains(msg, "Not enough money"):
		return MsgInsufficientFunds
	case strings.Contains(msg, "Item not found"):
		return MsgItemNotFound
	case strings.Contains(msg, "holding limit"):
		return MsgOverCapacity
	case strings.Contains(msg, "Not enough items"):
		return MsgNotEnoughItems
	case strings.Contains(msg, "Player not found"):
		return MsgPlayerNotFound
	default:
		return "❌ " + msg
	}
}

// FooterAdventureBot is the standard footer for user-facing embeds.
const FooterAdventureBot = "AdventureBot"

// createEmbed creates a standard embed with the shared footer.
func createEmbed(title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: FooterAdventureBot,
		},
	}
}

// sendEmbed sends an embed message with standardized error handling.
func sendEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		slog.Error("Failed to send response", "error", err)
	}
}

// ResponseConfig defines the visual properties of a command response embed
type ResponseConfig struct {
	Title string
	Color int
}

// handleEmbedResponse defers the interaction, runs the action, and renders
// the result (or a friendly error) as an embed.
func handleEmbedResponse(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	action func() (string, error),
	config ResponseConfig,
) {
	if !deferResponse(s, i) {
		return
	}

	msg, err := action()
	if err != nil {
		slog.Error("Action failed", "title", config.Title, "error", err)
		respondFriendlyError(s, i, err.Error())
		return
	}

	sendEmbed(s, i, createEmbed(config.Title, msg, config.Color))
}

// playerAction resolves the invoking user's player ID before running the
// action, registering the player on first contact.
func playerAction(i *discordgo.InteractionCreate, client *APIClient, action func(playerID string) (string, error)) func() (string, error) {
	return func() (string, error) {
		user := getInteractionUser(i)
		if user == nil {
			return "", fmt.Errorf("could not resolve interaction user")
		}
		playerID, err := client.EnsurePlayer(user.Username)
		if err != nil {
			return "", fmt.Errorf("failed to resolve player: %w", err)
		}
		return action(playerID)
	}
}
