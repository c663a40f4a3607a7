package clients

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// DiscordUser represents a Discord user with only the fields the bot needs
type DiscordUser struct {
	ID        string
	Username  string
	AvatarURL string
}

// DiscordGuild represents a Discord guild with only the fields the bot needs
type DiscordGuild struct {
	ID              string
	Name            string
	OwnerID         string
	IconURL         string
	PreferredLocale string
}

// DiscordRole represents a guild role
type DiscordRole struct {
	ID   string
	Name string
}

// InteractionResponseKind selects how an interaction is answered.
type InteractionResponseKind string

const (
	// InteractionResponseReply sends a new message as the initial response.
	InteractionResponseReply InteractionResponseKind = "reply"
	// InteractionResponseDeferredReply acknowledges the interaction and
	// promises a follow-up edit.
	InteractionResponseDeferredReply InteractionResponseKind = "deferred_reply"
	// InteractionResponseUpdateMessage edits the message the activated
	// component is attached to, in place.
	InteractionResponseUpdateMessage InteractionResponseKind = "update_message"
)

type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

type Embed struct {
	Title        string
	Description  string
	Color        int
	ThumbnailURL string
	Fields       []EmbedField
}

// RoleButton is one self-service role toggle button. The role ID doubles
// as the component custom ID.
type RoleButton struct {
	RoleID   string
	Label    string
	Selected bool
}

// InteractionResponse is the bot's answer to one interaction. ButtonRows
// are rendered as action rows, at most five buttons each.
type InteractionResponse struct {
	Kind       InteractionResponseKind
	Embeds     []Embed
	Ephemeral  bool
	ButtonRows [][]RoleButton
}

// DiscordClient defines the interface for outbound Discord API operations
type DiscordClient interface {
	// Bot identity
	GetBotUser(ctx context.Context) (*DiscordUser, error)

	// Guild operations
	GetGuild(ctx context.Context, guildID string) (*DiscordGuild, error)
	GetGuildMemberCount(ctx context.Context, guildID string) (int, error)
	GetGuildRoles(ctx context.Context, guildID string) ([]DiscordRole, error)

	// Member role mutations
	AddMemberRole(ctx context.Context, guildID, userID, roleID string) error
	RemoveMemberRole(ctx context.Context, guildID, userID, roleID string) error

	// Interaction responses
	RespondToInteraction(ctx context.Context, interactionID, token string, response *InteractionResponse) error
	EditInteractionResponse(ctx context.Context, token, content string) error

	// Command registration
	RegisterGuildCommands(
		ctx context.Context,
		guildID string,
		commands []*discordgo.ApplicationCommand,
	) ([]*discordgo.ApplicationCommand, error)
}
