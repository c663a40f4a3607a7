package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"kronos/clients"
)

// DiscordClient implements the clients.DiscordClient interface on top of a
// shared discordgo session. The session handles both the gateway and REST,
// so the same instance backing the GatewayClient is reused here.
type DiscordClient struct {
	session *discordgo.Session
	appID   string
}

// NewDiscordClient creates a new Discord API client. appID is the bot's
// application ID, required for interaction response endpoints.
func NewDiscordClient(session *discordgo.Session, appID string) clients.DiscordClient {
	return &DiscordClient{
		session: session,
		appID:   appID,
	}
}

func (c *DiscordClient) GetBotUser(ctx context.Context) (*clients.DiscordUser, error) {
	user, err := c.session.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bot user: %w", err)
	}

	return &clients.DiscordUser{
		ID:        user.ID,
		Username:  user.Username,
		AvatarURL: user.AvatarURL(""),
	}, nil
}

func (c *DiscordClient) GetGuild(ctx context.Context, guildID string) (*clients.DiscordGuild, error) {
	guild, err := c.session.Guild(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guild: %w", err)
	}
	if guild == nil {
		return nil, fmt.Errorf("guild not found")
	}

	return &clients.DiscordGuild{
		ID:              guild.ID,
		Name:            guild.Name,
		OwnerID:         guild.OwnerID,
		IconURL:         guild.IconURL(""),
		PreferredLocale: guild.PreferredLocale,
	}, nil
}

func (c *DiscordClient) GetGuildMemberCount(ctx context.Context, guildID string) (int, error) {
	guild, err := c.session.GuildWithCounts(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("failed to fetch guild member count: %w", err)
	}
	return guild.ApproximateMemberCount, nil
}

func (c *DiscordClient) GetGuildRoles(ctx context.Context, guildID string) ([]clients.DiscordRole, error) {
	roles, err := c.session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guild roles: %w", err)
	}

	result := make([]clients.DiscordRole, 0, len(roles))
	for _, role := range roles {
		result = append(result, clients.DiscordRole{
			ID:   role.ID,
			Name: role.Name,
		})
	}
	return result, nil
}

func (c *DiscordClient) AddMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	if err := c.session.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to add role %s to member %s: %w", roleID, userID, err)
	}
	return nil
}

func (c *DiscordClient) RemoveMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	if err := c.session.GuildMemberRoleRemove(guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to remove role %s from member %s: %w", roleID, userID, err)
	}
	return nil
}

func (c *DiscordClient) RespondToInteraction(
	ctx context.Context,
	interactionID, token string,
	response *clients.InteractionResponse,
) error {
	interaction := &discordgo.Interaction{
		ID:    interactionID,
		Token: token,
		AppID: c.appID,
	}

	err := c.session.InteractionRespond(interaction, buildInteractionResponse(response), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to respond to interaction %s: %w", interactionID, err)
	}
	return nil
}

func (c *DiscordClient) EditInteractionResponse(ctx context.Context, token, content string) error {
	interaction := &discordgo.Interaction{
		Token: token,
		AppID: c.appID,
	}

	_, err := c.session.InteractionResponseEdit(
		interaction,
		&discordgo.WebhookEdit{Content: &content},
		discordgo.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to edit interaction response: %w", err)
	}
	return nil
}

func (c *DiscordClient) RegisterGuildCommands(
	ctx context.Context,
	guildID string,
	commands []*discordgo.ApplicationCommand,
) ([]*discordgo.ApplicationCommand, error) {
	registered, err := c.session.ApplicationCommandBulkOverwrite(
		c.appID,
		guildID,
		commands,
		discordgo.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register guild commands: %w", err)
	}
	return registered, nil
}

// buildInteractionResponse converts our response model into the discordgo
// wire representation.
func buildInteractionResponse(response *clients.InteractionResponse) *discordgo.InteractionResponse {
	var responseType discordgo.InteractionResponseType
	switch response.Kind {
	case clients.InteractionResponseDeferredReply:
		responseType = discordgo.InteractionResponseDeferredChannelMessageWithSource
	case clients.InteractionResponseUpdateMessage:
		responseType = discordgo.InteractionResponseUpdateMessage
	default:
		responseType = discordgo.InteractionResponseChannelMessageWithSource
	}

	data := &discordgo.InteractionResponseData{
		Embeds:     buildEmbeds(response.Embeds),
		Components: buildButtonRows(response.ButtonRows),
	}
	if response.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	return &discordgo.InteractionResponse{
		Type: responseType,
		Data: data,
	}
}

func buildEmbeds(embeds []clients.Embed) []*discordgo.MessageEmbed {
	result := make([]*discordgo.MessageEmbed, 0, len(embeds))
	for _, embed := range embeds {
		fields := make([]*discordgo.MessageEmbedField, 0, len(embed.Fields))
		for _, field := range embed.Fields {
			fields = append(fields, &discordgo.MessageEmbedField{
				Name:   field.Name,
				Value:  field.Value,
				Inline: field.Inline,
			})
		}

		messageEmbed := &discordgo.MessageEmbed{
			Title:       embed.Title,
			Description: embed.Description,
			Color:       embed.Color,
			Fields:      fields,
		}
		if embed.ThumbnailURL != "" {
			messageEmbed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: embed.ThumbnailURL}
		}
		result = append(result, messageEmbed)
	}
	return result
}

func buildButtonRows(rows [][]clients.RoleButton) []discordgo.MessageComponent {
	result := make([]discordgo.MessageComponent, 0, len(rows))
	for _, row := range rows {
		buttons := make([]discordgo.MessageComponent, 0, len(row))
		for _, button := range row {
			style := discordgo.SecondaryButton
			if button.Selected {
				style = discordgo.SuccessButton
			}
			buttons = append(buttons, discordgo.Button{
				CustomID: button.RoleID,
				Label:    button.Label,
				Style:    style,
			})
		}
		result = append(result, discordgo.ActionsRow{Components: buttons})
	}
	return result
}
