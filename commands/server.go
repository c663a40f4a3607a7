package commands

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"kronos/clients"
	"kronos/models"
)

func (r *Registry) handleServer(ctx context.Context, ic *models.InteractionContext) error {
	if ic.GuildID == "" {
		log.Printf("⚠️ Server command invoked outside a guild context - ignoring interaction %s", ic.ID)
		return nil
	}

	guild, err := r.discordClient.GetGuild(ctx, ic.GuildID)
	if err != nil {
		return fmt.Errorf("failed to fetch guild for server command: %w", err)
	}

	memberCount, err := r.discordClient.GetGuildMemberCount(ctx, ic.GuildID)
	if err != nil {
		return fmt.Errorf("failed to fetch member count for server command: %w", err)
	}

	createdAt, err := discordgo.SnowflakeTimestamp(guild.ID)
	if err != nil {
		return fmt.Errorf("failed to derive guild creation date: %w", err)
	}

	embed := clients.Embed{
		Title:        "Server Info",
		Color:        colorGreen,
		ThumbnailURL: guild.IconURL,
		Fields: []clients.EmbedField{
			{Name: "Creation Date", Value: formatCreationDate(createdAt, guild.PreferredLocale), Inline: true},
			{Name: "Members", Value: strconv.Itoa(memberCount), Inline: true},
			{Name: "Owner", Value: fmt.Sprintf("<@%s>", guild.OwnerID), Inline: true},
		},
	}

	return r.discordClient.RespondToInteraction(ctx, ic.ID, ic.Token, &clients.InteractionResponse{
		Kind:      clients.InteractionResponseReply,
		Embeds:    []clients.Embed{embed},
		Ephemeral: true,
	})
}

// formatCreationDate renders the date in the guild's preferred locale:
// day.month.year for German, month-day-year otherwise (en-US default).
func formatCreationDate(createdAt time.Time, locale string) string {
	if locale == "de" {
		return fmt.Sprintf("%d.%d.%d", createdAt.Day(), createdAt.Month(), createdAt.Year())
	}
	return fmt.Sprintf("%d-%d-%d", createdAt.Month(), createdAt.Day(), createdAt.Year())
}

func serverCommand() *discordgo.ApplicationCommand {
	dmPermission := false
	return &discordgo.ApplicationCommand{
		Name:        "server",
		Description: "Get information about the server",
		DescriptionLocalizations: &map[discordgo.Locale]string{
			discordgo.German: "Informationen über den Server",
		},
		DMPermission: &dmPermission,
	}
}
