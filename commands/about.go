package commands

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"kronos/clients"
	"kronos/config"
	"kronos/models"
)

func (r *Registry) handleAbout(ctx context.Context, ic *models.InteractionContext) error {
	botUser, err := r.discordClient.GetBotUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch bot user for about command: %w", err)
	}

	embed := clients.Embed{
		Title:        "Kronos",
		Description:  "The father of all gods.",
		Color:        colorGreen,
		ThumbnailURL: botUser.AvatarURL,
		Fields: []clients.EmbedField{
			{Name: "Author", Value: fmt.Sprintf("<@%s>", config.AuthorID), Inline: true},
			{Name: "Version", Value: config.Version, Inline: true},
			{Name: "GitHub", Value: config.RepoURL},
			{
				Name:  "Bug Reports / Feature Requests",
				Value: fmt.Sprintf("Please open an issue on [GitHub](%s)", config.RepoURL),
			},
		},
	}

	return r.discordClient.RespondToInteraction(ctx, ic.ID, ic.Token, &clients.InteractionResponse{
		Kind:      clients.InteractionResponseReply,
		Embeds:    []clients.Embed{embed},
		Ephemeral: true,
	})
}

func aboutCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "about",
		Description: "Get information about the bot",
		DescriptionLocalizations: &map[discordgo.Locale]string{
			discordgo.German: "Informationen über den Bot",
		},
	}
}
