package commands

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"kronos/clients"
	"kronos/config"
	"kronos/models"
)

func (r *Registry) handleVerify(ctx context.Context, ic *models.InteractionContext) error {
	if ic.GuildID == "" || ic.Member == nil {
		log.Printf("⚠️ Verify command invoked outside a guild context - ignoring interaction %s", ic.ID)
		return nil
	}

	option := findOption(ic.Command.Options, "password")
	if option == nil || option.Kind != models.CommandOptionKindString {
		return fmt.Errorf("verify command arrived without a valid password option")
	}

	var embed clients.Embed
	if strings.EqualFold(option.Value, config.VerifyPassword) {
		err := r.discordClient.AddMemberRole(ctx, ic.GuildID, ic.Member.UserID, r.cfg.DiscordConfig.VerifiedRoleID)
		if err != nil {
			return fmt.Errorf("failed to grant verified role: %w", err)
		}
		embed = clients.Embed{
			Title:       "Verification",
			Description: "You are now verified :white_check_mark:",
			Color:       colorGreen,
		}
	} else {
		embed = clients.Embed{
			Title:       "Verification",
			Description: "Wrong password :x:",
			Color:       colorRed,
		}
	}

	return r.discordClient.RespondToInteraction(ctx, ic.ID, ic.Token, &clients.InteractionResponse{
		Kind:      clients.InteractionResponseReply,
		Embeds:    []clients.Embed{embed},
		Ephemeral: true,
	})
}

func verifyCommand() *discordgo.ApplicationCommand {
	dmPermission := false
	return &discordgo.ApplicationCommand{
		Name:        "verify",
		Description: "Verify that you read the rules",
		DescriptionLocalizations: &map[discordgo.Locale]string{
			discordgo.German: "Verifiziere, dass du die Regeln gelesen hast",
		},
		DMPermission: &dmPermission,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "password",
				Description: "Verification password",
				NameLocalizations: map[discordgo.Locale]string{
					discordgo.German: "passwort",
				},
				DescriptionLocalizations: map[discordgo.Locale]string{
					discordgo.German: "Passwort zur Verifikation",
				},
				Required: true,
			},
		},
	}
}
