package commands

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"

	"kronos/clients"
	"kronos/models"
)

// handleSetup unpacks the `setup roles enable|disable|list` subcommand
// tree. Malformed option shapes are protocol anomalies: Discord validates
// the schema client-side, so they are logged and dropped rather than
// surfaced to the user.
func (r *Registry) handleSetup(ctx context.Context, ic *models.InteractionContext) error {
	if ic.GuildID == "" {
		log.Printf("⚠️ Setup command invoked outside a guild context - ignoring interaction %s", ic.ID)
		return nil
	}

	group := findOption(ic.Command.Options, "roles")
	if group == nil || group.Kind != models.CommandOptionKindSubCommandGroup {
		log.Printf("⚠️ Setup command without the roles subcommand group - ignoring interaction %s", ic.ID)
		return nil
	}
	if len(group.Options) == 0 {
		log.Printf("⚠️ Setup roles group arrived without a subcommand - ignoring interaction %s", ic.ID)
		return nil
	}

	subcommand := group.Options[0]
	switch subcommand.Name {
	case "enable", "disable":
		roleOption := findOption(subcommand.Options, "role")
		if roleOption == nil || roleOption.Kind != models.CommandOptionKindRole || roleOption.Value == "" {
			log.Printf("⚠️ Setup roles %s without a valid role option - ignoring interaction %s",
				subcommand.Name, ic.ID)
			return nil
		}
		return r.handleSetupRolesUpdate(ctx, ic, subcommand.Name == "enable", roleOption.Value)
	case "list":
		return r.handleSetupRolesList(ctx, ic)
	default:
		log.Printf("⚠️ Unknown setup roles subcommand %q - ignoring interaction %s", subcommand.Name, ic.ID)
		return nil
	}
}

func (r *Registry) handleSetupRolesUpdate(
	ctx context.Context,
	ic *models.InteractionContext,
	enable bool,
	roleID string,
) error {
	var description string
	if enable {
		// The allow-list does not deduplicate, and duplicate entries would
		// produce duplicate button custom IDs Discord rejects.
		enabledRoleIDs, err := r.guildConfigsService.GetEnabledRoleIDs(ctx, ic.GuildID)
		if err != nil {
			return fmt.Errorf("failed to check enabled roles: %w", err)
		}
		if slices.Contains(enabledRoleIDs, roleID) {
			description = "Role is already enabled"
		} else {
			if err := r.guildConfigsService.EnableRole(ctx, ic.GuildID, roleID); err != nil {
				return fmt.Errorf("failed to enable role: %w", err)
			}
			description = "Enabled role"
		}
	} else {
		if err := r.guildConfigsService.DisableRole(ctx, ic.GuildID, roleID); err != nil {
			return fmt.Errorf("failed to disable role: %w", err)
		}
		description = "Disabled role"
	}

	embed := clients.Embed{
		Title:       "Setup roles",
		Description: description,
		Color:       colorGreen,
	}
	return r.discordClient.RespondToInteraction(ctx, ic.ID, ic.Token, &clients.InteractionResponse{
		Kind:      clients.InteractionResponseReply,
		Embeds:    []clients.Embed{embed},
		Ephemeral: true,
	})
}

func (r *Registry) handleSetupRolesList(ctx context.Context, ic *models.InteractionContext) error {
	liveRoles, err := r.discordClient.GetGuildRoles(ctx, ic.GuildID)
	if err != nil {
		return fmt.Errorf("failed to fetch guild roles: %w", err)
	}

	enabledRoles, err := r.guildConfigsService.GetEnabledRoles(ctx, ic.GuildID, liveRoles)
	if err != nil {
		return fmt.Errorf("failed to list enabled roles: %w", err)
	}

	mentions := make([]string, 0, len(enabledRoles))
	for _, role := range enabledRoles {
		mentions = append(mentions, fmt.Sprintf("<@&%s>", role.ID))
	}

	embed := clients.Embed{
		Title:       "Enabled roles",
		Description: strings.Join(mentions, "\n"),
		Color:       colorGreen,
	}
	return r.discordClient.RespondToInteraction(ctx, ic.ID, ic.Token, &clients.InteractionResponse{
		Kind:      clients.InteractionResponseReply,
		Embeds:    []clients.Embed{embed},
		Ephemeral: true,
	})
}

func setupCommand() *discordgo.ApplicationCommand {
	dmPermission := false
	adminPermission := int64(discordgo.PermissionAdministrator)

	return &discordgo.ApplicationCommand{
		Name:        "setup",
		Description: "Setup the bot on your guild",
		DescriptionLocalizations: &map[discordgo.Locale]string{
			discordgo.German: "Konfiguriere den Bot für diese Guild",
		},
		DMPermission:             &dmPermission,
		DefaultMemberPermissions: &adminPermission,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
				Name:        "roles",
				Description: "Manage roles command",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "enable",
						Description: "Enable role for roles command",
						Options: []*discordgo.ApplicationCommandOption{
							{
								Type:        discordgo.ApplicationCommandOptionRole,
								Name:        "role",
								Description: "Role to enable",
								Required:    true,
							},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "disable",
						Description: "Disable role for roles command",
						Options: []*discordgo.ApplicationCommandOption{
							{
								Type:        discordgo.ApplicationCommandOptionRole,
								Name:        "role",
								Description: "Role to disable",
								Required:    true,
							},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "list",
						Description: "List enabled roles",
					},
				},
			},
		},
	}
}
