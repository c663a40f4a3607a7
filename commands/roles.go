package commands

import (
	"context"
	"log"
	"slices"

	"github.com/bwmarrin/discordgo"

	"kronos/clients"
	"kronos/models"
)

// Discord allows at most five buttons per action row.
const maxButtonsPerRow = 5

func (r *Registry) handleRoles(ctx context.Context, ic *models.InteractionContext) error {
	if ic.GuildID == "" || ic.Member == nil {
		log.Printf("⚠️ Roles command invoked outside a guild context - ignoring interaction %s", ic.ID)
		return nil
	}

	response := r.BuildRolesResponse(ctx, ic.GuildID, ic.Member.RoleIDs, clients.InteractionResponseReply)
	return r.discordClient.RespondToInteraction(ctx, ic.ID, ic.Token, response)
}

// BuildRolesResponse builds the self-service roles embed plus one toggle
// button per enabled role, green when the member currently has the role.
// The role toggle flow reuses it with an update-message kind to redraw the
// buttons from the local snapshot, without re-fetching the member.
func (r *Registry) BuildRolesResponse(
	ctx context.Context,
	guildID string,
	memberRoleIDs []string,
	kind clients.InteractionResponseKind,
) *clients.InteractionResponse {
	buttonRows, err := r.buildRoleButtonRows(ctx, guildID, memberRoleIDs)
	if err != nil {
		log.Printf("❌ Failed to construct role buttons for guild %s: %v", guildID, err)
		return &clients.InteractionResponse{
			Kind:      kind,
			Embeds:    []clients.Embed{errorEmbed()},
			Ephemeral: true,
		}
	}

	embed := clients.Embed{
		Title:       "Roles",
		Description: "What roles do you want?",
		Color:       colorGreen,
		Fields: []clients.EmbedField{
			{Name: "Buttons", Value: "Grey = Not selected, green = selected"},
		},
	}

	return &clients.InteractionResponse{
		Kind:       kind,
		Embeds:     []clients.Embed{embed},
		Ephemeral:  true,
		ButtonRows: buttonRows,
	}
}

func (r *Registry) buildRoleButtonRows(
	ctx context.Context,
	guildID string,
	memberRoleIDs []string,
) ([][]clients.RoleButton, error) {
	liveRoles, err := r.discordClient.GetGuildRoles(ctx, guildID)
	if err != nil {
		return nil, err
	}

	enabledRoles, err := r.guildConfigsService.GetEnabledRoles(ctx, guildID, liveRoles)
	if err != nil {
		return nil, err
	}

	return chunkRoleButtons(enabledRoles, memberRoleIDs), nil
}

// chunkRoleButtons lays the enabled roles out into action rows, preserving
// the allow-list order.
func chunkRoleButtons(roles []clients.DiscordRole, memberRoleIDs []string) [][]clients.RoleButton {
	rows := make([][]clients.RoleButton, 0, (len(roles)+maxButtonsPerRow-1)/maxButtonsPerRow)
	for start := 0; start < len(roles); start += maxButtonsPerRow {
		end := min(start+maxButtonsPerRow, len(roles))
		row := make([]clients.RoleButton, 0, end-start)
		for _, role := range roles[start:end] {
			row = append(row, clients.RoleButton{
				RoleID:   role.ID,
				Label:    role.Name,
				Selected: slices.Contains(memberRoleIDs, role.ID),
			})
		}
		rows = append(rows, row)
	}
	return rows
}

func rolesCommand() *discordgo.ApplicationCommand {
	dmPermission := false
	return &discordgo.ApplicationCommand{
		Name:        "roles",
		Description: "Give yourself roles for games",
		DescriptionLocalizations: &map[discordgo.Locale]string{
			discordgo.German: "Gib dir selbst Rollen für Spiele",
		},
		DMPermission: &dmPermission,
	}
}
