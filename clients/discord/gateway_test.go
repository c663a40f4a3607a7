package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"

	"kronos/models"
)

func TestDecodeInteraction(t *testing.T) {
	member := &discordgo.Member{
		User:  &discordgo.User{ID: "user_1"},
		Roles: []string{"100", "300"},
	}

	t.Run("decodes a slash command with nested options", func(t *testing.T) {
		ic := DecodeInteraction(&discordgo.InteractionCreate{
			Interaction: &discordgo.Interaction{
				ID:      "int_1",
				Token:   "token_1",
				GuildID: "guild_1",
				Type:    discordgo.InteractionApplicationCommand,
				Member:  member,
				Data: discordgo.ApplicationCommandInteractionData{
					Name: "setup",
					Options: []*discordgo.ApplicationCommandInteractionDataOption{
						{
							Name: "roles",
							Type: discordgo.ApplicationCommandOptionSubCommandGroup,
							Options: []*discordgo.ApplicationCommandInteractionDataOption{
								{
									Name: "enable",
									Type: discordgo.ApplicationCommandOptionSubCommand,
									Options: []*discordgo.ApplicationCommandInteractionDataOption{
										{
											Name:  "role",
											Type:  discordgo.ApplicationCommandOptionRole,
											Value: "200",
										},
									},
								},
							},
						},
					},
				},
			},
		})

		assert.NotNil(t, ic)
		assert.Equal(t, "int_1", ic.ID)
		assert.Equal(t, "token_1", ic.Token)
		assert.Equal(t, "guild_1", ic.GuildID)
		assert.Equal(t, models.InteractionPayloadCommand, ic.Kind)
		assert.Equal(t, &models.MemberSnapshot{UserID: "user_1", RoleIDs: []string{"100", "300"}}, ic.Member)

		assert.Equal(t, "setup", ic.Command.Name)
		group := ic.Command.Options[0]
		assert.Equal(t, models.CommandOptionKindSubCommandGroup, group.Kind)
		subcommand := group.Options[0]
		assert.Equal(t, models.CommandOptionKindSubCommand, subcommand.Kind)
		assert.Equal(t, models.CommandOption{
			Name:    "role",
			Kind:    models.CommandOptionKindRole,
			Value:   "200",
			Options: []models.CommandOption{},
		}, subcommand.Options[0])
	})

	t.Run("decodes a string option value", func(t *testing.T) {
		ic := DecodeInteraction(&discordgo.InteractionCreate{
			Interaction: &discordgo.Interaction{
				ID:   "int_1",
				Type: discordgo.InteractionApplicationCommand,
				Data: discordgo.ApplicationCommandInteractionData{
					Name: "verify",
					Options: []*discordgo.ApplicationCommandInteractionDataOption{
						{
							Name:  "password",
							Type:  discordgo.ApplicationCommandOptionString,
							Value: "hunter2",
						},
					},
				},
			},
		})

		assert.Equal(t, models.CommandOptionKindString, ic.Command.Options[0].Kind)
		assert.Equal(t, "hunter2", ic.Command.Options[0].Value)
	})

	t.Run("decodes a component activation", func(t *testing.T) {
		ic := DecodeInteraction(&discordgo.InteractionCreate{
			Interaction: &discordgo.Interaction{
				ID:      "int_2",
				Token:   "token_2",
				GuildID: "guild_1",
				Type:    discordgo.InteractionMessageComponent,
				Member:  member,
				Data: discordgo.MessageComponentInteractionData{
					CustomID: "200",
				},
			},
		})

		assert.Equal(t, models.InteractionPayloadComponent, ic.Kind)
		assert.Equal(t, &models.ComponentActivation{CustomID: "200"}, ic.Component)
		assert.Nil(t, ic.Command)
	})

	t.Run("classifies unhandled payloads as other", func(t *testing.T) {
		ic := DecodeInteraction(&discordgo.InteractionCreate{
			Interaction: &discordgo.Interaction{
				ID:   "int_3",
				Type: discordgo.InteractionModalSubmit,
				Data: discordgo.ModalSubmitInteractionData{},
			},
		})

		assert.Equal(t, models.InteractionPayloadOther, ic.Kind)
		assert.Nil(t, ic.Command)
		assert.Nil(t, ic.Component)
	})

	t.Run("keeps member nil for direct messages", func(t *testing.T) {
		ic := DecodeInteraction(&discordgo.InteractionCreate{
			Interaction: &discordgo.Interaction{
				ID:   "int_4",
				Type: discordgo.InteractionApplicationCommand,
				Data: discordgo.ApplicationCommandInteractionData{Name: "about"},
			},
		})

		assert.Empty(t, ic.GuildID)
		assert.Nil(t, ic.Member)
	})

	t.Run("returns nil for a nil payload", func(t *testing.T) {
		assert.Nil(t, DecodeInteraction(nil))
	})
}
