package commands

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"kronos/clients"
	"kronos/models"
)

func setupInteraction(subcommand string, options ...models.CommandOption) *models.InteractionContext {
	return commandInteraction("setup", models.CommandOption{
		Name: "roles",
		Kind: models.CommandOptionKindSubCommandGroup,
		Options: []models.CommandOption{
			{Name: subcommand, Kind: models.CommandOptionKindSubCommand, Options: options},
		},
	})
}

func TestHandleSetup(t *testing.T) {
	ctx := context.Background()
	roleOption := models.CommandOption{Name: "role", Kind: models.CommandOptionKindRole, Value: "100"}

	t.Run("enables a role on the allow list", func(t *testing.T) {
		registry, mockDiscord, mockConfigs := newTestRegistry()
		mockConfigs.On("GetEnabledRoleIDs", ctx, "guild_1").Return([]string{}, nil)
		mockConfigs.On("EnableRole", ctx, "guild_1", "100").Return(nil)
		mockDiscord.On("RespondToInteraction", ctx, "int_1", "token_1",
			mock.MatchedBy(func(response *clients.InteractionResponse) bool {
				return response.Ephemeral && response.Embeds[0].Description == "Enabled role"
			})).Return(nil)

		err := registry.Dispatch(ctx, setupInteraction("enable", roleOption))

		assert.NoError(t, err)
		mockConfigs.AssertExpectations(t)
		mockDiscord.AssertExpectations(t)
	})

	t.Run("enabling an already-enabled role does not store a duplicate", func(t *testing.T) {
		registry, mockDiscord, mockConfigs := newTestRegistry()
		mockConfigs.On("GetEnabledRoleIDs", ctx, "guild_1").Return([]string{"100"}, nil)
		mockDiscord.On("RespondToInteraction", ctx, "int_1", "token_1",
			mock.MatchedBy(func(response *clients.InteractionResponse) bool {
				return response.Embeds[0].Description == "Role is already enabled"
			})).Return(nil)

		err := registry.Dispatch(ctx, setupInteraction("enable", roleOption))

		assert.NoError(t, err)
		mockConfigs.AssertNotCalled(t, "EnableRole", mock.Anything, mock.Anything, mock.Anything)
		mockDiscord.AssertExpectations(t)
	})

	t.Run("disables a role on the allow list", func(t *testing.T) {
		registry, mockDiscord, mockConfigs := newTestRegistry()
		mockConfigs.On("DisableRole", ctx, "guild_1", "100").Return(nil)
		mockDiscord.On("RespondToInteraction", ctx, "int_1", "token_1",
			mock.MatchedBy(func(response *clients.InteractionResponse) bool {
				return response.Embeds[0].Description == "Disabled role"
			})).Return(nil)

		err := registry.Dispatch(ctx, setupInteraction("disable", roleOption))

		assert.NoError(t, err)
		mockConfigs.AssertExpectations(t)
	})

	t.Run("surfaces store failures to the dispatch boundary", func(t *testing.T) {
		registry, mockDiscord, mockConfigs := newTestRegistry()
		mockConfigs.On("GetEnabledRoleIDs", ctx, "guild_1").Return([]string{}, nil)
		mockConfigs.On("EnableRole", ctx, "guild_1", "100").
			Return(fmt.Errorf("connection refused"))

		err := registry.Dispatch(ctx, setupInteraction("enable", roleOption))

		assert.Error(t, err)
		mockDiscord.AssertNotCalled(t, "RespondToInteraction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lists enabled roles as mentions", func(t *testing.T) {
		registry, mockDiscord, mockConfigs := newTestRegistry()
		liveRoles := []clients.DiscordRole{
			{ID: "100", Name: "Gaming"},
			{ID: "200", Name: "Music"},
		}
		mockDiscord.On("GetGuildRoles", ctx, "guild_1").Return(liveRoles, nil)
		mockConfigs.On("GetEnabledRoles", ctx, "guild_1", liveRoles).Return(liveRoles, nil)
		mockDiscord.On("RespondToInteraction", ctx, "int_1", "token_1",
			mock.MatchedBy(func(response *clients.InteractionResponse) bool {
				return response.Embeds[0].Description == "<@&100>\n<@&200>"
			})).Return(nil)

		err := registry.Dispatch(ctx, setupInteraction("list"))

		assert.NoError(t, err)
		mockDiscord.AssertExpectations(t)
	})

	t.Run("ignores invocations outside a guild", func(t *testing.T) {
		registry, mockDiscord, mockConfigs := newTestRegistry()

		ic := setupInteraction("enable", roleOption)
		ic.GuildID = ""
		err := registry.Dispatch(ctx, ic)

		assert.NoError(t, err)
		mockConfigs.AssertNotCalled(t, "EnableRole", mock.Anything, mock.Anything, mock.Anything)
		mockDiscord.AssertNotCalled(t, "RespondToInteraction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("drops malformed option shapes", func(t *testing.T) {
		tests := []struct {
			name string
			ic   *models.InteractionContext
		}{
			{name: "missing roles group", ic: commandInteraction("setup")},
			{name: "empty roles group", ic: commandInteraction("setup", models.CommandOption{
				Name: "roles",
				Kind: models.CommandOptionKindSubCommandGroup,
			})},
			{name: "enable without role option", ic: setupInteraction("enable")},
			{name: "enable with wrong option kind", ic: setupInteraction("enable", models.CommandOption{
				Name: "role",
				Kind: models.CommandOptionKindString,
			})},
			{name: "unknown subcommand", ic: setupInteraction("purge")},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				registry, mockDiscord, mockConfigs := newTestRegistry()

				err := registry.Dispatch(ctx, tt.ic)

				assert.NoError(t, err)
				mockConfigs.AssertNotCalled(t, "EnableRole", mock.Anything, mock.Anything, mock.Anything)
				mockConfigs.AssertNotCalled(t, "DisableRole", mock.Anything, mock.Anything, mock.Anything)
				mockDiscord.AssertNotCalled(t, "RespondToInteraction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})
}
