package commands

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"kronos/clients"
)

func TestChunkRoleButtons(t *testing.T) {
	roles := func(count int) []clients.DiscordRole {
		result := make([]clients.DiscordRole, 0, count)
		for i := 0; i < count; i++ {
			result = append(result, clients.DiscordRole{
				ID:   fmt.Sprintf("%d", i+1),
				Name: fmt.Sprintf("Role %d", i+1),
			})
		}
		return result
	}

	t.Run("splits into rows of at most five", func(t *testing.T) {
		rows := chunkRoleButtons(roles(12), nil)

		assert.Len(t, rows, 3)
		assert.Len(t, rows[0], 5)
		assert.Len(t, rows[1], 5)
		assert.Len(t, rows[2], 2)
	})

	t.Run("preserves the allow-list order", func(t *testing.T) {
		rows := chunkRoleButtons(roles(6), nil)

		assert.Equal(t, "1", rows[0][0].RoleID)
		assert.Equal(t, "5", rows[0][4].RoleID)
		assert.Equal(t, "6", rows[1][0].RoleID)
	})

	t.Run("marks only held roles as selected", func(t *testing.T) {
		rows := chunkRoleButtons(roles(3), []string{"2"})

		assert.False(t, rows[0][0].Selected)
		assert.True(t, rows[0][1].Selected)
		assert.False(t, rows[0][2].Selected)
	})

	t.Run("handles an empty allow list", func(t *testing.T) {
		assert.Empty(t, chunkRoleButtons(nil, []string{"1"}))
	})
}

func TestBuildRolesResponse(t *testing.T) {
	ctx := context.Background()

	t.Run("builds buttons for the enabled roles", func(t *testing.T) {
		registry, mockDiscord, mockConfigs := newTestRegistry()
		liveRoles := []clients.DiscordRole{
			{ID: "100", Name: "Gaming"},
			{ID: "200", Name: "Music"},
		}
		mockDiscord.On("GetGuildRoles", ctx, "guild_1").Return(liveRoles, nil)
		mockConfigs.On("GetEnabledRoles", ctx, "guild_1", liveRoles).
			Return([]clients.DiscordRole{{ID: "200", Name: "Music"}}, nil)

		response := registry.BuildRolesResponse(ctx, "guild_1", []string{"200"}, clients.InteractionResponseReply)

		assert.Equal(t, clients.InteractionResponseReply, response.Kind)
		assert.True(t, response.Ephemeral)
		assert.Len(t, response.ButtonRows, 1)
		assert.Equal(t, clients.RoleButton{RoleID: "200", Label: "Music", Selected: true},
			response.ButtonRows[0][0])
	})

	t.Run("degrades to an error embed when roles cannot be fetched", func(t *testing.T) {
		registry, mockDiscord, _ := newTestRegistry()
		mockDiscord.On("GetGuildRoles", ctx, "guild_1").
			Return(nil, fmt.Errorf("discord api unavailable"))

		response := registry.BuildRolesResponse(ctx, "guild_1", nil, clients.InteractionResponseUpdateMessage)

		assert.Equal(t, clients.InteractionResponseUpdateMessage, response.Kind)
		assert.Empty(t, response.ButtonRows)
		assert.Len(t, response.Embeds, 1)
		assert.Equal(t, "Error", response.Embeds[0].Title)
	})
}
