package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"kronos/clients"
	"kronos/config"
	"kronos/models"
)

func TestFormatChangelog(t *testing.T) {
	t.Run("renders the entry for a known version", func(t *testing.T) {
		embed, err := formatChangelog("0.2.0")

		assert.NoError(t, err)
		assert.Equal(t, "Changelog 0.2.0", embed.Title)
		assert.NotEmpty(t, embed.Fields)
		for _, field := range embed.Fields {
			assert.Contains(t, []string{"New", "Updated", "Removed"}, field.Name)
		}
	})

	t.Run("lists all known versions newest first", func(t *testing.T) {
		embed, err := formatChangelog("list")

		assert.NoError(t, err)
		assert.Equal(t, "Changelog", embed.Title)
		assert.Equal(t, "Available versions:\n0.2.0\n0.1.0", embed.Description)
	})

	t.Run("covers every version the option choices offer", func(t *testing.T) {
		for _, version := range changelogVersions {
			_, err := formatChangelog(version)
			assert.NoError(t, err, "version %s", version)
		}
	})
}

func TestHandleChangelog(t *testing.T) {
	ctx := context.Background()

	respondedTitle := func(mockDiscord *mock.Mock) *string {
		title := new(string)
		mockDiscord.On("RespondToInteraction", ctx, "int_1", "token_1",
			mock.MatchedBy(func(response *clients.InteractionResponse) bool {
				*title = response.Embeds[0].Title
				return response.Kind == clients.InteractionResponseReply && response.Ephemeral
			})).Return(nil)
		return title
	}

	t.Run("defaults to the current version without an option", func(t *testing.T) {
		registry, mockDiscord, _ := newTestRegistry()
		title := respondedTitle(&mockDiscord.Mock)

		err := registry.Dispatch(ctx, commandInteraction("changelog"))

		assert.NoError(t, err)
		assert.Equal(t, "Changelog "+config.Version, *title)
	})

	t.Run("uses the requested known version", func(t *testing.T) {
		registry, mockDiscord, _ := newTestRegistry()
		title := respondedTitle(&mockDiscord.Mock)

		err := registry.Dispatch(ctx, commandInteraction("changelog", models.CommandOption{
			Name:  "version",
			Kind:  models.CommandOptionKindString,
			Value: "0.1.0",
		}))

		assert.NoError(t, err)
		assert.Equal(t, "Changelog 0.1.0", *title)
	})

	t.Run("falls back to the current version for unknown requests", func(t *testing.T) {
		registry, mockDiscord, _ := newTestRegistry()
		title := respondedTitle(&mockDiscord.Mock)

		err := registry.Dispatch(ctx, commandInteraction("changelog", models.CommandOption{
			Name:  "version",
			Kind:  models.CommandOptionKindString,
			Value: "9.9.9",
		}))

		assert.NoError(t, err)
		assert.Equal(t, "Changelog "+config.Version, *title)
	})

	t.Run("rejects a version option of the wrong kind", func(t *testing.T) {
		registry, mockDiscord, _ := newTestRegistry()

		err := registry.Dispatch(ctx, commandInteraction("changelog", models.CommandOption{
			Name: "version",
			Kind: models.CommandOptionKindRole,
		}))

		assert.Error(t, err)
		mockDiscord.AssertNotCalled(t, "RespondToInteraction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
