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

func verifyInteraction(password string) *models.InteractionContext {
	return commandInteraction("verify", models.CommandOption{
		Name:  "password",
		Kind:  models.CommandOptionKindString,
		Value: password,
	})
}

func TestHandleVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("grants the verified role for the correct password", func(t *testing.T) {
		registry, mockDiscord, _ := newTestRegistry()
		mockDiscord.On("AddMemberRole", ctx, "guild_1", "user_1", "role_verified").Return(nil)
		mockDiscord.On("RespondToInteraction", ctx, "int_1", "token_1",
			mock.MatchedBy(func(response *clients.InteractionResponse) bool {
				return response.Ephemeral &&
					response.Embeds[0].Description == "You are now verified :white_check_mark:"
			})).Return(nil)

		err := registry.Dispatch(ctx, verifyInteraction("kartoffelsalat"))

		assert.NoError(t, err)
		mockDiscord.AssertExpectations(t)
	})

	t.Run("accepts the password case-insensitively", func(t *testing.T) {
		registry, mockDiscord, _ := newTestRegistry()
		mockDiscord.On("AddMemberRole", ctx, "guild_1", "user_1", "role_verified").Return(nil)
		mockDiscord.On("RespondToInteraction", ctx, "int_1", "token_1", mock.Anything).Return(nil)

		err := registry.Dispatch(ctx, verifyInteraction("KartoffelSalat"))

		assert.NoError(t, err)
		mockDiscord.AssertExpectations(t)
	})

	t.Run("rejects a wrong password without granting the role", func(t *testing.T) {
		registry, mockDiscord, _ := newTestRegistry()
		mockDiscord.On("RespondToInteraction", ctx, "int_1", "token_1",
			mock.MatchedBy(func(response *clients.InteractionResponse) bool {
				return response.Embeds[0].Description == "Wrong password :x:"
			})).Return(nil)

		err := registry.Dispatch(ctx, verifyInteraction("gurkensalat"))

		assert.NoError(t, err)
		mockDiscord.AssertNotCalled(t, "AddMemberRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("fails when the password option is missing", func(t *testing.T) {
		registry, mockDiscord, _ := newTestRegistry()

		err := registry.Dispatch(ctx, commandInteraction("verify"))

		assert.Error(t, err)
		mockDiscord.AssertNotCalled(t, "RespondToInteraction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("surfaces role grant failures", func(t *testing.T) {
		registry, mockDiscord, _ := newTestRegistry()
		mockDiscord.On("AddMemberRole", ctx, "guild_1", "user_1", "role_verified").
			Return(fmt.Errorf("missing permissions"))

		err := registry.Dispatch(ctx, verifyInteraction("kartoffelsalat"))

		assert.Error(t, err)
		mockDiscord.AssertNotCalled(t, "RespondToInteraction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ignores invocations outside a guild", func(t *testing.T) {
		registry, mockDiscord, _ := newTestRegistry()

		ic := verifyInteraction("kartoffelsalat")
		ic.GuildID = ""
		ic.Member = nil
		err := registry.Dispatch(ctx, ic)

		assert.NoError(t, err)
		mockDiscord.AssertNotCalled(t, "RespondToInteraction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
