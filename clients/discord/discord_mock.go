package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"

	"kronos/clients"
)

// MockDiscordClient is a mock implementation of the clients.DiscordClient interface
type MockDiscordClient struct {
	mock.Mock
}

func (m *MockDiscordClient) GetBotUser(ctx context.Context) (*clients.DiscordUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordUser), args.Error(1)
}

func (m *MockDiscordClient) GetGuild(ctx context.Context, guildID string) (*clients.DiscordGuild, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordGuild), args.Error(1)
}

func (m *MockDiscordClient) GetGuildMemberCount(ctx context.Context, guildID string) (int, error) {
	args := m.Called(ctx, guildID)
	return args.Int(0), args.Error(1)
}

func (m *MockDiscordClient) GetGuildRoles(ctx context.Context, guildID string) ([]clients.DiscordRole, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]clients.DiscordRole), args.Error(1)
}

func (m *MockDiscordClient) AddMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	args := m.Called(ctx, guildID, userID, roleID)
	return args.Error(0)
}

func (m *MockDiscordClient) RemoveMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	args := m.Called(ctx, guildID, userID, roleID)
	return args.Error(0)
}

func (m *MockDiscordClient) RespondToInteraction(
	ctx context.Context,
	interactionID, token string,
	response *clients.InteractionResponse,
) error {
	args := m.Called(ctx, interactionID, token, response)
	return args.Error(0)
}

func (m *MockDiscordClient) EditInteractionResponse(ctx context.Context, token, content string) error {
	args := m.Called(ctx, token, content)
	return args.Error(0)
}

func (m *MockDiscordClient) RegisterGuildCommands(
	ctx context.Context,
	guildID string,
	commands []*discordgo.ApplicationCommand,
) ([]*discordgo.ApplicationCommand, error) {
	args := m.Called(ctx, guildID, commands)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*discordgo.ApplicationCommand), args.Error(1)
}
