package guildconfigs

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"kronos/clients"
	"kronos/models"
)

// MockGuildConfigsService is a mock implementation of the GuildConfigsService interface
type MockGuildConfigsService struct {
	mock.Mock
}

func (m *MockGuildConfigsService) GetGuildConfig(
	ctx context.Context,
	guildID string,
) (mo.Option[*models.GuildConfig], error) {
	args := m.Called(ctx, guildID)
	return args.Get(0).(mo.Option[*models.GuildConfig]), args.Error(1)
}

func (m *MockGuildConfigsService) CreateGuildConfigIfAbsent(
	ctx context.Context,
	guildID string,
	memberCount int64,
) error {
	args := m.Called(ctx, guildID, memberCount)
	return args.Error(0)
}

func (m *MockGuildConfigsService) GetEnabledRoleIDs(ctx context.Context, guildID string) ([]string, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockGuildConfigsService) GetEnabledRoles(
	ctx context.Context,
	guildID string,
	liveRoles []clients.DiscordRole,
) ([]clients.DiscordRole, error) {
	args := m.Called(ctx, guildID, liveRoles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]clients.DiscordRole), args.Error(1)
}

func (m *MockGuildConfigsService) EnableRole(ctx context.Context, guildID, roleID string) error {
	args := m.Called(ctx, guildID, roleID)
	return args.Error(0)
}

func (m *MockGuildConfigsService) DisableRole(ctx context.Context, guildID, roleID string) error {
	args := m.Called(ctx, guildID, roleID)
	return args.Error(0)
}
