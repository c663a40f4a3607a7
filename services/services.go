package services

import (
	"context"

	"github.com/samber/mo"

	"kronos/clients"
	"kronos/models"
)

// GuildConfigsService defines the interface for guild configuration operations
type GuildConfigsService interface {
	GetGuildConfig(ctx context.Context, guildID string) (mo.Option[*models.GuildConfig], error)
	CreateGuildConfigIfAbsent(ctx context.Context, guildID string, memberCount int64) error
	GetEnabledRoleIDs(ctx context.Context, guildID string) ([]string, error)
	GetEnabledRoles(
		ctx context.Context,
		guildID string,
		liveRoles []clients.DiscordRole,
	) ([]clients.DiscordRole, error)
	EnableRole(ctx context.Context, guildID, roleID string) error
	DisableRole(ctx context.Context, guildID, roleID string) error
}
