package guildconfigs

import (
	"context"
	"fmt"
	"log"
	"slices"

	"github.com/samber/mo"

	"kronos/clients"
	"kronos/core"
	"kronos/models"
)

// maxReplaceRetries bounds how often a read-modify-write cycle is retried
// when the revision check detects a concurrent update.
const maxReplaceRetries = 3

// GuildConfigsRepository defines the interface for guild config repository operations
type GuildConfigsRepository interface {
	GetGuildConfig(ctx context.Context, guildID string) (mo.Option[*models.GuildConfig], error)
	CreateGuildConfig(ctx context.Context, config *models.GuildConfig) error
	ReplaceGuildConfig(ctx context.Context, config *models.GuildConfig) (bool, error)
}

type GuildConfigsService struct {
	guildConfigsRepo GuildConfigsRepository
}

func NewGuildConfigsService(repo GuildConfigsRepository) *GuildConfigsService {
	return &GuildConfigsService{guildConfigsRepo: repo}
}

func (s *GuildConfigsService) GetGuildConfig(
	ctx context.Context,
	guildID string,
) (mo.Option[*models.GuildConfig], error) {
	if guildID == "" {
		return mo.None[*models.GuildConfig](), fmt.Errorf("guild ID cannot be empty")
	}
	return s.guildConfigsRepo.GetGuildConfig(ctx, guildID)
}

// CreateGuildConfigIfAbsent creates the default config record for a guild
// on first sight. Calling it again for the same guild is a logged no-op.
func (s *GuildConfigsService) CreateGuildConfigIfAbsent(
	ctx context.Context,
	guildID string,
	memberCount int64,
) error {
	if guildID == "" {
		return fmt.Errorf("guild ID cannot be empty")
	}

	maybeConfig, err := s.guildConfigsRepo.GetGuildConfig(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to check for existing guild config: %w", err)
	}
	if maybeConfig.IsPresent() {
		log.Printf("📋 Guild config for %s already exists - skipping creation", guildID)
		return nil
	}

	config := models.NewGuildConfig(guildID, memberCount)
	if err := s.guildConfigsRepo.CreateGuildConfig(ctx, config); err != nil {
		// Two guild-observed events can race here; losing the insert race
		// still leaves exactly one record, which is all that matters.
		maybeConfig, getErr := s.guildConfigsRepo.GetGuildConfig(ctx, guildID)
		if getErr == nil && maybeConfig.IsPresent() {
			log.Printf("📋 Guild config for %s was created concurrently - skipping creation", guildID)
			return nil
		}
		return fmt.Errorf("failed to create guild config: %w", err)
	}

	log.Printf("✅ Created guild config for guild %s", guildID)
	return nil
}

// GetEnabledRoleIDs returns the allow-list for the self-service roles
// feature. A missing record reads as an empty list so stale buttons fail
// closed; the anomaly is logged since setup normally runs after the
// record exists.
func (s *GuildConfigsService) GetEnabledRoleIDs(ctx context.Context, guildID string) ([]string, error) {
	maybeConfig, err := s.guildConfigsRepo.GetGuildConfig(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}
	if !maybeConfig.IsPresent() {
		log.Printf("⚠️ Queried enabled role IDs for unknown guild %s - returning empty list", guildID)
		return []string{}, nil
	}

	config := maybeConfig.MustGet()
	return append([]string(nil), config.EnabledRoles...), nil
}

// GetEnabledRoles intersects the guild's live roles with the stored
// allow-list. The result follows the STORED list's order, which drives
// button order, not the order Discord returns roles in.
func (s *GuildConfigsService) GetEnabledRoles(
	ctx context.Context,
	guildID string,
	liveRoles []clients.DiscordRole,
) ([]clients.DiscordRole, error) {
	maybeConfig, err := s.guildConfigsRepo.GetGuildConfig(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}
	if !maybeConfig.IsPresent() {
		return nil, fmt.Errorf("failed to get enabled roles for unknown guild %s: %w", guildID, core.ErrNotFound)
	}

	config := maybeConfig.MustGet()
	liveByID := make(map[string]clients.DiscordRole, len(liveRoles))
	for _, role := range liveRoles {
		liveByID[role.ID] = role
	}

	enabled := make([]clients.DiscordRole, 0, len(config.EnabledRoles))
	for _, roleID := range config.EnabledRoles {
		if role, ok := liveByID[roleID]; ok {
			enabled = append(enabled, role)
		}
	}
	return enabled, nil
}

// EnableRole appends a role to the allow-list. Callers guarantee the role
// is not already enabled; the data model itself does not deduplicate.
func (s *GuildConfigsService) EnableRole(ctx context.Context, guildID, roleID string) error {
	for attempt := 0; attempt < maxReplaceRetries; attempt++ {
		maybeConfig, err := s.guildConfigsRepo.GetGuildConfig(ctx, guildID)
		if err != nil {
			return fmt.Errorf("failed to get guild config: %w", err)
		}
		if !maybeConfig.IsPresent() {
			return fmt.Errorf("failed to enable role for unknown guild %s: %w", guildID, core.ErrNotFound)
		}

		config := maybeConfig.MustGet()
		config.EnabledRoles = append(config.EnabledRoles, roleID)

		replaced, err := s.guildConfigsRepo.ReplaceGuildConfig(ctx, config)
		if err != nil {
			return fmt.Errorf("failed to update guild config: %w", err)
		}
		if replaced {
			log.Printf("✅ Enabled role %s for guild %s", roleID, guildID)
			return nil
		}
		log.Printf("🔄 Concurrent guild config update for %s detected - retrying enable", guildID)
	}

	return fmt.Errorf("failed to enable role %s for guild %s: too many concurrent updates", roleID, guildID)
}

// DisableRole removes all matching entries from the allow-list. Disabling
// a role that is not enabled is a logged no-op.
func (s *GuildConfigsService) DisableRole(ctx context.Context, guildID, roleID string) error {
	for attempt := 0; attempt < maxReplaceRetries; attempt++ {
		maybeConfig, err := s.guildConfigsRepo.GetGuildConfig(ctx, guildID)
		if err != nil {
			return fmt.Errorf("failed to get guild config: %w", err)
		}
		if !maybeConfig.IsPresent() {
			return fmt.Errorf("failed to disable role for unknown guild %s: %w", guildID, core.ErrNotFound)
		}

		config := maybeConfig.MustGet()
		if !slices.Contains(config.EnabledRoles, roleID) {
			log.Printf("📋 Role %s is already disabled for guild %s", roleID, guildID)
			return nil
		}
		config.EnabledRoles = slices.DeleteFunc(config.EnabledRoles, func(id string) bool {
			return id == roleID
		})

		replaced, err := s.guildConfigsRepo.ReplaceGuildConfig(ctx, config)
		if err != nil {
			return fmt.Errorf("failed to update guild config: %w", err)
		}
		if replaced {
			log.Printf("✅ Disabled role %s for guild %s", roleID, guildID)
			return nil
		}
		log.Printf("🔄 Concurrent guild config update for %s detected - retrying disable", guildID)
	}

	return fmt.Errorf("failed to disable role %s for guild %s: too many concurrent updates", roleID, guildID)
}
