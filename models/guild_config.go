package models

import (
	"time"

	"github.com/lib/pq"
)

// GuildConfig is the per-guild configuration record, keyed by the Discord
// guild ID. It is created once on first sight of the guild and never
// deleted.
type GuildConfig struct {
	ID                     string  `db:"id"`
	MemberCount            int64   `db:"member_count"`
	UpdatedMessagesChannel *string `db:"updated_messages_channel"`
	DeletedMessagesChannel *string `db:"deleted_messages_channel"`
	RulesChannel           *string `db:"rules_channel"`
	// EnabledRoles is the allow-list for the self-service roles command.
	// Order is insertion order and drives button order. nil means the
	// feature was never enabled for this guild.
	EnabledRoles pq.StringArray `db:"enabled_roles"`
	// Revision guards full-row replacement against concurrent lost
	// updates. Bumped on every successful write.
	Revision  int64     `db:"revision"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewGuildConfig returns the default config for a freshly observed guild:
// no log channels, no enabled roles.
func NewGuildConfig(guildID string, memberCount int64) *GuildConfig {
	return &GuildConfig{
		ID:          guildID,
		MemberCount: memberCount,
	}
}
