package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	// necessary import to wire up the postgres driver
	_ "github.com/lib/pq"

	"kronos/models"
)

type PostgresGuildConfigsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for guild_configs table
var guildConfigsColumns = []string{
	"id",
	"member_count",
	"updated_messages_channel",
	"deleted_messages_channel",
	"rules_channel",
	"enabled_roles",
	"revision",
	"created_at",
	"updated_at",
}

func NewPostgresGuildConfigsRepository(db *sqlx.DB, schema string) *PostgresGuildConfigsRepository {
	return &PostgresGuildConfigsRepository{db: db, schema: schema}
}

func (r *PostgresGuildConfigsRepository) GetGuildConfig(
	ctx context.Context,
	guildID string,
) (mo.Option[*models.GuildConfig], error) {
	if guildID == "" {
		return mo.None[*models.GuildConfig](), fmt.Errorf("guild ID cannot be empty")
	}

	columnsStr := strings.Join(guildConfigsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.guild_configs
		WHERE id = $1`, columnsStr, r.schema)

	var config models.GuildConfig
	err := r.db.GetContext(ctx, &config, query, guildID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.GuildConfig](), nil
		}
		return mo.None[*models.GuildConfig](), fmt.Errorf("failed to get guild config: %w", err)
	}

	return mo.Some(&config), nil
}

func (r *PostgresGuildConfigsRepository) CreateGuildConfig(
	ctx context.Context,
	config *models.GuildConfig,
) error {
	insertColumns := []string{
		"id",
		"member_count",
		"updated_messages_channel",
		"deleted_messages_channel",
		"rules_channel",
		"enabled_roles",
	}
	columnsStr := strings.Join(insertColumns, ", ")
	returningStr := strings.Join(guildConfigsColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.guild_configs (%s, revision, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 1, NOW(), NOW())
		RETURNING %s`, r.schema, columnsStr, returningStr)

	err := r.db.QueryRowxContext(
		ctx,
		query,
		config.ID,
		config.MemberCount,
		config.UpdatedMessagesChannel,
		config.DeletedMessagesChannel,
		config.RulesChannel,
		config.EnabledRoles,
	).StructScan(config)
	if err != nil {
		return fmt.Errorf("failed to create guild config: %w", err)
	}

	return nil
}

// ReplaceGuildConfig overwrites the full row, but only if the stored
// revision still matches the one the caller read. Returns false without an
// error when the revision moved on (or the row is gone) so callers can
// re-read and retry the mutation.
func (r *PostgresGuildConfigsRepository) ReplaceGuildConfig(
	ctx context.Context,
	config *models.GuildConfig,
) (bool, error) {
	returningStr := strings.Join(guildConfigsColumns, ", ")

	query := fmt.Sprintf(`
		UPDATE %s.guild_configs
		SET member_count = $2,
		    updated_messages_channel = $3,
		    deleted_messages_channel = $4,
		    rules_channel = $5,
		    enabled_roles = $6,
		    revision = revision + 1,
		    updated_at = NOW()
		WHERE id = $1 AND revision = $7
		RETURNING %s`, r.schema, returningStr)

	err := r.db.QueryRowxContext(
		ctx,
		query,
		config.ID,
		config.MemberCount,
		config.UpdatedMessagesChannel,
		config.DeletedMessagesChannel,
		config.RulesChannel,
		config.EnabledRoles,
		config.Revision,
	).StructScan(config)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to replace guild config: %w", err)
	}

	return true, nil
}
