package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Build-time identity of the bot. These are compiled in rather than
// configured because they never vary between deployments.
const (
	Version        = "0.2.0"
	AuthorID       = "206815202375761920"
	RepoURL        = "https://github.com/Feleuxens/Kronos"
	VerifyPassword = "kartoffelsalat"
)

type DiscordConfig struct {
	BotToken       string
	CommandGuildID string
	VerifiedRoleID string
}

// IsConfigured returns true if all required Discord configuration is present
func (c DiscordConfig) IsConfigured() bool {
	return c.BotToken != "" &&
		c.CommandGuildID != "" &&
		c.VerifiedRoleID != ""
}

type AppConfig struct {
	// Core configuration (always required)
	DatabaseURL    string
	DatabaseSchema string
	Port           string // Optional with default "8080"

	DiscordConfig DiscordConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	databaseURL, err := getEnvRequired("DB_URL")
	if err != nil {
		return nil, err
	}

	databaseSchema, err := getEnvRequired("DB_SCHEMA")
	if err != nil {
		return nil, err
	}

	botToken, err := getEnvRequired("DISCORD_BOT_TOKEN")
	if err != nil {
		return nil, err
	}

	commandGuildID, err := getEnvRequired("COMMAND_GUILD_ID")
	if err != nil {
		return nil, err
	}

	verifiedRoleID, err := getEnvRequired("VERIFIED_ROLE_ID")
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		DatabaseURL:    databaseURL,
		DatabaseSchema: databaseSchema,
		Port:           getEnvWithDefault("PORT", "8080"),
		DiscordConfig: DiscordConfig{
			BotToken:       botToken,
			CommandGuildID: commandGuildID,
			VerifiedRoleID: verifiedRoleID,
		},
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
