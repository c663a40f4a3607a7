package commands

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"

	"kronos/clients"
	"kronos/config"
	"kronos/models"
)

//go:embed changelog.json
var changelogData []byte

// changelogVersions lists every known version, newest first. It drives the
// option choices, the "list" output and the unknown-version fallback.
var changelogVersions = []string{"0.2.0", "0.1.0"}

type changelogEntry struct {
	New     []string `json:"new,omitempty"`
	Updated []string `json:"updated,omitempty"`
	Removed []string `json:"removed,omitempty"`
}

func (r *Registry) handleChangelog(ctx context.Context, ic *models.InteractionContext) error {
	version := config.Version
	if option := findOption(ic.Command.Options, "version"); option != nil {
		if option.Kind != models.CommandOptionKindString {
			return fmt.Errorf("changelog command received %s value for version option, expected string", option.Kind)
		}
		if option.Value == "list" || slices.Contains(changelogVersions, option.Value) {
			version = option.Value
		} else {
			log.Printf("⚠️ Got unknown changelog version %q - defaulting to current version", option.Value)
		}
	}

	embed, err := formatChangelog(version)
	if err != nil {
		return err
	}

	return r.discordClient.RespondToInteraction(ctx, ic.ID, ic.Token, &clients.InteractionResponse{
		Kind:      clients.InteractionResponseReply,
		Embeds:    []clients.Embed{embed},
		Ephemeral: true,
	})
}

func formatChangelog(version string) (clients.Embed, error) {
	var changelog map[string]changelogEntry
	if err := json.Unmarshal(changelogData, &changelog); err != nil {
		return clients.Embed{}, fmt.Errorf("failed to parse changelog data: %w", err)
	}

	if version == "list" {
		return clients.Embed{
			Title:       "Changelog",
			Description: "Available versions:\n" + strings.Join(changelogVersions, "\n"),
			Color:       colorGreen,
		}, nil
	}

	entry, ok := changelog[version]
	if !ok {
		return clients.Embed{}, fmt.Errorf("version %s is missing from the changelog data", version)
	}

	embed := clients.Embed{
		Title: fmt.Sprintf("Changelog %s", version),
		Color: colorGreen,
	}
	if len(entry.New) > 0 {
		embed.Fields = append(embed.Fields, clients.EmbedField{
			Name:   "New",
			Value:  bulletList(":small_blue_diamond:", entry.New),
			Inline: true,
		})
	}
	if len(entry.Updated) > 0 {
		embed.Fields = append(embed.Fields, clients.EmbedField{
			Name:   "Updated",
			Value:  bulletList(":small_orange_diamond:", entry.Updated),
			Inline: true,
		})
	}
	if len(entry.Removed) > 0 {
		embed.Fields = append(embed.Fields, clients.EmbedField{
			Name:   "Removed",
			Value:  bulletList(":small_red_triangle:", entry.Removed),
			Inline: true,
		})
	}

	return embed, nil
}

func bulletList(bullet string, items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, bullet+" "+item)
	}
	return strings.Join(lines, "\n")
}

func changelogCommand() *discordgo.ApplicationCommand {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(changelogVersions)+1)
	choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: "list", Value: "list"})
	for _, version := range changelogVersions {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: version, Value: version})
	}

	return &discordgo.ApplicationCommand{
		Name:        "changelog",
		Description: "See the bot's changelog",
		DescriptionLocalizations: &map[discordgo.Locale]string{
			discordgo.German: "Schau dir alle Änderungen am Bot an",
		},
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "version",
				Description: "Version",
				NameLocalizations: map[discordgo.Locale]string{
					discordgo.German: "version",
				},
				DescriptionLocalizations: map[discordgo.Locale]string{
					discordgo.German: "Version",
				},
				Choices: choices,
			},
		},
	}
}
