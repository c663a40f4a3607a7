package commands

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"kronos/clients"
	"kronos/config"
	"kronos/models"
	"kronos/services"
)

// Command enumerates the slash commands the bot supports. Wire names parse
// into this closed set exactly once, at the dispatch boundary.
type Command string

const (
	CommandAbout     Command = "about"
	CommandChangelog Command = "changelog"
	CommandLatency   Command = "latency"
	CommandRoles     Command = "roles"
	CommandServer    Command = "server"
	CommandSetup     Command = "setup"
	CommandVerify    Command = "verify"
)

// ParseCommand maps a wire command name onto the supported set. The second
// return value is false for names the bot never registered.
func ParseCommand(name string) (Command, bool) {
	switch command := Command(name); command {
	case CommandAbout, CommandChangelog, CommandLatency, CommandRoles,
		CommandServer, CommandSetup, CommandVerify:
		return command, true
	}
	return "", false
}

// Registry owns command registration and dispatch. Handlers share the
// Discord client, the guild config store and the bot configuration.
type Registry struct {
	discordClient       clients.DiscordClient
	guildConfigsService services.GuildConfigsService
	cfg                 *config.AppConfig
}

func NewRegistry(
	discordClient clients.DiscordClient,
	guildConfigsService services.GuildConfigsService,
	cfg *config.AppConfig,
) *Registry {
	return &Registry{
		discordClient:       discordClient,
		guildConfigsService: guildConfigsService,
		cfg:                 cfg,
	}
}

// Register uploads all command schemas as one guild-scoped batch,
// overwriting whatever was registered before.
func (r *Registry) Register(ctx context.Context) error {
	specs := []*discordgo.ApplicationCommand{
		aboutCommand(),
		changelogCommand(),
		latencyCommand(),
		rolesCommand(),
		serverCommand(),
		setupCommand(),
		verifyCommand(),
	}

	registered, err := r.discordClient.RegisterGuildCommands(ctx, r.cfg.DiscordConfig.CommandGuildID, specs)
	if err != nil {
		return fmt.Errorf("failed to register guild commands: %w", err)
	}

	names := make([]string, 0, len(registered))
	for _, command := range registered {
		names = append(names, command.Name)
	}
	log.Printf("✅ Registered %d guild commands: %s", len(registered), strings.Join(names, ", "))
	return nil
}

// Dispatch routes a command invocation to its handler. Unknown names are a
// protocol anomaly (Discord should never send unregistered commands) and
// are logged and dropped without any remote call.
func (r *Registry) Dispatch(ctx context.Context, ic *models.InteractionContext) error {
	command, ok := ParseCommand(ic.Command.Name)
	if !ok {
		log.Printf("⚠️ Received unknown command %q - dropping interaction %s", ic.Command.Name, ic.ID)
		return nil
	}

	log.Printf("📋 Dispatching /%s for interaction %s", command, ic.ID)
	switch command {
	case CommandAbout:
		return r.handleAbout(ctx, ic)
	case CommandChangelog:
		return r.handleChangelog(ctx, ic)
	case CommandLatency:
		return r.handleLatency(ctx, ic)
	case CommandRoles:
		return r.handleRoles(ctx, ic)
	case CommandServer:
		return r.handleServer(ctx, ic)
	case CommandSetup:
		return r.handleSetup(ctx, ic)
	case CommandVerify:
		return r.handleVerify(ctx, ic)
	}
	return nil
}

// findOption returns the named option from an invocation's option list, or
// nil if it is not present.
func findOption(options []models.CommandOption, name string) *models.CommandOption {
	for i := range options {
		if options[i].Name == name {
			return &options[i]
		}
	}
	return nil
}
