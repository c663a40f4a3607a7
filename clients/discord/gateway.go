package discord

import (
	"fmt"
	"log"
	"sync"

	"github.com/bwmarrin/discordgo"

	"kronos/models"
)

// eventBufferSize bounds how far gateway decoding may run ahead of the
// dispatcher before applying backpressure.
const eventBufferSize = 64

// GatewayClient owns the gateway side of a discordgo session. It decodes
// the raw events the bot cares about into model events and exposes them as
// a channel. The channel is never closed; consumers stop via their own
// cancellation signal.
type GatewayClient struct {
	session *discordgo.Session
	events  chan models.GatewayEvent

	done      chan struct{}
	closeOnce sync.Once
}

// NewGatewayClient creates a gateway client over an existing session. Event
// handlers are registered immediately; nothing flows until Open is called.
func NewGatewayClient(session *discordgo.Session) *GatewayClient {
	g := &GatewayClient{
		session: session,
		events:  make(chan models.GatewayEvent, eventBufferSize),
		done:    make(chan struct{}),
	}

	session.AddHandler(g.onReady)
	session.AddHandler(g.onInteractionCreate)
	session.AddHandler(g.onGuildCreate)
	session.AddHandler(g.onDisconnect)

	return g
}

// Open connects to the gateway and sets the bot presence.
func (g *GatewayClient) Open() error {
	if err := g.session.Open(); err != nil {
		return fmt.Errorf("failed to open gateway connection: %w", err)
	}
	log.Printf("✅ Gateway connection established (shard %d of %d)",
		g.session.ShardID, max(g.session.ShardCount, 1))

	if err := g.session.UpdateWatchStatus(0, "the Olymp"); err != nil {
		log.Printf("⚠️ Failed to set presence: %v", err)
	}
	return nil
}

// Events returns the stream of decoded gateway events.
func (g *GatewayClient) Events() <-chan models.GatewayEvent {
	return g.events
}

// Close begins an orderly gateway shutdown. Handlers still in flight stop
// publishing; buffered events may remain undelivered.
func (g *GatewayClient) Close() error {
	g.closeOnce.Do(func() {
		close(g.done)
	})
	if err := g.session.Close(); err != nil {
		return fmt.Errorf("failed to close gateway connection: %w", err)
	}
	return nil
}

// publish forwards an event unless shutdown already began.
func (g *GatewayClient) publish(event models.GatewayEvent) {
	select {
	case <-g.done:
	case g.events <- event:
	}
}

func (g *GatewayClient) onReady(_ *discordgo.Session, ready *discordgo.Ready) {
	event := &models.ReadyEvent{
		BotUsername: ready.User.Username,
		ShardID:     g.session.ShardID,
		ShardCount:  max(g.session.ShardCount, 1),
	}
	g.publish(models.GatewayEvent{Kind: models.GatewayEventReady, Ready: event})
}

func (g *GatewayClient) onInteractionCreate(_ *discordgo.Session, interaction *discordgo.InteractionCreate) {
	ic := DecodeInteraction(interaction)
	if ic == nil {
		return
	}
	g.publish(models.GatewayEvent{Kind: models.GatewayEventInteractionCreate, Interaction: ic})
}

func (g *GatewayClient) onGuildCreate(_ *discordgo.Session, guild *discordgo.GuildCreate) {
	event := &models.GuildObservedEvent{
		GuildID:     guild.ID,
		MemberCount: int64(guild.MemberCount),
	}
	g.publish(models.GatewayEvent{Kind: models.GatewayEventGuildObserved, GuildObserved: event})
}

func (g *GatewayClient) onDisconnect(_ *discordgo.Session, _ *discordgo.Disconnect) {
	g.publish(models.GatewayEvent{Kind: models.GatewayEventDisconnect})
}

// DecodeInteraction converts a raw interaction-create payload into an
// InteractionContext. Payload kinds the bot does not handle come back with
// InteractionPayloadOther so the router can ignore them in one place.
// Returns nil only for payloads that are malformed beyond classification.
func DecodeInteraction(interaction *discordgo.InteractionCreate) *models.InteractionContext {
	if interaction == nil || interaction.Interaction == nil {
		return nil
	}

	ic := &models.InteractionContext{
		ID:      interaction.ID,
		Token:   interaction.Token,
		GuildID: interaction.GuildID,
		Kind:    models.InteractionPayloadOther,
	}

	if interaction.Member != nil && interaction.Member.User != nil {
		ic.Member = &models.MemberSnapshot{
			UserID:  interaction.Member.User.ID,
			RoleIDs: append([]string(nil), interaction.Member.Roles...),
		}
	}

	switch interaction.Type {
	case discordgo.InteractionApplicationCommand:
		data := interaction.ApplicationCommandData()
		ic.Kind = models.InteractionPayloadCommand
		ic.Command = &models.CommandInvocation{
			Name:    data.Name,
			Options: decodeOptions(data.Options),
		}
	case discordgo.InteractionMessageComponent:
		data := interaction.MessageComponentData()
		ic.Kind = models.InteractionPayloadComponent
		ic.Component = &models.ComponentActivation{CustomID: data.CustomID}
	}

	return ic
}

func decodeOptions(options []*discordgo.ApplicationCommandInteractionDataOption) []models.CommandOption {
	result := make([]models.CommandOption, 0, len(options))
	for _, option := range options {
		if option == nil {
			continue
		}

		decoded := models.CommandOption{
			Name:    option.Name,
			Kind:    models.CommandOptionKindOther,
			Options: decodeOptions(option.Options),
		}

		switch option.Type {
		case discordgo.ApplicationCommandOptionString:
			decoded.Kind = models.CommandOptionKindString
			if value, ok := option.Value.(string); ok {
				decoded.Value = value
			}
		case discordgo.ApplicationCommandOptionRole:
			decoded.Kind = models.CommandOptionKindRole
			if value, ok := option.Value.(string); ok {
				decoded.Value = value
			}
		case discordgo.ApplicationCommandOptionSubCommand:
			decoded.Kind = models.CommandOptionKindSubCommand
		case discordgo.ApplicationCommandOptionSubCommandGroup:
			decoded.Kind = models.CommandOptionKindSubCommandGroup
		}

		result = append(result, decoded)
	}
	return result
}
