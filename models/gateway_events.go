package models

// GatewayEventKind enumerates the decoded gateway events the dispatcher
// cares about. Everything else is dropped at the transport boundary.
type GatewayEventKind string

const (
	GatewayEventInteractionCreate GatewayEventKind = "interaction_create"
	GatewayEventGuildObserved     GatewayEventKind = "guild_observed"
	GatewayEventReady             GatewayEventKind = "ready"
	GatewayEventDisconnect        GatewayEventKind = "disconnect"
)

// GuildObservedEvent fires when the gateway announces a guild the bot is
// in, both at connect time and when the bot joins a new guild.
type GuildObservedEvent struct {
	GuildID     string
	MemberCount int64
}

type ReadyEvent struct {
	BotUsername string
	ShardID     int
	ShardCount  int
}

// GatewayEvent is the sum of decoded gateway events. Kind determines
// which payload field is set.
type GatewayEvent struct {
	Kind          GatewayEventKind
	Interaction   *InteractionContext
	GuildObserved *GuildObservedEvent
	Ready         *ReadyEvent
}
