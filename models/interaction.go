package models

// InteractionPayloadKind classifies what a user-initiated interaction
// carries: a slash command invocation, a message component activation, or
// something the bot intentionally ignores (e.g. modal submissions).
type InteractionPayloadKind string

const (
	InteractionPayloadCommand   InteractionPayloadKind = "command"
	InteractionPayloadComponent InteractionPayloadKind = "component"
	InteractionPayloadOther     InteractionPayloadKind = "other"
)

type CommandOptionKind string

const (
	CommandOptionKindString          CommandOptionKind = "string"
	CommandOptionKindRole            CommandOptionKind = "role"
	CommandOptionKindSubCommand      CommandOptionKind = "subcommand"
	CommandOptionKindSubCommandGroup CommandOptionKind = "subcommand_group"
	CommandOptionKindOther           CommandOptionKind = "other"
)

// CommandOption is one node of the option tree sent with a command
// invocation. Subcommand groups and subcommands nest via Options.
type CommandOption struct {
	Name    string
	Kind    CommandOptionKind
	Value   string
	Options []CommandOption
}

type CommandInvocation struct {
	Name    string
	Options []CommandOption
}

// ComponentActivation carries the opaque custom ID of the activated UI
// component. For role toggle buttons the custom ID is the role snowflake.
type ComponentActivation struct {
	CustomID string
}

// MemberSnapshot is the invoking member's state at interaction time. The
// role list may be stale relative to concurrent mutations.
type MemberSnapshot struct {
	UserID  string
	RoleIDs []string
}

// InteractionContext is the decoded form of one inbound interaction. It is
// consumed synchronously by exactly one handler and never persisted; the
// ID/token pair is single-use.
type InteractionContext struct {
	ID      string
	Token   string
	GuildID string // empty for direct-message contexts
	Member  *MemberSnapshot
	Kind    InteractionPayloadKind

	// Exactly one of these is set, matching Kind.
	Command   *CommandInvocation
	Component *ComponentActivation
}
