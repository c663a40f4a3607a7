package interactions

import (
	"context"
	"log"
	"slices"
	"strconv"

	"kronos/clients"
	"kronos/commands"
	"kronos/models"
	"kronos/services"
)

// InteractionsUseCase routes decoded gateway interactions to the command
// registry or the role toggle flow. It is the process boundary for
// interaction handling: failures are logged here and never propagate to
// the dispatcher.
type InteractionsUseCase struct {
	discordClient       clients.DiscordClient
	guildConfigsService services.GuildConfigsService
	registry            *commands.Registry
	roleToggler         *RoleToggler
}

func NewInteractionsUseCase(
	discordClient clients.DiscordClient,
	guildConfigsService services.GuildConfigsService,
	registry *commands.Registry,
) *InteractionsUseCase {
	return &InteractionsUseCase{
		discordClient:       discordClient,
		guildConfigsService: guildConfigsService,
		registry:            registry,
		roleToggler:         NewRoleToggler(discordClient),
	}
}

func (u *InteractionsUseCase) ProcessInteraction(ctx context.Context, ic *models.InteractionContext) {
	switch ic.Kind {
	case models.InteractionPayloadCommand:
		if ic.Command == nil {
			log.Printf("⚠️ Command interaction %s arrived without command data - ignoring", ic.ID)
			return
		}
		if err := u.registry.Dispatch(ctx, ic); err != nil {
			log.Printf("❌ Command /%s failed for interaction %s: %v", ic.Command.Name, ic.ID, err)
		}
	case models.InteractionPayloadComponent:
		u.processRoleToggle(ctx, ic)
	default:
		log.Printf("📋 Ignoring interaction %s of kind %s", ic.ID, ic.Kind)
	}
}

// processRoleToggle handles a role button press. The button custom ID is
// the role snowflake; it is re-validated against the guild's enabled-role
// allow list on every press so stale buttons from a previous configuration
// can never grant a role that has since been disabled.
func (u *InteractionsUseCase) processRoleToggle(ctx context.Context, ic *models.InteractionContext) {
	if ic.Component == nil {
		log.Printf("⚠️ Component interaction %s arrived without component data - ignoring", ic.ID)
		return
	}
	if ic.GuildID == "" || ic.Member == nil {
		log.Printf("📋 Component activation outside a guild - ignoring interaction %s", ic.ID)
		return
	}

	roleID := ic.Component.CustomID
	if _, err := strconv.ParseUint(roleID, 10, 64); err != nil {
		log.Printf("⚠️ Component custom ID %q is not a role snowflake - ignoring interaction %s", roleID, ic.ID)
		return
	}

	enabledRoleIDs, err := u.guildConfigsService.GetEnabledRoleIDs(ctx, ic.GuildID)
	if err != nil {
		log.Printf("❌ Failed to fetch enabled role IDs for guild %s: %v", ic.GuildID, err)
		return
	}
	if !slices.Contains(enabledRoleIDs, roleID) {
		log.Printf("📋 Role %s is not enabled for guild %s - ignoring stale button press", roleID, ic.GuildID)
		return
	}

	updatedRoles, err := u.roleToggler.Toggle(ctx, ic.GuildID, ic.Member.UserID, roleID, ic.Member.RoleIDs)
	if err != nil {
		log.Printf("❌ Failed to toggle role %s for member %s in guild %s: %v",
			roleID, ic.Member.UserID, ic.GuildID, err)
		return
	}

	response := u.registry.BuildRolesResponse(ctx, ic.GuildID, updatedRoles, clients.InteractionResponseUpdateMessage)
	if err := u.discordClient.RespondToInteraction(ctx, ic.ID, ic.Token, response); err != nil {
		log.Printf("❌ Failed to redraw roles message for interaction %s: %v", ic.ID, err)
	}
}
