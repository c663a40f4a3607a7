package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"kronos/clients"
	"kronos/models"
)

// handleLatency defers the response, measures how long the initial
// acknowledgment round trip took, and reports it via a follow-up edit.
func (r *Registry) handleLatency(ctx context.Context, ic *models.InteractionContext) error {
	start := time.Now()
	err := r.discordClient.RespondToInteraction(ctx, ic.ID, ic.Token, &clients.InteractionResponse{
		Kind:      clients.InteractionResponseDeferredReply,
		Ephemeral: true,
	})
	if err != nil {
		return err
	}
	latency := time.Since(start)

	return r.discordClient.EditInteractionResponse(
		ctx,
		ic.Token,
		fmt.Sprintf("Latency is %dms", latency.Milliseconds()),
	)
}

func latencyCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "latency",
		Description: "Get the latency of the current shard",
		DescriptionLocalizations: &map[discordgo.Locale]string{
			discordgo.German: "Gib die Verzögerung vom aktuellen Shard zurück",
		},
	}
}
