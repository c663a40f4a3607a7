package dispatcher

import (
	"context"
	"log"
	"sync"
	"time"

	"kronos/core"
	"kronos/models"
	"kronos/services"
)

// InteractionProcessor handles one decoded interaction end to end. It must
// not panic and must not return; failures are its own to log.
type InteractionProcessor interface {
	ProcessInteraction(ctx context.Context, ic *models.InteractionContext)
}

// Dispatcher drains the gateway event stream. Interactions fan out into
// goroutines so a slow handler never blocks the stream; everything else is
// handled inline. In-flight handlers are tracked so shutdown can wait for
// them.
type Dispatcher struct {
	interactionsProcessor InteractionProcessor
	guildConfigsService   services.GuildConfigsService

	inFlight sync.WaitGroup
}

func NewDispatcher(
	interactionsProcessor InteractionProcessor,
	guildConfigsService services.GuildConfigsService,
) *Dispatcher {
	return &Dispatcher{
		interactionsProcessor: interactionsProcessor,
		guildConfigsService:   guildConfigsService,
	}
}

// Run consumes events until ctx is cancelled or the stream closes. Events
// are picked up in arrival order; interaction handlers then run
// concurrently and may complete in any order.
func (d *Dispatcher) Run(ctx context.Context, events <-chan models.GatewayEvent) {
	log.Printf("📋 Event dispatcher started")
	for {
		select {
		case <-ctx.Done():
			log.Printf("📋 Event dispatcher stopping: %v", ctx.Err())
			return
		case event, ok := <-events:
			if !ok {
				log.Printf("📋 Event dispatcher stopping: event stream closed")
				return
			}
			d.dispatch(ctx, event)
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, event models.GatewayEvent) {
	switch event.Kind {
	case models.GatewayEventInteractionCreate:
		if event.Interaction == nil {
			log.Printf("⚠️ Interaction event arrived without a payload - dropping")
			return
		}
		taskID := core.NewID("evt")
		// Handlers keep running across loop cancellation so shutdown can
		// drain them; stragglers are abandoned, never cancelled mid-flight.
		handlerCtx := context.WithoutCancel(ctx)
		d.inFlight.Add(1)
		go func() {
			defer d.inFlight.Done()
			log.Printf("📋 Handling interaction %s (task %s)", event.Interaction.ID, taskID)
			d.interactionsProcessor.ProcessInteraction(handlerCtx, event.Interaction)
			log.Printf("📋 Finished interaction %s (task %s)", event.Interaction.ID, taskID)
		}()

	case models.GatewayEventGuildObserved:
		if event.GuildObserved == nil {
			log.Printf("⚠️ Guild event arrived without a payload - dropping")
			return
		}
		guild := event.GuildObserved
		handlerCtx := context.WithoutCancel(ctx)
		d.inFlight.Add(1)
		go func() {
			defer d.inFlight.Done()
			err := d.guildConfigsService.CreateGuildConfigIfAbsent(handlerCtx, guild.GuildID, guild.MemberCount)
			if err != nil {
				log.Printf("❌ Failed to ensure config for guild %s: %v", guild.GuildID, err)
			}
		}()

	case models.GatewayEventReady:
		if event.Ready != nil {
			log.Printf("✅ Gateway ready as %s (shard %d of %d)",
				event.Ready.BotUsername, event.Ready.ShardID, event.Ready.ShardCount)
		}

	case models.GatewayEventDisconnect:
		log.Printf("⚠️ Gateway disconnected, discordgo will reconnect")

	default:
		log.Printf("⚠️ Unknown gateway event kind %q - dropping", event.Kind)
	}
}

// WaitForInFlight blocks until all interaction handlers spawned so far have
// finished, or until the timeout elapses. Returns false on timeout.
func (d *Dispatcher) WaitForInFlight(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		d.inFlight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
