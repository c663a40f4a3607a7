package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"kronos/clients/discord"
	"kronos/commands"
	"kronos/config"
	"kronos/db"
	"kronos/dispatcher"
	"kronos/services/guildconfigs"
	"kronos/usecases/interactions"
)

// inFlightDrainTimeout bounds how long shutdown waits for interaction
// handlers that were already running when the stop signal arrived.
const inFlightDrainTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize database connection
	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	guildConfigsRepo := db.NewPostgresGuildConfigsRepository(dbConn, cfg.DatabaseSchema)
	guildConfigsService := guildconfigs.NewGuildConfigsService(guildConfigsRepo)

	// Connect to the gateway first; the application ID needed for
	// interaction responses is only known after identification.
	session, err := discordgo.New("Bot " + cfg.DiscordConfig.BotToken)
	if err != nil {
		return err
	}
	session.Identify.Intents = discordgo.IntentsAllWithoutPrivileged

	gateway := discord.NewGatewayClient(session)
	if err := gateway.Open(); err != nil {
		return err
	}
	defer func() {
		if err := gateway.Close(); err != nil {
			log.Printf("❌ Failed to close gateway: %v", err)
		}
	}()

	discordClient := discord.NewDiscordClient(session, session.State.User.ID)
	registry := commands.NewRegistry(discordClient, guildConfigsService, cfg)

	registerCtx, cancelRegister := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelRegister()
	if err := registry.Register(registerCtx); err != nil {
		// Stale schemas still dispatch; re-registration happens on the
		// next boot.
		log.Printf("⚠️ Command registration failed, continuing with previous schemas: %v", err)
	}

	interactionsUseCase := interactions.NewInteractionsUseCase(discordClient, guildConfigsService, registry)
	eventDispatcher := dispatcher.NewDispatcher(interactionsUseCase, guildConfigsService)

	dispatchCtx, cancelDispatch := context.WithCancel(context.Background())
	defer cancelDispatch()
	go eventDispatcher.Run(dispatchCtx, gateway.Events())

	// Health check endpoint
	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok","version":"` + config.Version + `"}`)); err != nil {
			log.Printf("❌ Failed to write health check response: %v", err)
		}
	}).Methods("GET")

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           cors.Default().Handler(router),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server, gateway, eventDispatcher, cancelDispatch)
}

func handleGracefulShutdown(
	server *http.Server,
	gateway *discord.GatewayClient,
	eventDispatcher *dispatcher.Dispatcher,
	cancelDispatch context.CancelFunc,
) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	// Stop intake first, then drain what was already running.
	if err := gateway.Close(); err != nil {
		log.Printf("❌ Gateway close error: %v", err)
	}
	cancelDispatch()
	if !eventDispatcher.WaitForInFlight(inFlightDrainTimeout) {
		log.Printf("⚠️ Gave up waiting for in-flight interactions after %s", inFlightDrainTimeout)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
