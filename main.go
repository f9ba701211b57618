package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/chat-relay/modules/api"
	"github.com/example/chat-relay/modules/broadcast"
	"github.com/example/chat-relay/modules/relay"
	"github.com/example/chat-relay/modules/stats"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Chat Relay - Fiber + EventBus Pubsub ===")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Create modules
	relayModule := relay.NewModule()
	broadcastModule := broadcast.NewModule()
	statsModule := stats.NewModule()
	apiModule := api.NewModule()

	// Wire the broadcast hub and relay module manually.
	// (The hub fan-out is synchronous and not exposed via ServiceContainer.)
	relayModule.SetBroadcaster(broadcastModule.GetHub())
	apiModule.SetHub(broadcastModule.GetHub())
	apiModule.SetRelay(relayModule)

	// Register modules with the framework.
	// Order: independent modules first, then modules with dependencies
	// - relay: Core domain (EventEmitterModule, session + room state)
	// - broadcast: WebSocket hub lifecycle
	// - stats: Event consumer (EventConsumerModule + ServiceProviderModule)
	// - api: Driving adapter (Fiber HTTP/WebSocket server, depends on stats)
	app.Register(relayModule)
	app.Register(broadcastModule)
	app.Register(statsModule)
	app.Register(apiModule)

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}

	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("Architecture:")
	log.Println("  - HTTP Framework: Fiber with WebSocket support")
	log.Println("  - Event Bus: NATS JetStream (internal pubsub)")
	log.Printf("  - NATS URL: %s", natsURL)
	log.Println("")
	log.Println("Event Stream:")
	log.Println("  - RoomCreated / UserJoined / UserLeft / MessageSent -> stats module")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%s):", port)
	log.Println("  GET    /                           - Liveness probe")
	log.Println("  GET    /health                     - Health check")
	log.Println("  GET    /api/v1/rooms               - List all rooms")
	log.Println("  GET    /api/v1/rooms/:code         - Get room details")
	log.Println("  GET    /api/v1/rooms/:code/history - Get message history")
	log.Println("  GET    /api/v1/stats               - Relay activity stats")
	log.Println("")
	log.Printf("WebSocket Endpoint (ws://localhost:%s/ws):", port)
	log.Println("  Inbound frames: set-identity, create-room, join-room, chat-message")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
