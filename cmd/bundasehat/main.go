package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"bundasehat/internal/server"
)

var (
	port    = flag.Int("port", 8021, "Port for HTTP transport")
	host    = flag.String("host", "127.0.0.1", "Host address")
	dbPath  = flag.String("db-path", "bundasehat.db", "Database path")
	version = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Println("bundasehat version 1.0.0")
		os.Exit(0)
	}

	// Optional .env for the Gemini credential; a missing key just
	// degrades every AI call to its fallback value.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	config := &server.Config{
		Host:         *host,
		Port:         *port,
		DBPath:       *dbPath,
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
	}

	srv, err := server.NewTrackerServer(config)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting bundasehat on %s:%d", *host, *port)
		if err := srv.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-sigCh:
		log.Println("Received shutdown signal")
	case err := <-errCh:
		log.Printf("Server error: %v", err)
	}

	log.Println("Shutting down...")
	cancel()
	if err := srv.Stop(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}
