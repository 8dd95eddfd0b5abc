package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"epiview/internal/config"
	"epiview/internal/dashboard"
	"epiview/internal/fetch"
	"epiview/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client := fetch.NewClient(cfg.HTTP.Timeout)
	registry := dashboard.NewRegistry(cfg, client)

	// Warm the dataset views in the background so the first page hit usually
	// finds them ready; a slow or failing feed still renders as its own
	// loading/error state.
	go func() {
		if err := registry.WarmUp(context.Background()); err != nil {
			log.Printf("[main] warm-up finished with errors: %v", err)
		}
	}()

	server, err := ui.NewServer(registry, cfg.Server.GinMode)
	if err != nil {
		log.Fatalf("Failed to create UI server: %v", err)
	}

	log.Printf("Starting epiview on http://localhost:%s", cfg.Server.Port)
	log.Fatal(server.Run(cfg.Server.Port))
}
