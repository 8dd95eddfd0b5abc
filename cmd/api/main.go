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

// Headless variant: serves only the JSON API, no HTML rendering.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	registry := dashboard.NewRegistry(cfg, fetch.NewClient(cfg.HTTP.Timeout))
	go func() {
		if err := registry.WarmUp(context.Background()); err != nil {
			log.Printf("[main] warm-up finished with errors: %v", err)
		}
	}()

	app := ui.NewApp(registry)
	log.Fatal(app.Start(cfg.Server.Port))
}
