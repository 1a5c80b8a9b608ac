package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"post-stats-pipeline/internal/api"
	"post-stats-pipeline/internal/api/handler"
	"post-stats-pipeline/internal/app"
	"post-stats-pipeline/internal/config"
	"post-stats-pipeline/pkg/router"
)

// @title Post Stats Pipeline API
// @version 1.0
// @description Imports Meta post statistics exports and serves per-account and per-post-type views.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	// Init store, blob backend and coordinator
	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Startup failed: %v", err)
	}
	defer a.Close()

	h := handler.NewHandlers(a.Coordinator, a.Resolver, a.DB.HealthCheck, cfg.Import.MaxUploadSize)

	// Create router
	r := router.New()

	// Register API routes
	api.RegisterRoutes(r, h)

	// Start server
	if err := r.Start(ctx, fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		log.Fatalf("❌ Server error: %v", err)
	}
}
