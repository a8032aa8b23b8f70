// Package main implements the entry point for the todo API server.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"todoapi/internal/config"
	"todoapi/internal/platform/logger"
)

// main loads configuration, sets up logging, wires the application
// dependencies and runs the HTTP server until a shutdown signal.
func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up application components.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"store_backend", cfg.Database.Backend)

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to build application: %w", err)
	}

	return app, nil
}
