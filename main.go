package main

import (
	"chat-agent/config"
	"chat-agent/engine"
	"chat-agent/session"
	"chat-agent/web"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	// Initialize logger with default level to load config
	tempLogger, err := config.InitLogger("info")
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	// Load config (which includes log level setting)
	cfg := config.Load(tempLogger)

	// Re-initialize logger with configured level
	logger, err := config.InitLogger(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to re-initialize logger with configured level: %v\n", err)
		os.Exit(1)
	}
	defer config.Cleanup()

	store, err := session.NewStore(cfg.MaxSessions, cfg.HistoryLimit, logger)
	if err != nil {
		logger.Fatal("Failed to initialize session store", zap.Error(err))
	}

	chatEngine := engine.New(store, logger)

	// Initialize cleanup service and start background sweep routine
	cleanupService := web.NewCleanupService(store, logger)
	go web.StartSessionCleanup(ctx, cfg, cleanupService, logger)

	// Initialize web server
	webServer := web.NewServer(chatEngine, logger, cfg)

	// Create context that listens for interrupt signals
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Start web server
	port := fmt.Sprintf(":%d", cfg.WebPort)
	logger.Info("Starting chat agent web server", zap.String("port", port))
	if err := webServer.Start(ctx, port); err != nil {
		logger.Error("Web server error", zap.Error(err))
		os.Exit(1)
	}
}
