package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hospital-agent/agent"
	"hospital-agent/backend"
	"hospital-agent/config"
	"hospital-agent/prompts"
	"hospital-agent/search"
	"hospital-agent/session"
	"hospital-agent/tools"
	"hospital-agent/web"

	"github.com/tmc/langchaingo/llms/googleai"
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

	// Missing endpoints or API key fail startup, not individual requests.
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	model, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.GoogleAPIKey),
		googleai.WithDefaultModel(cfg.ModelName))
	if err != nil {
		logger.Fatal("Failed to initialize model client", zap.Error(err))
	}

	gateway := backend.New(cfg, logger)
	engine := search.New(gateway, cfg, logger)
	registry := tools.NewRegistry(engine, gateway, cfg, logger)
	sessions := session.NewStore(prompts.AssistantSystem())

	assistant := agent.New(cfg, model, registry, sessions, logger)

	webServer := web.NewServer(assistant, logger, cfg)

	// Create context that listens for interrupt signals
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := webServer.Start(ctx, cfg.ListenAddress); err != nil {
		logger.Error("Web server shutdown error", zap.Error(err))
	}
}
