package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/solobuddy/hub/internal/activity"
	"github.com/solobuddy/hub/internal/bot"
	"github.com/solobuddy/hub/internal/chat"
	"github.com/solobuddy/hub/internal/classifier"
	"github.com/solobuddy/hub/internal/intent"
	"github.com/solobuddy/hub/internal/server"
	"github.com/solobuddy/hub/internal/storage"
	"github.com/solobuddy/hub/pkg/config"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize storage
	var store storage.Storage
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory storage")
		store = storage.NewMemoryStorage()
	} else {
		logger.Info("Using PostgreSQL storage")
		store, err = storage.NewPostgresStorage(storage.DatabaseConfig{
			Host:        cfg.Database.Host,
			Port:        cfg.Database.Port,
			User:        cfg.Database.User,
			Password:    cfg.Database.Password,
			DBName:      cfg.Database.DBName,
			SSLMode:     cfg.Database.SSLMode,
			UseInMemory: cfg.Database.UseInMemory,
		})
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	}
	defer store.Close()

	// Git activity scanner
	scanner := activity.NewScanner(logger)

	// Gray-zone semantic classifier + hybrid resolver
	remote := classifier.NewLLMClassifier(
		cfg.Classifier.APIKey,
		cfg.Classifier.BaseURL,
		cfg.Classifier.Model,
		logger,
	)
	resolver := intent.NewResolver(remote,
		time.Duration(cfg.Classifier.TimeoutSeconds)*time.Second, logger)

	// Conversational fallback
	responder := chat.NewResponder(
		cfg.Chat.APIKey,
		cfg.Chat.BaseURL,
		cfg.Chat.Model,
		cfg.Chat.MaxTokens,
		cfg.Chat.Temperature,
		logger,
	)

	// Optional telegram gateway
	if cfg.Telegram.Enabled {
		b, err := bot.New(cfg.Telegram.Token, store, scanner, resolver, cfg.Watcher.MaxProjects, logger)
		if err != nil {
			logger.Fatal("Failed to create telegram bot", zap.Error(err))
		}
		go func() {
			if err := b.Start(); err != nil {
				logger.Error("Telegram bot error", zap.Error(err))
			}
		}()
	}

	// HTTP surface
	srv := server.New(store, scanner, resolver, responder, cfg.Watcher.MaxProjects, logger)
	logger.Info("Starting hub", zap.String("address", cfg.Server.Address))
	if err := srv.Start(cfg.Server.Address); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
