package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/windedu/windtest-entry-app/internal/catalog"
	"github.com/windedu/windtest-entry-app/internal/config"
	"github.com/windedu/windtest-entry-app/internal/entry"
	"github.com/windedu/windtest-entry-app/internal/journal"
	"github.com/windedu/windtest-entry-app/internal/logger"
	"github.com/windedu/windtest-entry-app/internal/notion"
	"github.com/windedu/windtest-entry-app/internal/queue"
	"github.com/windedu/windtest-entry-app/internal/worker"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.Get()

	log.Info().Str("version", cfg.App.Version).Msg("Starting entry worker")

	// Initialize journal database
	database, err := journal.NewConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	repo := journal.NewRepository(database)

	// Initialize Redis client
	redisClient, err := queue.NewRedisClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	// Remote store client, catalog, and the entry pipeline
	notionClient := notion.NewClient(cfg)
	catalogSvc := catalog.NewService(notionClient, cfg)
	entrySvc := entry.NewService(notionClient, catalogSvc, cfg)

	entryWorker := worker.NewEntryWorker(cfg, repo, entrySvc, redisClient)
	refreshWorker := worker.NewRefreshWorker(cfg, catalogSvc)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Keep the catalog cache warm alongside the consumer
	go func() {
		if err := refreshWorker.Start(ctx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("Refresh worker stopped")
		}
	}()

	go func() {
		if err := entryWorker.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Entry worker failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down entry worker...")

	cancel()
	entryWorker.Stop()

	log.Info().Msg("Entry worker exited")
}
