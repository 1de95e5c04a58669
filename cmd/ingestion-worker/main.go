package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/windedu/windtest-entry-app/internal/catalog"
	"github.com/windedu/windtest-entry-app/internal/config"
	"github.com/windedu/windtest-entry-app/internal/journal"
	"github.com/windedu/windtest-entry-app/internal/logger"
	"github.com/windedu/windtest-entry-app/internal/notion"
	"github.com/windedu/windtest-entry-app/internal/queue"
	"github.com/windedu/windtest-entry-app/internal/storage"
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

	log.Info().Str("version", cfg.App.Version).Msg("Starting ingestion worker")

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

	// Initialize sheet storage
	store, err := storage.NewS3Storage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize S3 storage")
	}

	// Remote store client and catalog for label resolution
	notionClient := notion.NewClient(cfg)
	catalogSvc := catalog.NewService(notionClient, cfg)

	ingestionWorker := worker.NewIngestionWorker(cfg, repo, store, catalogSvc, redisClient)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := ingestionWorker.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Ingestion worker failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down ingestion worker...")

	cancel()
	ingestionWorker.Stop()

	log.Info().Msg("Ingestion worker exited")
}
