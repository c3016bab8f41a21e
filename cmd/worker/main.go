package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/clipsmith/trendscout/internal/cache"
	"github.com/clipsmith/trendscout/internal/db"
	"github.com/clipsmith/trendscout/internal/pipeline"
	"github.com/clipsmith/trendscout/pkg/config"
	"github.com/clipsmith/trendscout/pkg/logging"
	"github.com/clipsmith/trendscout/pkg/telemetry"
)

func main() {
	once := flag.Bool("once", false, "run one ingestion batch and one refresh cycle, then exit")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting Trendscout Worker")

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	// Connect to storage
	database, err := db.New(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	redisCache, err := cache.New(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisCache.Close()

	// Repositories and pipelines
	repo := db.NewRepository(database.DB)
	raws := db.NewRawRecordRepository(repo)
	trends := db.NewTrendRepository(repo)
	patterns := db.NewPatternRepository(repo)
	hashtags := db.NewHashtagRepository(repo)
	metrics := db.NewMetricsRepository(repo)

	ingester := pipeline.NewIngester(raws, trends, patterns, hashtags, metrics, redisCache, &cfg.Pipeline)
	refresher := pipeline.NewRefresher(trends, metrics, redisCache, &cfg.Scoring)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *once {
		runIngest(ctx, ingester, logger)
		runRefresh(ctx, refresher, logger)
		logger.Info("Worker exited")
		return
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		runEvery(ctx, time.Duration(cfg.Pipeline.IngestInterval)*time.Second, func() {
			runIngest(ctx, ingester, logger)
		})
	}()
	go func() {
		defer wg.Done()
		runEvery(ctx, time.Duration(cfg.Pipeline.RefreshInterval)*time.Second, func() {
			runRefresh(ctx, refresher, logger)
		})
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	cancel()
	wg.Wait()
	logger.Info("Worker exited")
}

// runEvery runs fn immediately and then on every tick until the context
// is cancelled. A run in progress finishes before shutdown completes.
func runEvery(ctx context.Context, interval time.Duration, fn func()) {
	fn()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}

func runIngest(ctx context.Context, ingester *pipeline.Ingester, logger *zap.Logger) {
	summary, err := ingester.Run(ctx)
	if err != nil {
		if err == pipeline.ErrBatchInProgress {
			logger.Info("Skipping ingestion, another batch is running")
			return
		}
		logger.Error("Ingestion batch failed", zap.Error(err))
		return
	}
	logger.Info("Ingestion batch finished",
		zap.Int("processed", summary.Processed),
		zap.Int("duplicates", summary.Duplicates),
		zap.Int("errors", summary.Errors),
		zap.Int("total", summary.Total),
		zap.Int64("duration_ms", summary.DurationMS))
}

func runRefresh(ctx context.Context, refresher *pipeline.Refresher, logger *zap.Logger) {
	summary, err := refresher.Run(ctx)
	if err != nil {
		logger.Error("Refresh cycle failed", zap.Error(err))
		return
	}
	logger.Info("Refresh cycle finished",
		zap.Int("total_trends", summary.TotalTrends),
		zap.Int("updated", summary.Updated),
		zap.Int64("deactivated", summary.Deactivated),
		zap.Int64("duration_ms", summary.DurationMS))
}
