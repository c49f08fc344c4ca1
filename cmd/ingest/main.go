package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"sales-service/config"
	"sales-service/internal/broker"
	"sales-service/internal/ingest"
	"sales-service/internal/store"
	"sales-service/internal/util"

	"go.uber.org/zap"
)

// ingest loads a sales CSV into Postgres, replacing the previous dataset,
// and announces the new dataset to running servers
func main() {
	cfg := config.Load()

	file := flag.String("file", cfg.Data.CSVPath, "path of the sales CSV to load")
	databaseURL := flag.String("database-url", cfg.Database.URL, "Postgres connection string")
	publish := flag.Bool("publish", cfg.Kafka.Enabled, "publish a DATASET_RELOADED event after loading")
	flag.Parse()

	if err := util.InitLogger(cfg.Server.Env, cfg.Server.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()
	logger := util.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	rows, err := ingest.LoadFile(*file)
	if err != nil {
		logger.Fatal("Failed to read CSV", zap.String("file", *file), zap.Error(err))
	}
	logger.Info("CSV parsed", zap.String("file", *file), zap.Int("rows", len(rows)))

	db, err := store.NewStore(*databaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		logger.Fatal("Failed to prepare schema", zap.Error(err))
	}
	if err := db.ReplaceTransactions(ctx, rows); err != nil {
		logger.Fatal("Failed to store transactions", zap.Error(err))
	}
	logger.Info("Transactions stored",
		zap.Int("rows", len(rows)),
		zap.Duration("elapsed", time.Since(start)))

	if !*publish {
		return
	}

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicDatasetEvents)
	defer producer.Close()

	event := broker.NewDatasetReloadedEvent(filepath.Base(*file), len(rows))
	if err := broker.NewEventPublisher(producer).PublishDatasetReloaded(ctx, event); err != nil {
		logger.Error("Failed to publish DatasetReloaded event", zap.Error(err))
		return
	}
	logger.Info("DatasetReloaded event published", zap.String("event_id", event.EventID))
}
