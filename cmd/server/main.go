package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sales-service/config"
	"sales-service/internal/api"
	"sales-service/internal/broker"
	"sales-service/internal/cache"
	"sales-service/internal/ingest"
	"sales-service/internal/models"
	"sales-service/internal/redisclient"
	"sales-service/internal/service"
	"sales-service/internal/store"
	"sales-service/internal/util"
	"sales-service/internal/worker"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env, cfg.Server.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting sales service",
		zap.String("env", cfg.Server.Env),
		zap.String("data_source", cfg.Data.Source),
		zap.String("cache_backend", cfg.Cache.Backend))

	tp := initTracing(cfg, logger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			logger.Error("Error shutting down tracer", zap.Error(err))
		}
	}()

	ctx := context.Background()

	// source is what a reload reads from; snapshot is what queries read
	var source store.RowStore
	switch cfg.Data.Source {
	case config.SourcePostgres:
		db, err := store.NewStore(cfg.Database.URL)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		if err := db.EnsureSchema(ctx); err != nil {
			logger.Fatal("Failed to prepare schema", zap.Error(err))
		}
		logger.Info("Database connected")
		source = db
	case config.SourceCSV:
		source = ingest.FileSource{Path: cfg.Data.CSVPath}
	default:
		logger.Fatal("Unknown data source", zap.String("data_source", cfg.Data.Source))
	}

	snapshot := store.NewMemoryStore(nil)
	n, err := snapshot.Load(ctx, source)
	if err != nil {
		logger.Fatal("Failed to load dataset", zap.Error(err))
	}
	util.DatasetRows.Set(float64(n))
	logger.Info("Dataset loaded", zap.Int("rows", n))

	pages, exports, closeCache := newResultCaches(cfg, logger)
	defer closeCache()

	salesService := service.NewSalesService(snapshot, pages, exports, cfg.Data.ExportMaxRows)
	metadataService := service.NewMetadataService(snapshot, cfg.Cache.TTL)
	datasetService := service.NewDatasetService(snapshot, source, salesService, metadataService)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	var datasetWorker *worker.DatasetWorker
	if cfg.Kafka.Enabled {
		consumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicDatasetEvents, cfg.Kafka.ConsumerGroup)
		datasetWorker = worker.NewDatasetWorker(consumer, datasetService)
		go func() {
			if err := datasetWorker.Start(workerCtx); err != nil && workerCtx.Err() == nil {
				logger.Error("Dataset worker error", zap.Error(err))
			}
		}()
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handler := api.NewHandler(salesService, metadataService, snapshot)
	handler.SetupRoutes(router, cfg.Server.CORSAllowOrigins)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	workerCancel()
	if datasetWorker != nil {
		if err := datasetWorker.Stop(); err != nil {
			logger.Error("Failed to stop dataset worker", zap.Error(err))
		}
	}

	logger.Info("Server exited")
}

func initTracing(cfg *config.Config, logger *zap.Logger) *sdktrace.TracerProvider {
	if !cfg.Observ.TracingEnabled {
		return util.InitNoopTracer("sales-service")
	}
	tp, err := util.InitTracer("sales-service", cfg.Observ.JaegerEndpoint)
	if err != nil {
		logger.Error("Failed to initialize tracer, continuing without export", zap.Error(err))
		return util.InitNoopTracer("sales-service")
	}
	return tp
}

// newResultCaches builds the page and export caches for the configured backend
func newResultCaches(cfg *config.Config, logger *zap.Logger) (
	service.ResultCache[*models.PageResult],
	service.ResultCache[*models.ExportResult],
	func(),
) {
	if cfg.Cache.Backend == config.CacheRedis {
		client, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		logger.Info("Redis connected", zap.String("addr", cfg.Redis.Addr))

		pages := redisclient.NewResultCache[*models.PageResult](client, "pages", cfg.Cache.TTL)
		exports := redisclient.NewResultCache[*models.ExportResult](client, "exports", cfg.Cache.TTL)
		return pages, exports, func() { client.Close() }
	}

	pages := service.NewLocalCache(cache.New(cfg.Cache.TTL, (*models.PageResult).Clone))
	exports := service.NewLocalCache(cache.New(cfg.Cache.TTL, (*models.ExportResult).Clone))
	return pages, exports, func() {}
}
