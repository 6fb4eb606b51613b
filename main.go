package main

import (
	"context"
	"log"
	"time"

	"event-ticketing/cmd"
	"event-ticketing/internal/events"
	"event-ticketing/internal/payment"
	"event-ticketing/internal/storage"
	"event-ticketing/internal/usecase"
	"event-ticketing/internal/wire"
	"event-ticketing/pkg/cache"
	"event-ticketing/pkg/database"
	"event-ticketing/pkg/telemetry"
	"event-ticketing/pkg/utils"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx := context.Background()

	shutdownTracing, err := telemetry.InitTracerProvider(ctx, config.Telemetry.OTLPEndpoint, config.App.Name, config.Telemetry.ServiceVersion)
	if err != nil {
		logger.Fatal("Failed to init tracing", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("Tracer shutdown failed", zap.Error(err))
		}
	}()

	if err := database.Migrate(database.URL(config.Database)); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	var regionCache cache.Cache = cache.NopCache{}
	if config.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, config.Redis.Addr, config.Redis.Password, config.Redis.DB)
		if err != nil {
			logger.Warn("Redis unavailable, region cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			regionCache = cache.NewRedisCache(client)
		}
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(config.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(config.Kafka.Brokers, config.Kafka.Topic, logger)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("Publisher close failed", zap.Error(err))
		}
	}()

	uploader, err := storage.NewLocalUploader(afero.NewOsFs(), config.Storage.Dir, config.Storage.PublicURL)
	if err != nil {
		logger.Fatal("Failed to init media storage", zap.Error(err))
	}

	gateway := payment.NewMidtransClient(payment.Config{
		TransactionURL: config.Payment.TransactionURL,
		ServerKey:      config.Payment.ServerKey,
		Timeout:        time.Duration(config.Payment.TimeoutSeconds) * time.Second,
	}, logger)

	app := wire.Wiring(db, usecase.Deps{
		Tx:        database.NewTransactor(db),
		Gateway:   gateway,
		Publisher: publisher,
		Cache:     regionCache,
		Uploader:  uploader,
	}, uploader.Fs(), config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, config.App.Name, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
