package main

// @title           Voting Service API
// @version         1.0
// @description     Polls, votes and tallies for meeting participants
// @BasePath        /api/v1
// @schemes         http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voting-service/configs"
	"voting-service/internal/adapters/database"
	"voting-service/internal/adapters/kafka"
	"voting-service/internal/roster"
	"voting-service/internal/server"
	"voting-service/internal/server/handlers"
	"voting-service/internal/server/repository"
	"voting-service/internal/server/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := configs.Load()
	logger := slog.Default()

	logger.Info("Starting voting service")

	// PostgreSQL is the single source of truth; nothing works without it.
	db, err := database.NewPostgresConnection(
		cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDB)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	// Redis only backs the roster cache; run without it if it's down.
	var redisClient *redis.Client
	if client, err := database.InitRedis(cfg.RedisURL); err != nil {
		logger.Warn("Redis unavailable, roster responses will not be cached", "error", err)
	} else {
		redisClient = client
		defer redisClient.Close()
	}

	// Results archive is optional too.
	var archiver service.ResultsArchiver
	if cfg.MinioEndpoint != "" {
		minioClient, err := database.NewMinIOClient(
			cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket)
		if err != nil {
			logger.Warn("MinIO unavailable, results snapshots will not be archived", "error", err)
		} else {
			archiver = minioClient
		}
	}

	var publisher service.Publisher
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.ServiceName)
	if err != nil {
		logger.Warn("Kafka producer unavailable, notifications disabled", "error", err)
	} else {
		publisher = producer
		defer producer.Close()
	}

	pollRepo := repository.NewPollRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	rosterClient := roster.NewClient(cfg.RosterURL, cfg.RosterTimeout, redisClient, cfg.RosterCacheTTL, logger)
	pollService := service.NewPollService(pollRepo, voteRepo, rosterClient, publisher, archiver, logger)

	pollHandler := handlers.NewPollHandler(pollService)
	voteHandler := handlers.NewVoteHandler(pollService)
	resultsHandler := handlers.NewResultsHandler(pollService)

	router := gin.Default()
	server.SetupRoutes(router, cfg.JWTSecret, pollHandler, voteHandler, resultsHandler)

	// Inbound event consumption runs alongside the HTTP server.
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, cfg.KafkaTopic, pollService, logger)
	go func() {
		if err := consumer.Run(consumerCtx); err != nil {
			logger.Error("Event consumer stopped", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server shutting down...")

	stopConsumer()
	if err := consumer.Close(); err != nil {
		logger.Error("Consumer close failed", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server stopped")
}
