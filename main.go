package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/rmib-profile-service/internal/cache"
	"github.com/SAP-F-2025/rmib-profile-service/internal/config"
	"github.com/SAP-F-2025/rmib-profile-service/internal/events"
	"github.com/SAP-F-2025/rmib-profile-service/internal/handlers"
	"github.com/SAP-F-2025/rmib-profile-service/internal/models"
	"github.com/SAP-F-2025/rmib-profile-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/rmib-profile-service/internal/services"
	"github.com/SAP-F-2025/rmib-profile-service/internal/utils"
	"github.com/SAP-F-2025/rmib-profile-service/internal/validator"
	"github.com/SAP-F-2025/rmib-profile-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting RMIB profile service",
		"environment", cfg.Environment,
		"port", cfg.Port)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&models.Student{},
		&models.AssessmentResult{},
		&models.AchievementType{},
		&models.StudentAchievement{},
	); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Redis is optional; without it caching degrades to direct reads
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, continuing without cache", "error", err)
			redisClient = nil
		}
	}

	repoManager := postgres.NewRepositoryManager(postgres.RepositoryConfig{
		DB:          db,
		RedisClient: redisClient,
	})
	if err := repoManager.Initialize(); err != nil {
		logger.Error("Failed to initialize repositories", "error", err)
		os.Exit(1)
	}
	repo := repoManager.GetRepository()

	// Events are disabled when no brokers are configured
	var publisher events.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: cfg.KafkaBrokers,
			TopicName:    cfg.EventsTopic,
			Logger:       logger,
		})
		if err != nil {
			logger.Error("Failed to create event publisher", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Info("No Kafka brokers configured, domain events disabled")
		publisher = events.NewMockEventPublisher(logger)
	}

	v := validator.New()
	cacheManager := cache.NewCacheManager(redisClient)

	serviceManager := services.NewServiceManager(db, repo, logger, v, publisher, cacheManager, services.ServiceManagerConfig{
		Auth: services.AuthConfig{
			MaxLoginAttempts: cfg.MaxLoginAttempts,
			LockoutDuration:  cfg.LockoutDuration,
		},
		DefaultTimeout: 30 * time.Second,
	})

	ctx := context.Background()
	if err := serviceManager.Initialize(ctx); err != nil {
		logger.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	httpLogger := utils.NewSlogLogger(logger)
	handlers.SetupMiddleware(router, httpLogger)

	handlerManager := handlers.NewHandlerManager(serviceManager, httpLogger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	shutdownCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-shutdownCtx.Done()

	logger.Info("Shutting down")

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(timeoutCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	if err := serviceManager.Shutdown(timeoutCtx); err != nil {
		logger.Error("Service manager shutdown failed", "error", err)
	}
	if err := repoManager.Shutdown(timeoutCtx); err != nil {
		logger.Error("Repository shutdown failed", "error", err)
	}

	logger.Info("Shutdown complete")
}
