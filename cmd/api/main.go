package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/fridgechef/backend/config"
	"github.com/pageza/fridgechef/backend/internal/api"
	"github.com/pageza/fridgechef/backend/internal/database"
	"github.com/pageza/fridgechef/backend/internal/logging"
	"github.com/pageza/fridgechef/backend/internal/middleware"
	"github.com/pageza/fridgechef/backend/internal/repository"
	"github.com/pageza/fridgechef/backend/internal/router"
	"github.com/pageza/fridgechef/backend/internal/server"
	"github.com/pageza/fridgechef/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Env.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg, logger)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db, logger); err != nil {
		return err
	}

	healthChecks := map[string]router.HealthCheck{
		"database": func(ctx context.Context) error { return database.HealthCheck(ctx, db) },
	}

	opts := []service.Option{}
	var limiter *middleware.RateLimiter

	// Redis is optional: without it locks stay in-process and regeneration is unlimited.
	redisClient, err := database.NewRedisClient(cfg, logger)
	if err != nil {
		logger.Warn("Redis unavailable, using in-process generation locks without rate limiting", zap.Error(err))
	} else {
		defer redisClient.Close()
		opts = append(opts, service.WithUserLocker(service.NewRedisUserLocker(redisClient, cfg.GenerationLockTTL, logger)))
		limiter = middleware.NewRegenerateRateLimiter(redisClient, cfg.RegenerateRateLimit, cfg.RegenerateRateWindow, logger)
		healthChecks["redis"] = redisPing(redisClient)
	}

	if cfg.S3BucketName != "" {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return err
		}
		opts = append(opts, service.WithImageResolver(s3cfg))
	}

	recommendations := service.NewRecommendationService(
		repository.NewRecipeRepository(db),
		repository.NewFridgeRepository(db),
		repository.NewHealthProfileRepository(db),
		repository.NewRecommendationRepository(db),
		logger,
		opts...,
	)

	engine := router.SetupRouter(router.Options{
		API: api.Dependencies{
			Recommendations: recommendations,
			Tokens:          service.NewTokenService(cfg.JWTSecret),
			GenerateLimiter: limiter,
		},
		CORSOrigins:  cfg.CORSOrigins,
		HealthChecks: healthChecks,
		Logger:       logger,
	})

	return server.New(cfg.ServerAddr(), engine, logger).Run(ctx)
}

func redisPing(client *redis.Client) router.HealthCheck {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
