package main

import (
	"context"
	"time"

	"account-service/config"
	"account-service/internal/handler"
	"account-service/internal/redis"
	"account-service/internal/repository"
	"account-service/internal/server"
	"account-service/internal/services"
	"account-service/pkg/database"
	"account-service/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	ctx := context.Background()

	// Connect to Database
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		l.Logger.Fatal("Failed to connect to database: " + err.Error())
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db); err != nil {
		l.Logger.Fatal("Failed to apply migrations: " + err.Error())
	}

	redisClient := redis.NewClient(redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()
	if err := redis.Ping(ctx, redisClient); err != nil {
		// cache, rate limiting and events degrade, the API still serves from Postgres
		l.Warnf("Redis unavailable at startup: %s", err)
	}

	cache := redis.NewCacheStore(redisClient, redis.CacheConfig{
		UsersTTL: time.Duration(cfg.UsersCacheTTLSec) * time.Second,
	})
	limiter := redis.NewRateLimiter(redisClient, redis.RateLimitConfig{
		AuthLimit:  cfg.AuthRateLimit,
		AuthWindow: time.Duration(cfg.AuthRateWindowSec) * time.Second,
	})
	publisher := redis.NewPublisher(redisClient)

	userRepo := repository.NewUserRepository(db)
	userService := services.NewUserService(userRepo, cache, publisher, l)
	tokens := services.NewTokenIssuer(cfg)

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Users: handler.NewUserHandler(userService, tokens, l, cfg.BcryptCost),
	}, server.Dependencies{
		Tokens:  tokens,
		Limiter: limiter,
		HealthChecks: []server.HealthCheck{
			{Name: "database", Check: func(ctx context.Context) error { return database.HealthCheck(ctx, db) }},
			{Name: "redis", Check: func(ctx context.Context) error { return redis.Ping(ctx, redisClient) }},
		},
	})

	if err := srv.Start(); err != nil {
		l.Errorf("Server exited with error: %s", err)
	}
}
