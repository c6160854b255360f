package main

import (
	"context" // context package is needed for Redis operations

	"employee_messaging/internal/api"        // HTTP handlers and routes
	"employee_messaging/internal/config"     // Configuration
	"employee_messaging/internal/db"         // Database connection
	"employee_messaging/internal/logger"     // Logger setup
	"employee_messaging/internal/middleware" // Rate limiting
	"employee_messaging/internal/repository" // Persistence
	"employee_messaging/internal/service"    // Use cases
	"employee_messaging/internal/session"    // Session cookies
	"employee_messaging/internal/utils"      // Redis cache

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig(ctx) // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	// Setup logger
	logger.Setup(logger.Options{Level: cfg.LogLevel, JSON: cfg.IsProd, File: cfg.LogFile})

	// Connect to the database
	gormDB, err := db.Open(cfg.DBDriver, cfg.DSN(), cfg.LogLevel == "debug")
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logrus.Fatalf("failed to get DB handle: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}
	cache := utils.NewRedisCache(redisClient)

	// Wire services
	users := service.NewAuthService(repository.NewUserRepository(gormDB))
	board := service.NewMessageService(repository.NewMessageRepository(gormDB), cache, cfg.CacheTTL)
	sessions := session.NewManager(cfg.JWTSecret, cfg.SessionTTL, cfg.IsProd, cache)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.NewRouter(api.Deps{
		Auth:         users,
		Register:     users,
		Users:        users,
		Sessions:     sessions,
		Board:        board,
		LoginLimiter: middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst),
		Health: map[string]api.Pinger{
			cfg.DBDriver: sqlDB.PingContext, // Database reachable
			"redis": func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err() // Redis reachable
			},
		},
	})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"port":   cfg.AppPort,  // Listening port
		"driver": cfg.DBDriver, // Database driver
	}).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
