package config

import (
	"context" // Context for envconfig processing
	"fmt"     // DSN formatting
	"time"    // Durations

	"github.com/joho/godotenv"          // For loading .env files
	"github.com/sethvargo/go-envconfig" // Struct-tag environment decoding
)

// Config holds the application configuration
type Config struct {
	AppPort  string `env:"APP_PORT, default=8080"`  // Application port
	IsProd   bool   `env:"IS_PROD, default=false"`  // Is production environment
	LogLevel string `env:"LOG_LEVEL, default=info"` // Minimum log level
	LogFile  string `env:"LOG_FILE"`                // Optional rotating log file

	DBDriver    string `env:"DB_DRIVER, default=mysql"`       // mysql, postgres or sqlite
	DatabaseURL string `env:"DATABASE_URL"`                   // Full DSN, overrides the parts below
	DBUser      string `env:"DB_USER"`                        // Database user
	DBPassword  string `env:"DB_PASSWORD"`                    // Database password
	DBHost      string `env:"DB_HOST, default=127.0.0.1"`     // Database host
	DBPort      string `env:"DB_PORT"`                        // Database port
	DBName      string `env:"DB_NAME, default=messaging_app"` // Database name

	JWTSecret  string        `env:"JWT_SECRET, required"`     // Session signing key
	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"` // Session lifetime

	RedisAddr string        `env:"REDIS_ADDR, default=localhost:6379"` // Redis server address
	RedisPass string        `env:"REDIS_PASS"`                         // Redis password
	RedisDB   int           `env:"REDIS_DB, default=0"`                // Redis database number
	CacheTTL  time.Duration `env:"CACHE_TTL, default=60s"`             // Message list cache lifetime

	LoginRateLimit float64 `env:"LOGIN_RATE_LIMIT, default=10"` // Form posts per minute per client
	LoginRateBurst int     `env:"LOGIN_RATE_BURST, default=5"`  // Burst allowance
}

// LoadConfig loads configuration from the environment, reading .env first if present
func LoadConfig(ctx context.Context) (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	switch cfg.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("config: unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return &cfg, nil
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL // Explicit DSN wins
	}
	switch c.DBDriver {
	case "postgres":
		port := c.DBPort
		if port == "" {
			port = "5432" // Postgres default port
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			c.DBHost, port, c.DBUser, c.DBPassword, c.DBName)
	case "sqlite":
		return c.DBName + ".db" // Local file next to the binary
	default:
		port := c.DBPort
		if port == "" {
			port = "3306" // MySQL default port
		}
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + port + ")/" + c.DBName + "?parseTime=true"
	}
}
