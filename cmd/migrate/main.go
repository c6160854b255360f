package main

import (
	"context" // Context for config loading

	"employee_messaging/internal/config" // Custom import path (Config)
	"employee_messaging/internal/db"     // Custom import path (Database)
	"employee_messaging/internal/logger" // Logger setup

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for migration
func main() {
	cfg, err := config.LoadConfig(context.Background()) // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	logger.Setup(logger.Options{Level: cfg.LogLevel, JSON: cfg.IsProd, File: cfg.LogFile})

	gormDB, err := db.Open(cfg.DBDriver, cfg.DSN(), true) // Show the DDL as it runs
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := db.Migrate(gormDB); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}
