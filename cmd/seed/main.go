package main

import (
	"context" // Context for service calls
	"errors"  // Error matching

	"employee_messaging/internal/config"     // Configuration
	"employee_messaging/internal/db"         // Database connection
	"employee_messaging/internal/domain"     // Importing domain models
	"employee_messaging/internal/logger"     // Logger setup
	"employee_messaging/internal/repository" // Persistence
	"employee_messaging/internal/service"    // Use cases

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// demoAccounts are the accounts created for a fresh install
var demoAccounts = []service.RegisterInput{
	{Username: "manager", Email: "manager@test.com", Password: "manager123", ConfirmPassword: "manager123", Role: "manager"},
	{Username: "employee", Email: "employee@test.com", Password: "employee123", ConfirmPassword: "employee123", Role: "employee"},
}

type registrar interface {
	Register(ctx context.Context, in service.RegisterInput) (*domain.User, error)
}

// seed registers each account, skipping those whose email or username is taken.
// It returns how many accounts were created.
func seed(ctx context.Context, reg registrar, accounts []service.RegisterInput) (int, error) {
	created := 0
	for _, acct := range accounts {
		_, err := reg.Register(ctx, acct)
		var conflict *domain.ConflictError
		switch {
		case err == nil:
			created++
			logrus.WithField("email", acct.Email).Info("Account created")
		case errors.As(err, &conflict):
			logrus.WithField("email", acct.Email).Info("Account already exists")
		default:
			return created, err
		}
	}
	return created, nil
}

// Main entry point for seeding demo accounts
func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig(ctx) // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	logger.Setup(logger.Options{Level: cfg.LogLevel, JSON: cfg.IsProd, File: cfg.LogFile})

	gormDB, err := db.Open(cfg.DBDriver, cfg.DSN(), false)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	n, err := seed(ctx, service.NewAuthService(repository.NewUserRepository(gormDB)), demoAccounts)
	if err != nil {
		logrus.Fatalf("seeding failed: %v", err)
	}
	logrus.WithField("created", n).Info("Seeding completed.")
}
