package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "groupmanagement/internal/api/http"
	"groupmanagement/internal/config"
	"groupmanagement/internal/logger"
	"groupmanagement/internal/repository/postgres"
	"groupmanagement/internal/security"
	"groupmanagement/internal/service"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting group management backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "env", cfg.App.Env, "dev", cfg.App.Dev)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Email configuration", "provider", cfg.Email.Provider)
	if cfg.App.FakeLoginAllowed {
		logger.Warn("Fake login is enabled")
	}

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	policy := security.NewPolicy(cfg.App.FakeLoginAllowed)
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.APITokenExpiry())
	hasher := security.NewHasher(cfg.JWT.BcryptCost)
	authenticator := security.NewAuthenticator(store, tokenManager, hasher, policy)

	// Initialize Email Service
	mailer, err := service.NewMailerFromConfig(cfg.Email)
	if err != nil {
		log.Fatalf("Failed to initialize mailer: %v", err)
	}
	emailSvc := service.NewEmailService(mailer, cfg.Email.FrontendURL)

	// Initialize Services
	orgSvc := service.NewOrganizationService(store, policy)
	userSvc := service.NewUserService(store, policy)
	requestSvc := service.NewRequestService(store, policy, emailSvc)
	tokenSvc := service.NewTokenService(store, tokenManager, hasher)
	configSvc := service.NewConfigurationService(cfg.Configuration())
	publicSvc := service.NewPublicAPIService(store, policy)

	// Initialize HTTP handlers
	router := httpapi.NewRouter(
		httpapi.NewAuthMiddleware(authenticator, cfg.Identity),
		httpapi.NewFrontendHandler(orgSvc, userSvc, requestSvc, tokenSvc, configSvc),
		httpapi.NewPublicHandler(publicSvc),
		httpapi.NewOpsHandler(store),
	)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to serve HTTP", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("HTTP server stopped. Goodbye!")
}
