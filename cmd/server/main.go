package main

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/picnichub/memoryhub/backend/internal/expiry"
	"github.com/picnichub/memoryhub/backend/internal/router"
	"github.com/picnichub/memoryhub/backend/pkg/config"
	"github.com/picnichub/memoryhub/backend/pkg/firebase"
	"github.com/picnichub/memoryhub/backend/pkg/mailer"
	"github.com/picnichub/memoryhub/backend/pkg/metrics"
	"github.com/picnichub/memoryhub/backend/pkg/validators"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize Firebase when credentials are configured; otherwise the
	// JWT middleware resolves identities.
	deps := router.Deps{
		Config:   cfg,
		Postgres: db.Postgres,
		Mongo:    db.Mongo,
		Log:      logger,
	}
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			logger.Fatalf("Failed to initialize Firebase: %v", err)
		}
		deps.FirebaseAuthClient = firebaseApp.AuthClient
	}

	// Outbound mail is constructed here, once, and injected.
	if cfg.SMTPHost != "" {
		deps.Mailer = mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	} else {
		logger.Info("SMTP not configured, outbound mail disabled")
		deps.Mailer = mailer.Noop()
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	storyRepo, err := router.SetupRoutes(e, deps)
	if err != nil {
		logger.Fatalf("Failed to set up routes: %v", err)
	}

	// Validator
	e.Validator = validators.NewValidator()

	// Background expired-story sweep, backstop for the Mongo TTL monitor
	sweeper := expiry.NewSweeper(storyRepo, cfg.StorySweepInterval, logger)
	go sweeper.Run(ctx)

	// Metrics listener
	go metrics.Serve(cfg.MetricsPort, logger)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
