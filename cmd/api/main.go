package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tradequote/quoting-api/docs"
	"github.com/tradequote/quoting-api/internal/ai"
	"github.com/tradequote/quoting-api/internal/auth"
	"github.com/tradequote/quoting-api/internal/config"
	"github.com/tradequote/quoting-api/internal/database"
	"github.com/tradequote/quoting-api/internal/http/handler"
	"github.com/tradequote/quoting-api/internal/http/middleware"
	"github.com/tradequote/quoting-api/internal/http/router"
	"github.com/tradequote/quoting-api/internal/jobs"
	"github.com/tradequote/quoting-api/internal/logger"
	"github.com/tradequote/quoting-api/internal/repository"
	"github.com/tradequote/quoting-api/internal/service"
	"github.com/tradequote/quoting-api/internal/storage"
	"go.uber.org/zap"
)

// @title TradeQuote Quoting API
// @version 1.0
// @description Job quoting API for tradies: rate resolution, AI quote generation and job packs

// @contact.name API Support
// @contact.email support@tradequote.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "quoting-api-staging.tradequote.app"
	case "production":
		docs.SwaggerInfo.Host = "api.tradequote.app"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Quote generation is optional: the API runs without a generator and
	// reports 503 on generation endpoints instead.
	var generator ai.QuoteGenerator
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		gemini, err := ai.NewGeminiClient(ctx, &cfg.AI, log)
		if err != nil {
			log.Warn("AI provider unavailable, quote generation disabled", zap.Error(err))
		} else {
			generator = gemini
			defer func() { _ = gemini.Close() }()
			log.Info("AI provider connected", zap.String("model", cfg.AI.Model))
		}
	} else {
		log.Info("AI quote generation disabled",
			zap.Bool("enabled", cfg.AI.Enabled),
			zap.Bool("api_key_set", cfg.AI.APIKey != ""),
		)
	}

	// Repositories
	jobRepo := repository.NewJobRepository(db)
	templateRepo := repository.NewRateTemplateRepository(db)
	profileRepo := repository.NewBusinessProfileRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	packRepo := repository.NewJobPackRepository(db)
	prefRepo := repository.NewPreferenceRepository(db)

	// Services
	jobService := service.NewJobService(jobRepo, templateRepo, quoteRepo, log)
	templateService := service.NewRateTemplateService(templateRepo, jobRepo, quoteRepo, log)
	profileService := service.NewProfileService(profileRepo, prefRepo, quoteRepo, log)
	quoteService := service.NewQuoteService(jobRepo, templateRepo, profileRepo, quoteRepo, profileService, generator, log)
	packService := service.NewJobPackService(quoteService, quoteRepo, packRepo, fileStorage, log)

	// Middleware
	authMiddleware := auth.NewMiddleware(cfg, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Handlers
	authHandler := handler.NewAuthHandler(log)
	jobHandler := handler.NewJobHandler(jobService, log)
	templateHandler := handler.NewRateTemplateHandler(templateService, log)
	profileHandler := handler.NewProfileHandler(profileService, log)
	quoteHandler := handler.NewQuoteHandler(quoteService, log)
	packHandler := handler.NewJobPackHandler(packService, log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		authHandler,
		jobHandler,
		templateHandler,
		profileHandler,
		quoteHandler,
		packHandler,
	)

	// Background sweep that marks aged quotes stale
	var scheduler *jobs.Scheduler
	if cfg.Quotes.SweepEnabled {
		scheduler = jobs.NewScheduler(log)
		if err := jobs.RegisterStaleQuotesJob(
			scheduler,
			quoteRepo,
			cfg.Quotes.MaxAgeDuration(),
			cfg.Quotes.SweepCron,
			log,
		); err != nil {
			log.Error("Failed to register stale quote sweep", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with stale quote sweep",
				zap.String("cron_expr", cfg.Quotes.SweepCron),
				zap.Int("max_age_days", cfg.Quotes.MaxAgeDays),
			)
		}
	} else {
		log.Info("Stale quote sweep disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
