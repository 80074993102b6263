package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"github.com/tradequote/quoting-api/internal/auth"
	"github.com/tradequote/quoting-api/internal/config"
	"github.com/tradequote/quoting-api/internal/database"
	"github.com/tradequote/quoting-api/internal/http/handler"
	"github.com/tradequote/quoting-api/internal/http/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/tradequote/quoting-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg            *config.Config
	logger         *zap.Logger
	db             *gorm.DB
	authMiddleware *auth.Middleware
	rateLimiter    *middleware.RateLimiter

	authHandler         *handler.AuthHandler
	jobHandler          *handler.JobHandler
	rateTemplateHandler *handler.RateTemplateHandler
	profileHandler      *handler.ProfileHandler
	quoteHandler        *handler.QuoteHandler
	jobPackHandler      *handler.JobPackHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	jobHandler *handler.JobHandler,
	rateTemplateHandler *handler.RateTemplateHandler,
	profileHandler *handler.ProfileHandler,
	quoteHandler *handler.QuoteHandler,
	jobPackHandler *handler.JobPackHandler,
) *Router {
	return &Router{
		cfg:                 cfg,
		logger:              logger,
		db:                  db,
		authMiddleware:      authMiddleware,
		rateLimiter:         rateLimiter,
		authHandler:         authHandler,
		jobHandler:          jobHandler,
		rateTemplateHandler: rateTemplateHandler,
		profileHandler:      profileHandler,
		quoteHandler:        quoteHandler,
		jobPackHandler:      jobPackHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Liveness probe
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database readiness probe with pool stats
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
			},
		})
	})

	// Combined readiness check
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		status := "healthy"
		code := http.StatusOK
		if !allHealthy {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": status,
			"checks": checks,
		})
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)
			r.Use(rt.rateLimiter.LimitByUser)

			// Auth
			r.Get("/auth/me", rt.authHandler.Me)

			// Jobs and their quote sub-resources
			r.Route("/jobs", func(r chi.Router) {
				r.Get("/", rt.jobHandler.List)
				r.Post("/", rt.jobHandler.Create)
				r.Get("/{id}", rt.jobHandler.Get)
				r.Put("/{id}", rt.jobHandler.Update)
				r.Delete("/{id}", rt.jobHandler.Delete)

				// Rate resolution
				r.Get("/{id}/effective-rates", rt.quoteHandler.EffectiveRates)
				r.Get("/{id}/material-markup", rt.quoteHandler.MaterialMarkup)

				// Quotes
				r.Get("/{id}/quotes", rt.quoteHandler.List)
				r.Post("/{id}/quotes", rt.quoteHandler.Generate)
				r.Get("/{id}/quotes/latest", rt.quoteHandler.Latest)

				// Job packs
				r.Get("/{id}/packs", rt.jobPackHandler.List)
				r.Post("/{id}/packs", rt.jobPackHandler.Generate)
			})

			r.Get("/packs/{packId}/download", rt.jobPackHandler.Download)

			// Rate templates
			r.Route("/rate-templates", func(r chi.Router) {
				r.Get("/", rt.rateTemplateHandler.List)
				r.Post("/", rt.rateTemplateHandler.Create)
				r.Get("/{id}", rt.rateTemplateHandler.Get)
				r.Put("/{id}", rt.rateTemplateHandler.Update)
				r.Delete("/{id}", rt.rateTemplateHandler.Delete)
				r.Put("/{id}/default", rt.rateTemplateHandler.SetDefault)
			})

			// Business profile and preferences
			r.Get("/profile", rt.profileHandler.Get)
			r.Put("/profile", rt.profileHandler.Upsert)
			r.Get("/preferences", rt.profileHandler.ListPreferences)
			r.Put("/preferences/material-markup", rt.profileHandler.SetMaterialMarkup)
		})
	})

	return r
}
