// Package http wires the statement API's routes and middleware.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/gostatement/internal/adapter/http/handler"
	"github.com/iho/gostatement/internal/adapter/http/middleware"
	"github.com/iho/gostatement/internal/infrastructure/auth"
	"github.com/iho/gostatement/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	UserHandler      *handler.UserHandler
	AuthHandler      *handler.AuthHandler
	StatementHandler *handler.StatementHandler
	HealthHandler    *handler.HealthHandler
	JWTManager       *auth.JWTManager
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recover(cfg.Logger))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Public endpoints
		r.Post("/users", cfg.UserHandler.Create)
		r.Post("/sessions", cfg.AuthHandler.Login)

		// Session-scoped endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))

			r.Get("/profile", cfg.UserHandler.Profile)

			r.Route("/statements", func(r chi.Router) {
				r.Post("/deposit", cfg.StatementHandler.Deposit)
				r.Post("/withdraw", cfg.StatementHandler.Withdraw)
				r.Post("/transfers/{receiver_id}", cfg.StatementHandler.Transfer)
				r.Get("/balance", cfg.StatementHandler.Balance)
				r.Get("/{statement_id}", cfg.StatementHandler.GetOperation)
			})
		})
	})

	return r
}
