package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/caioevan/fincontrol/internal/adapter/http/handler"
	"github.com/caioevan/fincontrol/internal/adapter/http/middleware"
	"github.com/caioevan/fincontrol/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler   *handler.AccountHandler
	EntryHandler     *handler.EntryHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	Logger           zerolog.Logger

	// RateLimiter is optional; the caller owns its cleanup loop.
	RateLimiter *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Get("/{id}/balance", cfg.AccountHandler.GetBalance)

			// Entries of an account
			r.Route("/{id}/entries", func(r chi.Router) {
				r.Post("/", cfg.EntryHandler.Add)
				r.Post("/batch", cfg.EntryHandler.AddBatch)
				r.Get("/", cfg.EntryHandler.List)

				// Static segments before the wildcard so chi does not
				// treat them as entry IDs.
				r.Get("/by-month", cfg.EntryHandler.ListByMonth)
				r.Get("/by-year", cfg.EntryHandler.ListByYear)
				r.Get("/by-range", cfg.EntryHandler.ListByRange)
				r.Get("/by-category", cfg.EntryHandler.ListByCategory)

				r.Get("/{entryID}", cfg.EntryHandler.Get)
				r.Delete("/{entryID}", cfg.EntryHandler.Delete)
			})
		})
	})

	return r
}
