package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/fxreport/internal/adapter/http/handler"
	"github.com/iho/fxreport/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ReportHandler   *handler.ReportHandler
	CurrencyHandler *handler.CurrencyHandler
	HealthHandler   *handler.HealthHandler
	Logger          zerolog.Logger

	// Per-IP rate limiting; disabled when RateLimit is zero.
	RateLimit float64
	RateBurst int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	logging := middleware.NewLoggingMiddleware(cfg.Logger)
	r.Use(logging.Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
		r.Use(limiter.Limit)
	}

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/currencies", cfg.CurrencyHandler.List)

		r.Route("/reports", func(r chi.Router) {
			r.Post("/balances", cfg.ReportHandler.Balances)

			r.Route("/detail", func(r chi.Router) {
				r.Post("/preload", cfg.ReportHandler.Preload)
				r.Get("/{accountID}", cfg.ReportHandler.Detail)
				r.Post("/{accountID}/refresh", cfg.ReportHandler.RefreshDetail)
			})
		})
	})

	return r
}
