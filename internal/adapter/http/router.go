package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/fintrack/internal/adapter/http/handler"
	"github.com/iho/fintrack/internal/adapter/http/middleware"
)

// DefaultMetricsPath is used when RouterConfig.MetricsPath is empty.
const DefaultMetricsPath = "/metrics"

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AllocationHandler *handler.AllocationHandler
	ScheduleHandler   *handler.ScheduleHandler
	SharedItemHandler *handler.SharedItemHandler
	DashboardHandler  *handler.DashboardHandler
	RecurringHandler  *handler.RecurringHandler
	HealthHandler     *handler.HealthHandler

	Logger       zerolog.Logger
	RateLimiter  *middleware.RateLimiter
	HTTPMetrics  *middleware.HTTPMetrics
	Gatherer     prometheus.Gatherer
	MetricsPath  string
	MaxBodyBytes int64
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.HTTPMetrics != nil {
		r.Use(cfg.HTTPMetrics.Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	if cfg.Gatherer != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = DefaultMetricsPath
		}
		r.Method(http.MethodGet, path, promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.MaxBodyBytes > 0 {
			r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
		}

		r.Route("/allocations", func(r chi.Router) {
			r.Post("/allocate", cfg.AllocationHandler.Allocate)
			r.Post("/accumulate", cfg.AllocationHandler.Accumulate)
			r.Post("/breakdown", cfg.AllocationHandler.Breakdown)
		})

		r.Route("/schedules", func(r chi.Router) {
			r.Post("/evaluate", cfg.ScheduleHandler.Evaluate)
			r.Post("/generate", cfg.ScheduleHandler.Generate)
			r.Post("/edit", cfg.ScheduleHandler.Edit)
		})

		r.Post("/shared-items/summary", cfg.SharedItemHandler.Summary)
		r.Post("/dashboard/summary", cfg.DashboardHandler.Summary)
		r.Post("/budgets/progress", cfg.DashboardHandler.Budgets)
		r.Post("/savings/progress", cfg.DashboardHandler.Savings)

		r.Route("/recurring", func(r chi.Router) {
			r.Post("/next", cfg.RecurringHandler.Next)
			r.Post("/due", cfg.RecurringHandler.Due)
		})
	})

	return r
}
