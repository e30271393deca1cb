package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/iho/fintrack/internal/adapter/http"
	"github.com/iho/fintrack/internal/adapter/http/handler"
	"github.com/iho/fintrack/internal/adapter/http/middleware"
	redisRepo "github.com/iho/fintrack/internal/adapter/repository/redis"
	"github.com/iho/fintrack/internal/infrastructure/config"
	"github.com/iho/fintrack/internal/infrastructure/logger"
	"github.com/iho/fintrack/internal/infrastructure/metrics"
	"github.com/iho/fintrack/internal/infrastructure/redis"
	"github.com/iho/fintrack/internal/usecase"
)

// limiterCleanupInterval is how often idle per-IP limiters are dropped.
const limiterCleanupInterval = 10 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	zerolog.TimeFieldFormat = time.RFC3339Nano
	l := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = l
	zerolog.DefaultContextLogger = &l

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, l); err != nil {
		l.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}

	l.Info().Msg("server stopped")
}

// app holds the wired service and the resources it owns.
type app struct {
	handler     http.Handler
	rateLimiter *middleware.RateLimiter
	closers     []func() error
}

func (a *app) close(l zerolog.Logger) {
	for _, c := range a.closers {
		if err := c(); err != nil {
			l.Warn().Err(err).Msg("failed to release resource")
		}
	}
}

// build wires configuration into use cases, handlers and the router.
func build(ctx context.Context, cfg *config.Config, l zerolog.Logger, reg *prometheus.Registry) (*app, error) {
	a := &app{}

	engineMetrics := metrics.NewWithRegisterer(reg)
	idGen := redisRepo.NewULIDGenerator()

	// Connect to Redis when a report cache is configured
	var (
		cache  usecase.Cache
		pinger handler.Pinger
	)
	if cfg.CacheEnabled() {
		retrier := redis.NewRetrier(cfg.RedisConnectRetries, l)
		redisClient, err := redis.Connect(ctx, cfg.RedisURL, retrier)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.closers = append(a.closers, redisClient.Close)
		l.Info().Dur("ttl", cfg.CacheTTL).Msg("report cache enabled")

		reportCache := redisRepo.NewCache(redisClient)
		cache, pinger = reportCache, reportCache
	} else {
		l.Info().Msg("REDIS_URL not set, report cache disabled")
	}

	// Initialize use cases
	allocationUC := usecase.NewAllocationUseCase(cache, engineMetrics, idGen, cfg.CacheTTL)
	dashboardUC := usecase.NewDashboardUseCase(engineMetrics)
	recurringUC := usecase.NewRecurringUseCase(idGen, engineMetrics)

	if cfg.RateLimitRPS > 0 {
		a.rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	a.handler = httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AllocationHandler: handler.NewAllocationHandler(allocationUC),
		ScheduleHandler:   handler.NewScheduleHandler(allocationUC),
		SharedItemHandler: handler.NewSharedItemHandler(allocationUC),
		DashboardHandler:  handler.NewDashboardHandler(dashboardUC),
		RecurringHandler:  handler.NewRecurringHandler(recurringUC),
		HealthHandler:     handler.NewHealthHandler(pinger),
		Logger:            l,
		RateLimiter:       a.rateLimiter,
		HTTPMetrics:       middleware.NewHTTPMetrics(reg),
		Gatherer:          reg,
		MetricsPath:       cfg.MetricsPath,
		MaxBodyBytes:      cfg.MaxBodyBytes,
	})

	return a, nil
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// run serves HTTP until ctx is cancelled, then shuts down gracefully.
func run(ctx context.Context, cfg *config.Config, l zerolog.Logger) error {
	a, err := build(ctx, cfg, l, newRegistry())
	if err != nil {
		return err
	}
	defer a.close(l)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      a.handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		l.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if a.rateLimiter != nil {
		g.Go(func() error {
			return a.rateLimiter.Run(gctx, limiterCleanupInterval)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		l.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
