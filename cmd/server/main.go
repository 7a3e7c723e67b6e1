package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"

	"github.com/iho/fxreport/internal/adapter/cache"
	"github.com/iho/fxreport/internal/adapter/gateway"
	"github.com/iho/fxreport/internal/adapter/gateway/direct"
	httpAdapter "github.com/iho/fxreport/internal/adapter/http"
	"github.com/iho/fxreport/internal/adapter/http/handler"
	"github.com/iho/fxreport/internal/adapter/idgen"
	"github.com/iho/fxreport/internal/domain"
	"github.com/iho/fxreport/internal/infrastructure/config"
	"github.com/iho/fxreport/internal/infrastructure/logger"
	"github.com/iho/fxreport/internal/infrastructure/metrics"
	"github.com/iho/fxreport/internal/infrastructure/postgres"
	"github.com/iho/fxreport/internal/infrastructure/redis"
	"github.com/iho/fxreport/internal/query"
	"github.com/iho/fxreport/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	m := metrics.New()
	catalog := domain.DefaultCatalog()

	// Gateway: SQL proxy by default, direct database access optionally
	var (
		gw   usecase.Gateway
		pool *pgxpool.Pool
	)
	switch cfg.GatewayMode {
	case "direct":
		pool, err = postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to ledger database")
		}
		defer pool.Close()
		gw = direct.New(pool, log)
		log.Info().Msg("using direct database gateway")
	default:
		gw = gateway.NewClient(gateway.Config{
			Endpoint:    cfg.ProxyEndpoint,
			CompanyRef:  cfg.ProxyCompanyRef,
			Profile:     cfg.ProxyProfile,
			Timeout:     cfg.ProxyTimeout,
			MaxAttempts: cfg.ProxyMaxAttempts,
		}, log, m)
		log.Info().Str("endpoint", cfg.ProxyEndpoint).Msg("using SQL proxy gateway")
	}

	// Detail cache: in-memory by default, session-scoped Redis optionally
	var (
		detailCache usecase.DetailCache
		redisClient *redislib.Client
	)
	switch cfg.CacheBackend {
	case "redis":
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		detailCache = cache.NewRedis(redisClient, uuid.NewString(), cfg.DetailCacheTTL, m)
		log.Info().Msg("using redis detail cache")
	default:
		detailCache = cache.NewMemory(m)
	}

	// Initialize use cases
	preloader := usecase.NewPreloader(
		query.NewDetailBuilder(catalog),
		gw,
		detailCache,
		usecase.SystemClock{},
		idgen.NewULIDGenerator(),
		log,
		m,
		usecase.PreloadConfig{ThrottleWindow: cfg.PreloadThrottle},
	)
	balanceUC := usecase.NewBalanceUseCase(catalog, query.NewBalanceBuilder(catalog), gw, preloader, log)

	// Initialize handlers
	reportHandler := handler.NewReportHandler(balanceUC, preloader)
	currencyHandler := handler.NewCurrencyHandler(catalog)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ReportHandler:   reportHandler,
		CurrencyHandler: currencyHandler,
		HealthHandler:   healthHandler,
		Logger:          log,
		RateLimit:       cfg.RateLimit,
		RateBurst:       cfg.RateBurst,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
