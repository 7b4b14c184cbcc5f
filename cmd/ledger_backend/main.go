package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	portsrepo "github.com/SscSPs/transaction_processor/internal/core/ports/repositories"
	"github.com/SscSPs/transaction_processor/internal/core/services"
	"github.com/SscSPs/transaction_processor/internal/events"
	"github.com/SscSPs/transaction_processor/internal/handlers"
	"github.com/SscSPs/transaction_processor/internal/metrics"
	"github.com/SscSPs/transaction_processor/internal/middleware"
	"github.com/SscSPs/transaction_processor/internal/platform/config"
	"github.com/SscSPs/transaction_processor/internal/repositories/database/pgsql"
	"github.com/SscSPs/transaction_processor/internal/repositories/memory"
	"github.com/SscSPs/transaction_processor/internal/utils"
	"github.com/SscSPs/transaction_processor/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// @title Transaction Processor API
// @version 1.0
// @description Ledger of client accounts: credits, debits, reservations, captures, reversals and transfers.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, dbPool, err := setupStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("driver", cfg.StorageDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool, logger)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	metricsCollector := metrics.NewMetricsCollector()

	dispatcher := events.NewDispatcher(logger,
		events.NewLoggingObserver(logger),
		metricsCollector,
	)
	if posthogClient.IsInitialized() {
		dispatcher.Register(events.NewAnalyticsObserver(posthogClient))
	}
	if cfg.EventJournalPath != "" {
		journal, err := events.NewJournalObserver(cfg.EventJournalPath)
		if err != nil {
			logger.Error("Failed to open event journal", slog.String("path", cfg.EventJournalPath), slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if err := journal.Close(); err != nil {
				logger.Error("Failed to close event journal", slog.String("error", err.Error()))
			}
		}()
		dispatcher.Register(journal)
	}
	dispatcher.Start(ctx)

	serviceContainer := services.NewServiceContainer(repos, dispatcher,
		services.WithRetryPolicy(services.RetryPolicy{MaxRetries: cfg.RetryMaxRetries, BaseDelay: cfg.RetryBaseDelay}),
		services.WithLedgerMetrics(metricsCollector),
	)

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := handlers.RegisterValidators(); err != nil {
		logger.Error("Failed to register validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r := gin.New()
	r.Use(cors.New(corsConfig(cfg)))
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(metricsCollector.Middleware())
	r.Use(middleware.PosthogMiddleware(posthogClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, handlers.RouteDeps{
		Health:      repos.Health,
		Metrics:     metricsCollector.GetHandler(),
		RateLimiter: rateLimiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
	// Requests are finished; drain what they published before closing the journal and analytics.
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		logger.Error("Event dispatcher did not drain", slog.String("error", err.Error()))
	}
	logger.Info("Server exited")
}

// setupStorage returns the repositories for the configured driver. The pool is nil for memory storage.
func setupStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, *pgxpool.Pool, error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("Using in-memory storage, data is lost on restart")
		return memory.NewRepositoryProvider(memory.NewStore()), nil, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck, logger)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}

	logger.Info("Running database migrations", slog.String("source", cfg.MigrationsPath))
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		dbPool.Close()
		return portsrepo.RepositoryProvider{}, nil, err
	}

	return pgsql.NewRepositoryProvider(dbPool), dbPool, nil
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	corsCfg.ExposeHeaders = []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"}
	if len(cfg.CORSAllowedOrigins) == 0 || (len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	}
	return corsCfg
}
