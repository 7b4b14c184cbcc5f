package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/transaction_processor/cmd/docs"
	portsrepo "github.com/SscSPs/transaction_processor/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/transaction_processor/internal/core/ports/services"
	"github.com/SscSPs/transaction_processor/internal/middleware"
	"github.com/SscSPs/transaction_processor/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouteDeps carries infrastructure that routes need besides the services.
type RouteDeps struct {
	Health      portsrepo.HealthChecker
	Metrics     http.Handler
	RateLimiter *limiter.Limiter
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	r.GET("/health", healthHandler(deps.Health))
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	setupAPIV1Routes(r, cfg, services, deps)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	v1 := r.Group("/api/v1")
	if deps.RateLimiter != nil {
		v1.Use(middleware.RateLimit(deps.RateLimiter))
	}
	v1.Use(middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	registerAccountRoutes(v1, services.Account)
	registerTransactionRoutes(v1, services.Transaction)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthHandler godoc
// @Summary Health check
// @Description Reports whether the service and its storage are reachable
// @Tags root
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func healthHandler(checker portsrepo.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if checker == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := checker.Ping(ctx); err != nil {
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Storage health check failed", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "storage": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "storage": "up"})
	}
}
