package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/stockdash/config"
	"github.com/guttosm/stockdash/internal/metrics"
	"github.com/guttosm/stockdash/internal/middleware"
)

const defaultRequestTimeout = 10 * time.Second

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Metrics, Recovery, ErrorHandler).
//   - Adds request timeout handling (cfg.Server.RequestTimeout, 10 seconds when unset).
//   - Mounts the HTML dashboard (/), Prometheus metrics (/metrics) and Swagger docs (/swagger/*any).
//   - Configures API v1 routes (/api/v1).
//   - Rate limits per client IP on / and /api/v1 only, when cfg.RateLimit.RPS > 0.
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, m *metrics.Metrics, cfg config.Config) *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(Templates())

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Metrics(m),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
	)

	// ─── Timeout ──────────────────────────────────
	timeout := cfg.Server.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Metrics & Swagger ────────────────────────
	router.GET("/metrics", gin.WrapH(m.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Only user-facing routes are throttled; /metrics and the probes are not.
	var throttle []gin.HandlerFunc
	if cfg.RateLimit.RPS > 0 {
		throttle = append(throttle, middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Handler())
	}

	// ─── Dashboard page ───────────────────────────
	router.GET("/", append(throttle, handler.Page)...)

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1", throttle...)
	{
		v1.GET("/dashboard", handler.GetDashboard)
		v1.GET("/prices", handler.GetPrices)
	}

	return router
}
