package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quotecraft/quotecraft/internal/adapters/http/handlers"
	"github.com/quotecraft/quotecraft/internal/adapters/http/middleware"
)

// DefaultRequestTimeout is the default timeout for API requests.
// AI-backed operations can take well over a minute end to end.
const DefaultRequestTimeout = 120 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// SessionHandler handles quotation session endpoints.
	SessionHandler *handlers.SessionHandler

	// SendMailHandler handles the sessionless send-email endpoint.
	SendMailHandler *handlers.SendMailHandler

	// SchemaHandler serves the intake form schema.
	SchemaHandler *handlers.SchemaHandler

	// Timeout is the default request timeout.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. Logging - request logging (skips health endpoints)
//  5. Timeout - request deadline (applied on the API groups)
//
// Route groups:
//   - /-/ (internal): Health endpoints, no auth required
//   - /api/ (compatibility): sessionless send-email endpoint
//   - /api/v1/ (public API): session workflow endpoints
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	// Apply global middleware in order
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		middleware.Logging(cfg.Logger),
	)

	// Register health endpoints (no auth, no timeout for probes)
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	api := engine.Group("/api")
	api.Use(middleware.SimpleTimeout(timeout))

	if cfg.SendMailHandler != nil {
		api.POST("/send-email", cfg.SendMailHandler.SendEmail)
	}

	apiV1 := api.Group("/v1")
	setupAPIRoutes(apiV1, cfg)
}

// setupAPIRoutes registers business API routes.
func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.SessionHandler != nil {
		cfg.SessionHandler.RegisterSessionRoutes(rg)
	}

	if cfg.SchemaHandler != nil {
		rg.GET("/quotation/schema", cfg.SchemaHandler.Schema)
	}
}

// SetupMinimalRouter sets up a minimal router with just health endpoints.
// Useful for testing or lightweight deployments.
func SetupMinimalRouter(engine *gin.Engine, logger *slog.Logger, healthHandler *handlers.HealthHandler) {
	engine.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
	)

	if healthHandler != nil {
		healthHandler.RegisterHealthRoutesOnEngine(engine)
	}
}
