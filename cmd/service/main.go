// Package main is the entry point for the service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/quotecraft/quotecraft/internal/adapters/genai"
	"github.com/quotecraft/quotecraft/internal/adapters/http"
	"github.com/quotecraft/quotecraft/internal/adapters/http/handlers"
	"github.com/quotecraft/quotecraft/internal/adapters/mail"
	"github.com/quotecraft/quotecraft/internal/adapters/pdf"
	"github.com/quotecraft/quotecraft/internal/app"
	"github.com/quotecraft/quotecraft/internal/platform/config"
	"github.com/quotecraft/quotecraft/internal/platform/logging"
	"github.com/quotecraft/quotecraft/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	slog.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Create health registry
	healthRegistry := ports.NewHealthRegistry()

	// 5. Create the text-generation client
	generator, err := genai.NewClient(ctx, cfg.GenAI, logger)
	if err != nil {
		return fmt.Errorf("creating generation client: %w", err)
	}

	if err := healthRegistry.Register(generator); err != nil {
		return fmt.Errorf("registering generation health check: %w", err)
	}

	// 6. Create the PDF renderer
	renderer := pdf.NewRenderer()

	// 7. Create the mail dispatcher
	dispatcher, err := mail.NewDispatcher(cfg.Mail, logger)
	if err != nil {
		return fmt.Errorf("creating mail dispatcher: %w", err)
	}

	if err := healthRegistry.Register(dispatcher); err != nil {
		return fmt.Errorf("registering mail health check: %w", err)
	}

	// 8. Create the session store and start its expiry janitor
	store := app.NewSessionStore(cfg.Session, logger)

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()

	go store.Run(janitorCtx)

	// 9. Create the workflow and action services
	workflow := app.NewWorkflow(app.WorkflowConfig{
		Store:     store,
		Generator: generator,
		Renderer:  renderer,
		Mailer:    dispatcher,
		Logger:    logger,
		Metrics:   app.NewMetrics(prometheus.DefaultRegisterer),
	})
	actions := app.NewQuotationService(workflow, logger)

	// 10. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo)
	sessionHandler := handlers.NewSessionHandler(workflow, actions, logger)
	sendMailHandler := handlers.NewSendMailHandler(actions, logger)
	schemaHandler := handlers.NewSchemaHandler()

	// 11. Create HTTP server
	server := http.New(&cfg.Server, logger)

	// 12. Setup router with all middleware and routes
	routerCfg := http.RouterConfig{
		Logger:          logger,
		HealthHandler:   healthHandler,
		SessionHandler:  sessionHandler,
		SendMailHandler: sendMailHandler,
		SchemaHandler:   schemaHandler,
		Timeout:         http.DefaultRequestTimeout,
	}
	http.SetupRouter(server.Engine(), routerCfg)

	// 13. Start server (non-blocking)
	serverErr := server.Start()

	// 14. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	// Listen for OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		// Server error during startup or runtime
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	// Graceful shutdown sequence
	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
