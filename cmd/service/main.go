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

	"github.com/jsamuelsen/stackable/internal/adapters/authz"
	"github.com/jsamuelsen/stackable/internal/adapters/flags"
	"github.com/jsamuelsen/stackable/internal/adapters/http"
	"github.com/jsamuelsen/stackable/internal/adapters/http/handlers"
	"github.com/jsamuelsen/stackable/internal/adapters/sqlite"
	"github.com/jsamuelsen/stackable/internal/adapters/views"
	"github.com/jsamuelsen/stackable/internal/platform/config"
	"github.com/jsamuelsen/stackable/internal/platform/logging"
	"github.com/jsamuelsen/stackable/internal/ports"
	"github.com/jsamuelsen/stackable/internal/stack"
	"github.com/jsamuelsen/stackable/internal/stack/elements"
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
	logCfg := logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
	}
	if cfg.Log.File.Enabled {
		logCfg.File = &logging.FileConfig{
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		}
	}

	logger := logging.New(logCfg)
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Open the database and register its health check
	db, err := sqlite.New(cfg.DB.Path, logger)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("database close error", slog.Any("error", closeErr))
		}
	}()

	healthRegistry := ports.NewHealthRegistry()
	if err := healthRegistry.Register(db); err != nil {
		return fmt.Errorf("registering database health check: %w", err)
	}

	// 5. Create collaborator adapters
	authorizer := authz.New(&cfg.Auth)
	selector := views.New()
	flagProvider := flags.New(map[string]string{
		"enrich.failure_policy": cfg.Enrich.FailurePolicy,
		"greeting.motd":         "stack responsibly",
	})

	// 6. Assemble the chains, outermost first
	actionCfg := &stack.ActionConfig{Logger: logger}

	notesChain := stack.NewChain(
		elements.NewRequestID(),
		elements.NewLogging(logger),
		elements.NewTimeout(cfg.Server.RequestTimeout),
		elements.NewAuthorize(authorizer, logger),
		elements.NewTemplateSelect(selector),
		elements.NewDBSession(db, logger),
	)

	greetingChain := stack.NewChain(
		elements.NewRequestID(),
		elements.NewLogging(logger),
		elements.NewTimeout(cfg.Server.RequestTimeout),
		elements.NewAuthorize(authorizer, logger),
		elements.NewTemplateSelect(selector),
		elements.NewEnrich(elements.EnrichConfig{
			Sources: []elements.Source{handlers.NewMotdSource(flagProvider)},
			Timeout: cfg.Enrich.Timeout,
			Policy:  elements.FailurePolicy(cfg.Enrich.FailurePolicy),
			Flags:   flagProvider,
			Logger:  logger,
		}),
	)

	// 7. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo)
	notesHandler := handlers.NewNotesHandler(stack.NewAction(notesChain, actionCfg))
	greetingHandler := handlers.NewGreetingHandler(stack.NewAction(greetingChain, actionCfg))

	// 8. Create HTTP server and routes
	server := http.New(&cfg.Server, logger)

	http.SetupRouter(server.Engine(), http.RouterConfig{
		HealthHandler:   healthHandler,
		NotesHandler:    notesHandler,
		GreetingHandler: greetingHandler,
	})

	// 9. Start server (non-blocking)
	serverErr := server.Start()

	// 10. Wait for shutdown signal
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
