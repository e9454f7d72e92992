// Package main is the entry point for the voice-agent-gateway server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hpn/voice-agent-gateway/internal/adapter"
	"github.com/hpn/voice-agent-gateway/internal/config"
	"github.com/hpn/voice-agent-gateway/internal/domain"
	"github.com/hpn/voice-agent-gateway/internal/handler"
	"github.com/hpn/voice-agent-gateway/internal/security"
	"github.com/hpn/voice-agent-gateway/internal/ui"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(execute(newRootCmd()))
}

// execute runs cmd until SIGINT or SIGTERM and returns the process exit code.
func execute(cmd *cobra.Command) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		envFile    string
	)

	cmd := &cobra.Command{
		Use:          "voice-agent-gateway",
		Short:        "Create vapi and retell voice agents through one endpoint",
		Version:      version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadDotEnv(envFile); err != nil {
				return fmt.Errorf("failed to load %s: %w", envFile, err)
			}

			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}

			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to config.yaml (default: search ., ./configs, /etc/voice-agent-gateway)")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before configuration; missing file is ignored")
	cmd.Flags().Int("port", 0, "listener port (overrides PORT)")
	cmd.Flags().String("host", "", "bind address")
	cmd.Flags().String("log-level", "", "log level: debug, info, warn, error")

	return cmd
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
// Variables already present in the environment are not overwritten.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// run serves until ctx is cancelled, then shuts down gracefully.
func run(ctx context.Context, cfg *config.Configuration) error {
	// =========================================================================
	// 1. Setup structured logger
	// =========================================================================
	logger := setupLogger(cfg, os.Stdout)

	logger.Info("configuration loaded",
		slog.String("host", cfg.Server.Host),
		slog.Int("port", cfg.Server.Port),
		slog.String("vapi_endpoint", cfg.Providers.Vapi.Endpoint),
		slog.String("retell_endpoint", cfg.Providers.Retell.Endpoint),
	)

	for _, p := range cfg.MissingAPIKeys() {
		logger.Warn("provider api key not configured; requests will be rejected upstream",
			slog.String("provider", p.String()),
		)
	}

	// =========================================================================
	// 2. Build HTTP server
	// =========================================================================
	srv := buildServer(cfg, logger)

	if cfg.UI.Banner {
		ui.PrintBanner(version)
		ui.PrintStartupInfo(cfg.Server.Host, cfg.Server.Port, map[string]bool{
			domain.ProviderVapi.String():   cfg.Providers.Vapi.APIKey != "",
			domain.ProviderRetell.String(): cfg.Providers.Retell.APIKey != "",
		})
	}

	// =========================================================================
	// 3. Start HTTP server with graceful shutdown
	// =========================================================================
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")
	if cfg.UI.Banner {
		ui.PrintShutdown()
	}

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("server stopped gracefully")
	if cfg.UI.Banner {
		ui.PrintGoodbye()
	}
	return nil
}

// buildServer wires adapters, handler and router into an http.Server.
func buildServer(cfg *config.Configuration, logger *slog.Logger) *http.Server {
	agents := handler.NewAgentHandler(
		buildProviders(cfg),
		handler.WithLogger(logger),
		handler.WithConsole(cfg.UI.Console),
	)

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler.NewRouter(agents, logger),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}
}

// buildProviders creates one adapter per supported provider.
func buildProviders(cfg *config.Configuration) []adapter.AgentProvider {
	vapi := cfg.Provider(domain.ProviderVapi)
	retell := cfg.Provider(domain.ProviderRetell)

	return []adapter.AgentProvider{
		adapter.NewVapiAdapter(vapi.APIKey,
			adapter.WithEndpoint(vapi.Endpoint),
			adapter.WithTimeout(vapi.Timeout()),
		),
		adapter.NewRetellAdapter(retell.APIKey,
			adapter.WithEndpoint(retell.Endpoint),
			adapter.WithTimeout(retell.Timeout()),
		),
	}
}

// setupLogger creates the redacting structured logger and installs it as default.
func setupLogger(cfg *config.Configuration, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var base slog.Handler
	if cfg.Logging.Format == "text" {
		base = slog.NewTextHandler(w, opts)
	} else {
		base = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(security.NewRedactedHandler(base,
		cfg.Providers.Vapi.APIKey,
		cfg.Providers.Retell.APIKey,
	))

	// Set as default logger
	slog.SetDefault(logger)

	return logger
}
