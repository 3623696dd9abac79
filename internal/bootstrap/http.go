package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hireloop/hireloop/config"
	httpx "github.com/hireloop/hireloop/internal/http"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services *ServiceContainer
	Logger   *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil || cfg.Services == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	services := httpx.RouterServices{
		Sessions:     cfg.Services.Sessions,
		Gate:         cfg.Services.Gate,
		Candidates:   cfg.Services.Candidates,
		Employers:    cfg.Services.Employers,
		Jobs:         cfg.Services.Jobs,
		Applications: cfg.Services.Applications,
		Bench:        cfg.Services.Bench,
		Files:        cfg.Services.Files,
		Match:        cfg.Services.Match,
		Verifier:     cfg.Services.Employers,
		SSOEnabled:   cfg.Services.Employers.SSOEnabled(),
		CookieDomain: appCfg.HTTP.CookieDomain,
		Logger:       logger,
	}

	// Order: Recover -> Logging -> Router (visitor cookie is applied inside
	// the router so every route sees a visitor id).
	handler := httpx.NewRouter(services)
	h := httpx.Logging(logger)(handler)
	h = httpx.Recover(logger)(h)

	return startServer(logger, h, appCfg.HTTP.Addr)
}

func startServer(logger *slog.Logger, handler http.Handler, addr string) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}

	if logger != nil {
		logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if logger != nil {
		logger.Info("HTTP server stopped")
	}

	return nil
}
