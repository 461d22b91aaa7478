package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"postboard/internal/config"
	hhttp "postboard/internal/handler/http"
	hboard "postboard/internal/handler/http/board"
	"postboard/internal/handler/http/requestid"
	"postboard/internal/infra/placeholder"
	"postboard/internal/observability/logging"
	"postboard/internal/observability/tracing"
	boardUC "postboard/internal/usecase/board"
)

func main() {
	cfg := loadConfig()
	logger := initLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, session := initBoard(ctx, logger, cfg)
	handler := setupRoutes(logger, cfg, client, session)

	if err := runServer(ctx, logger, cfg, handler); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// loadConfig reads and validates the configuration, exiting on failure.
func loadConfig() *config.BoardConfig {
	cfg, err := config.LoadBoardConfig()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	return cfg
}

// initLogger builds the JSON logger and installs it as the default.
func initLogger(cfg *config.BoardConfig) *slog.Logger {
	logger := logging.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)
	return logger
}

// initBoard builds the API client and starts the page session. A page whose
// user list failed to load is still served and retries the list on later turns.
func initBoard(ctx context.Context, logger *slog.Logger, cfg *config.BoardConfig) (*placeholder.Client, *boardUC.Session) {
	client, err := placeholder.NewClient(placeholder.Config{
		BaseURL:      cfg.API.BaseURL,
		Timeout:      cfg.API.Timeout,
		RateLimit:    cfg.API.RateLimit,
		RateBurst:    cfg.API.RateBurst,
		MaxBodyBytes: cfg.API.MaxBodyBytes,
		Breaker:      cfg.API.BreakerConfig(),
	}, nil, logger)
	if err != nil {
		logger.Error("failed to create placeholder client", slog.Any("error", err))
		os.Exit(1)
	}

	session, err := boardUC.NewSession(client, logger)
	if err != nil {
		logger.Error("failed to create page session", slog.Any("error", err))
		os.Exit(1)
	}

	startCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.RequestTimeout)
	defer cancel()
	if err := session.Start(startCtx); err != nil {
		logger.Error("page initialization failed", slog.Any("error", err))
	} else {
		logger.Info("page initialized", slog.String("api", client.BaseURL()))
	}
	return client, session
}

// setupRoutes registers the page and probe routes and wraps them in the
// middleware chain, outermost first.
func setupRoutes(logger *slog.Logger, cfg *config.BoardConfig, client *placeholder.Client, session *boardUC.Session) http.Handler {
	mux := http.NewServeMux()
	hboard.Register(mux, session, logger)
	mux.Handle("GET /health", &hhttp.HealthHandler{Upstream: client, Page: session, Version: cfg.Version})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Page: session})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	return hhttp.Chain(mux,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.MetricsMiddleware,
		hhttp.LimitRequestBody(cfg.HTTP.MaxRequestBytes),
		hhttp.CSP(hhttp.DefaultCSPConfig(cfg.HTTP.CSPEnabled, cfg.HTTP.CSPReportOnly)),
		hhttp.Timeout(cfg.HTTP.RequestTimeout),
	)
}

// runServer serves until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, logger *slog.Logger, cfg *config.BoardConfig, handler http.Handler) error {
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTP.Addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", slog.Any("error", err))
			return err
		}
		logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}
