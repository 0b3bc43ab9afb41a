package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"calcpro/internal/calculator"
	"calcpro/internal/config"
	"calcpro/internal/observability"
	"calcpro/internal/server"
	"calcpro/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to the TOML config file (default $"+config.PathEnv+")")
	envFile := flag.String("env-file", "", "load environment variables from this file instead of .env")
	flag.Parse()

	if err := run(*configPath, *envFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, envFile string) error {

	var envFiles []string
	if envFile != "" {
		envFiles = append(envFiles, envFile)
	}
	if err := loadDotEnv(envFiles...); err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Logger
	observability.SetServiceName(cfg.Telemetry.ServiceName)
	if err := observability.InitLogger(cfg.Log); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer observability.SyncLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing, metrics and OTLP logs
	telemetryShutdown, err := initTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration)
		defer cancel()
		if err := telemetryShutdown(flushCtx); err != nil {
			observability.Logger.Warn("telemetry shutdown", zap.Error(err))
		}
	}()

	calculator.Configure(cfg.Calculator)
	watchConfig(ctx, config.Path(configPath))

	// Router
	router := server.NewRouter()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		observability.Logger.Info("server started",
			zap.String("addr", cfg.Server.Addr),
			zap.String("version", version.String()),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	return waitForShutdown(srv, cfg.Server.ShutdownTimeout.Duration)
}

// watchConfig applies calculator settings from the config file whenever it
// changes. Listener and telemetry settings need a restart.
func watchConfig(ctx context.Context, path string) {
	if path == "" {
		return
	}

	err := config.Watch(ctx, path,
		func(cfg *config.Config) {
			calculator.Configure(cfg.Calculator)
			observability.Logger.Info("calculator settings reloaded",
				zap.Int("default_precision", cfg.Calculator.DefaultPrecision),
				zap.Int("max_operands", cfg.Calculator.MaxOperands),
			)
		},
		func(err error) {
			observability.Logger.Warn("config reload rejected", zap.Error(err))
		},
	)
	if err != nil {
		observability.Logger.Warn("config watcher not started", zap.String("path", path), zap.Error(err))
	}
}

func waitForShutdown(srv *http.Server, timeout time.Duration) error {

	observability.Logger.Info("shutting down", zap.Duration("timeout", timeout))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return srv.Shutdown(ctx)
}
