package main

import (
	"context"
	"errors"
	"fmt"

	"calcpro/internal/calculator"
	"calcpro/internal/config"
	"calcpro/internal/observability"
)

// initMetrics initialises all metric providers and application-specific
// metric instruments. Add new domain InitMetrics calls here as the project grows.
func initMetrics(ctx context.Context) (func(context.Context) error, error) {
	shutdown, err := observability.InitMetrics(ctx)
	if err != nil {
		return nil, err
	}

	if err := calculator.InitMetrics(); err != nil {
		return nil, err
	}

	return shutdown, nil
}

// initTelemetry starts the OTel pipelines enabled in cfg and returns a
// function that flushes and stops all of them.
func initTelemetry(ctx context.Context, cfg config.TelemetryConfig) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error

	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	if cfg.Tracing {
		fn, err := observability.InitTracing(ctx)
		if err != nil {
			return nil, fmt.Errorf("initializing tracing: %w", err)
		}
		shutdowns = append(shutdowns, fn)
	}

	if cfg.Metrics {
		fn, err := initMetrics(ctx)
		if err != nil {
			_ = shutdown(ctx)
			return nil, fmt.Errorf("initializing metrics: %w", err)
		}
		shutdowns = append(shutdowns, fn)
	}

	if cfg.Logs {
		fn, err := observability.InitLogging(ctx)
		if err != nil {
			_ = shutdown(ctx)
			return nil, fmt.Errorf("initializing OTLP logs: %w", err)
		}
		shutdowns = append(shutdowns, fn)
	}

	return shutdown, nil
}
