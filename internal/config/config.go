package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"
)

// PathEnv names the environment variable holding the config file path.
const PathEnv = "CALCPRO_CONFIG"

// NoPrecision disables output rounding when used as the default precision.
const NoPrecision = -1

// Config holds the complete application configuration.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Calculator CalculatorConfig `toml:"calculator"`
	Telemetry  TelemetryConfig  `toml:"telemetry"`
	Log        LogConfig        `toml:"log"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// CalculatorConfig holds calculator defaults and request limits.
type CalculatorConfig struct {
	// DefaultPrecision applies to chain requests that omit a precision.
	// NoPrecision leaves results unrounded.
	DefaultPrecision int `toml:"default_precision"`
	MaxOperands      int `toml:"max_operands"`
}

// TelemetryConfig toggles the OpenTelemetry pipelines.
type TelemetryConfig struct {
	ServiceName string `toml:"service_name"`
	Tracing     bool   `toml:"tracing"`
	Metrics     bool   `toml:"metrics"`
	Logs        bool   `toml:"logs"`
}

// LogConfig holds zap logger settings.
type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// Duration wraps time.Duration for TOML parsing.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: Duration{5 * time.Second},
		},
		Calculator: CalculatorConfig{
			DefaultPrecision: NoPrecision,
			MaxOperands:      1000,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "calcpro-api",
			Tracing:     true,
			Metrics:     true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, the TOML file at path and the
// process environment, in that order. An empty path falls back to
// CALCPRO_CONFIG; when both are empty no file is read.
func Load(path string) (*Config, error) {
	path = Path(path)

	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s: %w", path, err)
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Path resolves the config file Load would read for path: path itself, or
// CALCPRO_CONFIG when empty, with environment variables expanded.
func Path(path string) string {
	if path == "" {
		path = os.Getenv(PathEnv)
	}
	return os.ExpandEnv(path)
}

// applyEnv overrides file values with non-empty environment variables.
func (c *Config) applyEnv() error {
	var errs []error

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}

	str("CALCPRO_ADDR", &c.Server.Addr)
	if v, ok := lookup("CALCPRO_SHUTDOWN_TIMEOUT"); ok {
		if err := c.Server.ShutdownTimeout.UnmarshalText([]byte(v)); err != nil {
			errs = append(errs, fmt.Errorf("CALCPRO_SHUTDOWN_TIMEOUT: %w", err))
		}
	}
	num("CALCPRO_DEFAULT_PRECISION", &c.Calculator.DefaultPrecision)
	num("CALCPRO_MAX_OPERANDS", &c.Calculator.MaxOperands)
	str("OTEL_SERVICE_NAME", &c.Telemetry.ServiceName)
	flag("CALCPRO_TRACING", &c.Telemetry.Tracing)
	flag("CALCPRO_METRICS", &c.Telemetry.Metrics)
	flag("CALCPRO_OTEL_LOGS", &c.Telemetry.Logs)
	str("CALCPRO_LOG_LEVEL", &c.Log.Level)
	flag("CALCPRO_LOG_DEVELOPMENT", &c.Log.Development)

	return errors.Join(errs...)
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr must not be empty"))
	}
	if c.Server.ShutdownTimeout.Duration <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}
	if c.Calculator.DefaultPrecision < NoPrecision {
		errs = append(errs, fmt.Errorf("calculator.default_precision must be >= %d, got %d", NoPrecision, c.Calculator.DefaultPrecision))
	}
	if c.Calculator.MaxOperands < 1 {
		errs = append(errs, fmt.Errorf("calculator.max_operands must be positive, got %d", c.Calculator.MaxOperands))
	}
	if c.Telemetry.ServiceName == "" {
		errs = append(errs, errors.New("telemetry.service_name must not be empty"))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// ZapLevel returns the parsed log level, defaulting to info.
func (c LogConfig) ZapLevel() zapcore.Level {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}
