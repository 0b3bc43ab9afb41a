package calculator

import (
	"sync/atomic"

	"calcpro/internal/config"
)

var (
	defaultPrecision atomic.Int64
	maxOperands      atomic.Int64
)

func init() {
	Configure(config.Default().Calculator)
}

// Configure applies calculator settings. It is safe to call while requests
// are being served, which is how config reloads take effect.
func Configure(cfg config.CalculatorConfig) {
	defaultPrecision.Store(int64(cfg.DefaultPrecision))
	maxOperands.Store(int64(cfg.MaxOperands))
}

// DefaultPrecision returns the precision used by chains that do not set one.
// config.NoPrecision means results are not rounded.
func DefaultPrecision() int {
	return int(defaultPrecision.Load())
}

// MaxOperands returns the largest number of values a single request may carry.
func MaxOperands() int {
	return int(maxOperands.Load())
}
