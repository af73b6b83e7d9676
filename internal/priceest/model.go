// Package priceest implements the standard price estimator: it tracks the
// most recent trade, the price range observed since the last evaluation,
// and composes a confidence interval from an injected volatility model.
package priceest

import (
	"lv-priceest/internal/model"
	"lv-priceest/internal/xtime"
)

// Model is the capability set the price estimator needs from a
// volatility source. The candle-ring Estimator in package volatility is
// the default concrete implementation; tests inject stubs.
type Model interface {
	AddTrade(model.Trade) error
	EvalAtTime(now xtime.Timestamp) (model.PriceInterval, bool, error)
}

// Config holds the standard price estimator's tunables. Zero values take
// the package defaults in New.
type Config struct {
	// MinConfInterval floors every emitted confidence interval. Default 0.01.
	MinConfInterval model.PriceInterval
	// TimeoutNS is the staleness timeout: a last trade older than this
	// at evaluation time yields no estimate. Default 60s.
	TimeoutNS xtime.Duration
	// MinSlotNS floors the elapsed-time slot used to scale volatility.
	// Default 500ms.
	MinSlotNS xtime.Duration
	// InitVolatility is the fallback annualised volatility used while the
	// volatility model has no estimate yet. Default 1.0.
	InitVolatility model.PriceInterval
	// VolatilityModel is injected; if nil, New builds a fresh candle
	// ring volatility estimator with default settings.
	VolatilityModel Model
}

const (
	defaultMinConfInterval = model.PriceInterval(0.01)
	defaultTimeoutNS       = xtime.Duration(60 * 1_000_000_000)
	defaultMinSlotNS       = xtime.Duration(500 * 1_000_000)
	defaultInitVolatility  = model.PriceInterval(1.0)
)

func (c Config) withDefaults() Config {
	if c.MinConfInterval == 0 {
		c.MinConfInterval = defaultMinConfInterval
	}
	if c.TimeoutNS == 0 {
		c.TimeoutNS = defaultTimeoutNS
	}
	if c.MinSlotNS == 0 {
		c.MinSlotNS = defaultMinSlotNS
	}
	if c.InitVolatility == 0 {
		c.InitVolatility = defaultInitVolatility
	}
	return c
}
