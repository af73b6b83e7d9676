package priceest

import (
	"math"

	"lv-priceest/internal/fail"
	"lv-priceest/internal/model"
	"lv-priceest/internal/volatility"
	"lv-priceest/internal/xtime"
)

// Estimator is the standard price estimator: it holds the last trade, the
// price range observed since the last successful evaluation, and
// delegates volatility to an injected Model.
//
// State machine (Empty/Primed/Drained/Stale):
//   - Empty: lastTrade is nil.
//   - Primed: lastTrade set, rangeSinceEval set (a trade has arrived
//     since the last successful eval, or none has happened yet).
//   - Drained: lastTrade set, rangeSinceEval nil (the last eval cleared
//     it and no trade has arrived since).
//   - Stale is not a stored state; it is a transient condition at
//     EvalAtTime when elapsed > TimeoutNS, after which the estimator
//     stays in whatever Primed/Drained state it was already in.
type Estimator struct {
	cfg            Config
	volatilityModl Model
	lastTrade      *model.Trade
	rangeSinceEval *model.PriceRange
}

// New builds a standard price estimator. Preconditions: MinConfInterval
// >= 0, InitVolatility >= 0, 0 <= MinSlotNS < TimeoutNS.
func New(cfg Config) (*Estimator, error) {
	cfg = cfg.withDefaults()
	if err := fail.Require(cfg.MinConfInterval >= 0, "min_interval >= 0",
		"min confidence interval %g must be non-negative", cfg.MinConfInterval); err != nil {
		return nil, err
	}
	if err := fail.Require(cfg.InitVolatility >= 0, "init_volatility >= 0",
		"initial volatility %g must be non-negative", cfg.InitVolatility); err != nil {
		return nil, err
	}
	if err := fail.Require(cfg.MinSlotNS >= 0 && cfg.MinSlotNS < cfg.TimeoutNS, "0 <= min_slot_ns < timeout_ns",
		"min_slot_ns %d must be in [0, timeout_ns=%d)", cfg.MinSlotNS, cfg.TimeoutNS); err != nil {
		return nil, err
	}

	volModel := cfg.VolatilityModel
	if volModel == nil {
		volModel = volatility.NewEstimator(volatility.Config{})
	}

	return &Estimator{cfg: cfg, volatilityModl: volModel}, nil
}

// AddTrade forwards the trade to the volatility model, widens (or opens)
// the range since the last evaluation, and records it as the last trade.
func (e *Estimator) AddTrade(t model.Trade) error {
	if err := fail.Require(t.Price > 0, "trade.Price > 0", "trade price %d must be positive", t.Price); err != nil {
		return err
	}
	if e.lastTrade != nil {
		if err := fail.Require(t.Time >= e.lastTrade.Time, "trade.time >= previous.trade.time",
			"trade at %d arrived before previous trade at %d", t.Time, e.lastTrade.Time); err != nil {
			return err
		}
	}
	if err := e.volatilityModl.AddTrade(t); err != nil {
		return err
	}
	if e.rangeSinceEval == nil {
		r := model.NewPriceRange(t.Price)
		e.rangeSinceEval = &r
	} else {
		e.rangeSinceEval.AddPrice(t.Price)
	}
	trade := t
	e.lastTrade = &trade
	return nil
}

// EvalAtTime evaluates the estimator at now, returning (estimate, true,
// nil) on success, (zero, false, nil) when no estimate is available
// (empty or stale), or a non-nil error on a precondition violation.
func (e *Estimator) EvalAtTime(now xtime.Timestamp) (model.PriceEstimate, bool, error) {
	if e.lastTrade == nil {
		return model.PriceEstimate{}, false, nil
	}

	elapsed := xtime.DiffTimes(now, e.lastTrade.Time)
	if err := fail.Require(elapsed >= 0, "elapsed >= 0",
		"eval time %d precedes last trade time %d", now, e.lastTrade.Time); err != nil {
		return model.PriceEstimate{}, false, err
	}
	if elapsed > e.cfg.TimeoutNS {
		// Stale: no estimate, and rangeSinceEval is preserved exactly
		// as-is so the next successful eval still sees everything
		// accumulated since the last clear.
		return model.PriceEstimate{}, false, nil
	}

	yearlyVol := e.cfg.InitVolatility
	if vol, ok, err := e.volatilityModl.EvalAtTime(now); err != nil {
		return model.PriceEstimate{}, false, err
	} else if ok {
		yearlyVol = vol
	}

	slot := elapsed
	if slot < e.cfg.MinSlotNS {
		slot = e.cfg.MinSlotNS
	}
	years := float64(slot) / float64(xtime.NSPerYear)

	conf := model.PriceInterval(float64(yearlyVol) * math.Sqrt(years) * float64(e.lastTrade.Price))
	if conf < e.cfg.MinConfInterval {
		conf = e.cfg.MinConfInterval
	}

	if e.rangeSinceEval != nil {
		if rangeConf := e.rangeSinceEval.Interval(); rangeConf > conf {
			conf = rangeConf
		}
		e.rangeSinceEval = nil
	}

	return model.PriceEstimate{Price: e.lastTrade.Price, Conf: conf}, true, nil
}
