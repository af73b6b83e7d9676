package volatility

import (
	"math"

	"lv-priceest/internal/fail"
	"lv-priceest/internal/model"
	"lv-priceest/internal/xtime"
)

var ln2 = math.Log(2)

// Estimator is a fixed-capacity ring of candles producing an annualised
// Parkinson-style high-low volatility estimate once the ring is full. It
// implements the Model capability set priceest.Estimator depends on:
// AddTrade and EvalAtTime.
type Estimator struct {
	cfg  Config
	ring *ring
}

// NewEstimator builds an Estimator. cfg's zero values take the package
// defaults (lookback 20, candle duration 60s).
func NewEstimator(cfg Config) *Estimator {
	cfg = cfg.withDefaults()
	capacity := cfg.Lookback + 1
	return &Estimator{cfg: cfg, ring: newRing(capacity)}
}

// AddTrade ingests one trade, rotating the ring onto a new front candle
// when the trade starts a new bucket and widening the front candle
// otherwise.
func (e *Estimator) AddTrade(t model.Trade) error {
	if err := fail.Require(t.Price > 0, "trade.Price > 0", "trade price %d must be positive", t.Price); err != nil {
		return err
	}
	start := xtime.FloorTime(t.Time, e.cfg.CandleDuration)
	price := float64(t.Price)

	if e.ring.count == 0 || start > e.ring.frontStart() {
		e.ring.pushFront(start, price)
	}
	if err := fail.Require(start == e.ring.frontStart(), "start == front.start",
		"trade time %d floors to bucket %d, before current front bucket %d", t.Time, start, e.ring.frontStart()); err != nil {
		return err
	}
	e.ring.widenFront(price)
	return nil
}

// EvalVolatility returns the annualised Parkinson-style volatility
// estimate, or ok=false while the ring is still warming up (fewer than
// capacity candles have been observed).
func (e *Estimator) EvalVolatility() (model.PriceInterval, bool, error) {
	r := e.ring
	if r.count < r.capacity() {
		return 0, false, nil
	}

	var numer, denom float64
	for i := 0; i < r.count-1; i++ {
		curIdx := r.at(i)
		prevIdx := r.at(i + 1)

		curHigh, curLow, curStart := r.highs[curIdx], r.lows[curIdx], r.starts[curIdx]
		prevHigh, prevLow, prevStart := r.highs[prevIdx], r.lows[prevIdx], r.starts[prevIdx]

		maxHigh := math.Max(curHigh, prevHigh)
		minLow := math.Min(curLow, prevLow)
		if err := fail.Require(minLow > 0 && minLow <= maxHigh, "0 < min_low <= max_high",
			"candle pair %d/%d produced min_low=%g max_high=%g", curIdx, prevIdx, minLow, maxHigh); err != nil {
			return 0, false, err
		}
		logRatio := math.Log(maxHigh / minLow)
		numer += logRatio * logRatio

		curEnd := xtime.AddTime(curStart, e.cfg.CandleDuration)
		span := xtime.DiffTimes(curEnd, prevStart)
		if err := fail.Require(span > 0, "cur_end > prev.start",
			"candle pair %d/%d produced non-positive span %d", curIdx, prevIdx, span); err != nil {
			return 0, false, err
		}
		denom += float64(span)
	}
	denom *= 4 * ln2

	return model.PriceInterval(math.Sqrt(numer / denom * float64(xtime.NSPerYear))), true, nil
}

// EvalAtTime implements the Model interface; the candle estimator's
// volatility is independent of the query time, so t is ignored.
func (e *Estimator) EvalAtTime(_ xtime.Timestamp) (model.PriceInterval, bool, error) {
	return e.EvalVolatility()
}
