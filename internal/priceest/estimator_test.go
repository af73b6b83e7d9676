package priceest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lv-priceest/internal/model"
	"lv-priceest/internal/xtime"
)

// stubVolModel is a Model test double returning a fixed (or absent)
// volatility, independent of trades fed to it.
type stubVolModel struct {
	vol model.PriceInterval
	ok  bool
}

func (s *stubVolModel) AddTrade(model.Trade) error { return nil }
func (s *stubVolModel) EvalAtTime(xtime.Timestamp) (model.PriceInterval, bool, error) {
	return s.vol, s.ok, nil
}

const secNS = xtime.Duration(1_000_000_000)

func newTestEstimator(t *testing.T, vol model.PriceInterval, volOK bool) *Estimator {
	t.Helper()
	est, err := New(Config{
		MinConfInterval: 0.01,
		TimeoutNS:       60 * secNS,
		MinSlotNS:       1 * secNS,
		InitVolatility:  1.0,
		VolatilityModel: &stubVolModel{vol: vol, ok: volOK},
	})
	require.NoError(t, err)
	return est
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(Config{MinConfInterval: -1})
	assert.Error(t, err)

	_, err = New(Config{InitVolatility: -1})
	assert.Error(t, err)

	_, err = New(Config{MinSlotNS: 100, TimeoutNS: 50})
	assert.Error(t, err)
}

func TestEvalAtTimeEmpty(t *testing.T) {
	est := newTestEstimator(t, 0.2, true)
	_, ok, err := est.EvalAtTime(0)
	require.NoError(t, err)
	assert.False(t, ok, "no trade yet must yield no estimate")
}

func TestAddTradeRejectsNonPositivePriceAndNonMonotoneTime(t *testing.T) {
	est := newTestEstimator(t, 0.2, true)
	require.Error(t, est.AddTrade(model.Trade{Price: 0, Time: 0}))

	require.NoError(t, est.AddTrade(model.Trade{Price: 100, Time: xtime.Timestamp(10 * secNS)}))
	err := est.AddTrade(model.Trade{Price: 100, Time: xtime.Timestamp(5 * secNS)})
	assert.Error(t, err, "time going backwards must be rejected")
}

func TestEvalAtTimeStaleDoesNotClearRange(t *testing.T) {
	est := newTestEstimator(t, 0.2, true)
	require.NoError(t, est.AddTrade(model.Trade{Price: 100, Time: 0}))
	require.NoError(t, est.AddTrade(model.Trade{Price: 110, Time: xtime.Timestamp(1 * secNS)}))

	// now is well past TimeoutNS (60s) since the last trade.
	_, ok, err := est.EvalAtTime(xtime.Timestamp(120 * secNS))
	require.NoError(t, err)
	assert.False(t, ok, "stale evaluation must yield no estimate")
	require.NotNil(t, est.rangeSinceEval, "stale path must preserve the accumulated range")
	assert.Equal(t, model.PriceVal(110), est.rangeSinceEval.High)
	assert.Equal(t, model.PriceVal(100), est.rangeSinceEval.Low)
}

func TestEvalAtTimeClearsRangeOnSuccess(t *testing.T) {
	est := newTestEstimator(t, 0.2, true)
	require.NoError(t, est.AddTrade(model.Trade{Price: 100, Time: 0}))
	require.NoError(t, est.AddTrade(model.Trade{Price: 120, Time: xtime.Timestamp(1 * secNS)}))

	_, ok, err := est.EvalAtTime(xtime.Timestamp(2 * secNS))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, est.rangeSinceEval, "a successful eval must clear the accumulated range")
}

func TestEvalAtTimeFloorsConfToMinInterval(t *testing.T) {
	est := newTestEstimator(t, 0, false) // no volatility source, falls back to InitVolatility=1.0
	require.NoError(t, est.AddTrade(model.Trade{Price: 1, Time: 0}))

	estimate, ok, err := est.EvalAtTime(xtime.Timestamp(1)) // elapsed=1ns, slot floors to MinSlotNS
	require.NoError(t, err)
	require.True(t, ok)
	assert.GreaterOrEqual(t, float64(estimate.Conf), 0.01, "conf must never fall below MinConfInterval")
}

func TestEvalAtTimeWidensConfWithRangeSinceEval(t *testing.T) {
	est := newTestEstimator(t, 0, false)
	require.NoError(t, est.AddTrade(model.Trade{Price: 100, Time: 0}))
	require.NoError(t, est.AddTrade(model.Trade{Price: 1000, Time: 1})) // huge swing within the same slot

	estimate, ok, err := est.EvalAtTime(2)
	require.NoError(t, err)
	require.True(t, ok)
	// range interval = (1000-100)/2 = 450, which must dominate the
	// volatility-derived confidence for this tiny elapsed slot.
	assert.GreaterOrEqual(t, float64(estimate.Conf), 450.0)
}
