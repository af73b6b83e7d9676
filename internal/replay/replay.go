// Package replay implements the deterministic replay driver: it
// interleaves a monotone trade stream and a monotone evaluation stream
// into a single model under test, comparing every evaluation's output to
// an expected (price, confidence) pair within a relative tolerance.
package replay

import (
	"lv-priceest/internal/column"
	"lv-priceest/internal/fail"
	"lv-priceest/internal/model"
	"lv-priceest/internal/xtime"
)

// DefaultRTol is the default relative tolerance applied to confidence
// comparisons.
const DefaultRTol = 1e-5

// Estimator is the capability set the replay driver exercises: exactly
// what priceest.Estimator implements.
type Estimator interface {
	AddTrade(model.Trade) error
	EvalAtTime(now xtime.Timestamp) (model.PriceEstimate, bool, error)
}

// Trades is the parallel-array trade input.
type Trades struct {
	Times  column.Column[xtime.Timestamp]
	Prices column.Column[model.PriceVal]
}

// Evals is the parallel-array evaluation input, carrying the expected
// output alongside each evaluation time.
type Evals struct {
	Times     column.Column[xtime.Timestamp]
	ExpPrices column.Column[model.PriceVal]
	ExpConfs  column.Column[model.PriceInterval]
}

// Result summarises a replay run.
type Result struct {
	TradesFed    int
	EvalsChecked int
}

// Run feeds trades and evals into est in deterministic merged order,
// comparing every evaluation's output against the expected value. rtol
// <= 0 selects DefaultRTol. It returns as soon as a precondition
// violation, input error, or comparison mismatch occurs.
func Run(est Estimator, trades Trades, evals Evals, rtol float64) (Result, error) {
	if rtol <= 0 {
		rtol = DefaultRTol
	}

	nT := trades.Times.Size()
	if err := fail.RequireInput(nT == trades.Prices.Size(), "len(trade.times) == len(trade.prices)",
		"trade times has %d entries, trade prices has %d", nT, trades.Prices.Size()); err != nil {
		return Result{}, err
	}
	nE := evals.Times.Size()
	if err := fail.RequireInput(nE == evals.ExpPrices.Size() && nE == evals.ExpConfs.Size(),
		"len(eval.times) == len(eval.prices) == len(eval.confs)",
		"eval times has %d entries, prices has %d, confs has %d", nE, evals.ExpPrices.Size(), evals.ExpConfs.Size()); err != nil {
		return Result{}, err
	}

	var res Result
	var haveLastT, haveLastE bool
	var lastT, lastE xtime.Timestamp

	ti, ei := 0, 0
	for {
		hasEval := ei < nE
		var evalTime xtime.Timestamp
		if hasEval {
			evalTime = evals.Times.At(ei)
		}

		if ti < nT && (!hasEval || evalTime > trades.Times.At(ti)) {
			t := trades.Times.At(ti)
			if haveLastT {
				if err := fail.Require(t >= lastT, "trade.times non-decreasing",
					"trade time %d at index %d precedes previous trade time %d", t, ti, lastT); err != nil {
					return res, err
				}
			}
			lastT, haveLastT = t, true

			trade := model.Trade{Price: trades.Prices.At(ti), Time: t}
			if err := est.AddTrade(trade); err != nil {
				return res, err
			}
			res.TradesFed++
			ti++
			continue
		}

		if hasEval {
			if haveLastE {
				if err := fail.Require(evalTime >= lastE, "eval.times non-decreasing",
					"eval time %d at index %d precedes previous eval time %d", evalTime, ei, lastE); err != nil {
					return res, err
				}
			}
			lastE, haveLastE = evalTime, true

			expConf := evals.ExpConfs.At(ei)
			if err := fail.RequireInput(expConf >= 0, "expected.conf >= 0",
				"expected confidence %g at index %d must be non-negative", expConf, ei); err != nil {
				return res, err
			}

			actual, ok, err := est.EvalAtTime(evalTime)
			if err != nil {
				return res, err
			}
			if err := compare(ei, ok, actual, evals.ExpPrices.At(ei), expConf, rtol); err != nil {
				return res, err
			}
			res.EvalsChecked++
			ei++
			continue
		}

		return res, nil
	}
}

func compare(idx int, ok bool, actual model.PriceEstimate, expPrice model.PriceVal, expConf model.PriceInterval, rtol float64) error {
	if !ok {
		return fail.RequireMatch(expPrice == 0 && expConf == 0, "absent estimate sentinel",
			"eval %d: model returned no estimate but expected (price=%d, conf=%g)", idx, expPrice, expConf)
	}
	if err := fail.RequireMatch(actual.Price == expPrice, "actual.price == expected.price",
		"eval %d: actual price %d != expected price %d", idx, actual.Price, expPrice); err != nil {
		return err
	}
	lo := expConf * (1 - model.PriceInterval(rtol))
	hi := expConf * (1 + model.PriceInterval(rtol))
	return fail.RequireMatch(actual.Conf >= lo && actual.Conf <= hi, "actual.conf within tolerance",
		"eval %d: actual conf %g outside [%g, %g] (expected %g, rtol %g)", idx, actual.Conf, lo, hi, expConf, rtol)
}
