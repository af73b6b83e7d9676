// Package model holds the plain data structs the price estimation core
// passes between its pieces: trades, emitted estimates, and the mutable
// price range a standard estimator tracks between evaluations.
package model

import "lv-priceest/internal/xtime"

// PriceVal is the raw price in instrument-native units. No internal
// scaling is ever applied to it.
type PriceVal int64

// PriceInterval is a non-negative half-width: a confidence interval, a
// volatility scalar, or a price difference expressed in floating point.
type PriceInterval float64

// Trade is a single observed trade.
type Trade struct {
	Price PriceVal
	Time  xtime.Timestamp
}

// PriceEstimate is what a price estimator emits at an evaluation instant.
type PriceEstimate struct {
	Price PriceVal
	Conf  PriceInterval
}

// PriceRange is the mutable high/low window observed since some reference
// point (since the last evaluation, in the standard price estimator).
type PriceRange struct {
	High PriceVal
	Low  PriceVal
}

// NewPriceRange opens a range at a single price.
func NewPriceRange(open PriceVal) PriceRange {
	return PriceRange{High: open, Low: open}
}

// AddPrice monotonically widens the range to include p.
func (r *PriceRange) AddPrice(p PriceVal) {
	if p > r.High {
		r.High = p
	}
	if p < r.Low {
		r.Low = p
	}
}

// Interval returns (high - low) / 2.
func (r PriceRange) Interval() PriceInterval {
	return PriceInterval(r.High-r.Low) / 2
}
