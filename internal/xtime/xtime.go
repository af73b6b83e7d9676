// Package xtime implements the timestamp/duration arithmetic the price
// estimation core runs on: an unsigned nanosecond wall-clock timestamp and a
// signed nanosecond duration, kept distinct from time.Time so the core never
// carries timezone or monotonic-reading baggage.
package xtime

// NSPerYear is the number of nanoseconds in a 365-day year, used to
// annualise the volatility estimate. Must match the reference constant
// exactly or downstream outputs will not reproduce.
const NSPerYear = int64(365) * 24 * 3600 * 1_000_000_000

// Timestamp is an unsigned count of nanoseconds since an unspecified epoch.
type Timestamp uint64

// Duration is a signed count of nanoseconds.
type Duration int64

// AddTime returns ts advanced by dur. dur may be negative.
func AddTime(ts Timestamp, dur Duration) Timestamp {
	return Timestamp(int64(ts) + int64(dur))
}

// DiffTimes returns a - b as a signed duration. No saturation: callers that
// need a non-negative result must check it themselves — a negative elapsed
// time at evaluation is a precondition violation, not something this
// helper clamps away.
func DiffTimes(a, b Timestamp) Duration {
	return Duration(int64(a) - int64(b))
}

// FloorTime truncates ts to the greatest multiple of interval that is <= ts.
// interval must be > 0; callers are responsible for checking that
// precondition before calling.
func FloorTime(ts Timestamp, interval Duration) Timestamp {
	i := int64(interval)
	t := int64(ts)
	return Timestamp(t - (t % i))
}
