// Command replay is the test harness CLI: it loads trade and evaluation
// columns from mmap-backed files, drives them through a standard price
// estimator, and compares the emitted estimates to the expected columns
// within a relative tolerance.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"lv-priceest/internal/column"
	"lv-priceest/internal/fail"
	"lv-priceest/internal/model"
	"lv-priceest/internal/priceest"
	"lv-priceest/internal/replay"
	"lv-priceest/internal/volatility"
	"lv-priceest/internal/xtime"
)

const usage = `usage: replay --trade-prices PATH --trade-times PATH --eval-times PATH --eval-prices PATH --eval-intervals PATH [options]

required:
  --trade-prices PATH     column of PriceVal
  --trade-times PATH      column of Timestamp
  --eval-times PATH       column of Timestamp
  --eval-prices PATH      column of expected PriceVal
  --eval-intervals PATH   column of expected PriceInterval

options:
  --conf-tolerance FLOAT   relative tolerance for conf (default 1e-5)
  --init-volatility FLOAT  fallback volatility (default 1.0)
  --min-interval FLOAT     floor on conf (default 0.01)
  --min-slot-ms INT        min_slot_ns / 1e6 (default 500)
  --timeout-ms INT         timeout_ns / 1e6 (default 60000)
  --candle-secs INT        candle duration in seconds (default 60)
  --lookback INT           candle count minus 1 (default 20)
`

var knownFlags = map[string]bool{
	"trade-prices":    true,
	"trade-times":     true,
	"eval-times":      true,
	"eval-prices":     true,
	"eval-intervals":  true,
	"conf-tolerance":  true,
	"init-volatility": true,
	"min-interval":    true,
	"min-slot-ms":     true,
	"timeout-ms":      true,
	"candle-secs":     true,
	"lookback":        true,
}

func main() {
	os.Exit(run(os.Args))
}

func run(argv []string) int {
	if err := fail.RequireInput(len(argv)%2 == 1, "argc is odd",
		"got %d arguments; flags must be paired --key value", len(argv)-1); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	args := map[string]string{}
	for i := 1; i < len(argv); i += 2 {
		key := argv[i]
		if !strings.HasPrefix(key, "--") {
			fmt.Fprintf(os.Stderr, "input error: flag %q must start with --\n", key)
			fmt.Fprint(os.Stderr, usage)
			return 2
		}
		name := strings.TrimPrefix(key, "--")
		if !knownFlags[name] {
			fmt.Fprintf(os.Stderr, "input error: unknown flag --%s\n", name)
			fmt.Fprint(os.Stderr, usage)
			return 2
		}
		args[name] = argv[i+1]
	}

	for _, req := range []string{"trade-prices", "trade-times", "eval-times", "eval-prices", "eval-intervals"} {
		if _, ok := args[req]; !ok {
			fmt.Fprintf(os.Stderr, "input error: missing required flag --%s\n", req)
			fmt.Fprint(os.Stderr, usage)
			return 2
		}
	}

	rtol, err := parseFloatOr(args, "conf-tolerance", replay.DefaultRTol)
	if err != nil {
		return reportInput(err)
	}
	initVol, err := parseFloatOr(args, "init-volatility", 1.0)
	if err != nil {
		return reportInput(err)
	}
	minInterval, err := parseFloatOr(args, "min-interval", 0.01)
	if err != nil {
		return reportInput(err)
	}
	minSlotMS, err := parseIntOr(args, "min-slot-ms", 500)
	if err != nil {
		return reportInput(err)
	}
	timeoutMS, err := parseIntOr(args, "timeout-ms", 60000)
	if err != nil {
		return reportInput(err)
	}
	candleSecs, err := parseIntOr(args, "candle-secs", 60)
	if err != nil {
		return reportInput(err)
	}
	lookback, err := parseIntOr(args, "lookback", 20)
	if err != nil {
		return reportInput(err)
	}

	tradePrices, err := column.OpenFile(args["trade-prices"], column.PriceValDecoder)
	if err != nil {
		return report(err)
	}
	defer tradePrices.Close()
	tradeTimes, err := column.OpenFile(args["trade-times"], column.TimestampDecoder)
	if err != nil {
		return report(err)
	}
	defer tradeTimes.Close()
	evalTimes, err := column.OpenFile(args["eval-times"], column.TimestampDecoder)
	if err != nil {
		return report(err)
	}
	defer evalTimes.Close()
	evalPrices, err := column.OpenFile(args["eval-prices"], column.PriceValDecoder)
	if err != nil {
		return report(err)
	}
	defer evalPrices.Close()
	evalIntervals, err := column.OpenFile(args["eval-intervals"], column.PriceIntervalDecoder)
	if err != nil {
		return report(err)
	}
	defer evalIntervals.Close()

	volEst := volatility.NewEstimator(volatility.Config{
		Lookback:       lookback,
		CandleDuration: xtime.Duration(candleSecs) * 1_000_000_000,
	})
	est, err := priceest.New(priceest.Config{
		MinConfInterval: model.PriceInterval(minInterval),
		TimeoutNS:       xtime.Duration(timeoutMS) * 1_000_000,
		MinSlotNS:       xtime.Duration(minSlotMS) * 1_000_000,
		InitVolatility:  model.PriceInterval(initVol),
		VolatilityModel: volEst,
	})
	if err != nil {
		return report(err)
	}

	result, err := replay.Run(est,
		replay.Trades{Times: tradeTimes, Prices: tradePrices},
		replay.Evals{Times: evalTimes, ExpPrices: evalPrices, ExpConfs: evalIntervals},
		rtol,
	)
	if err != nil {
		return report(err)
	}

	fmt.Printf("ok: %d trades fed, %d evaluations checked\n", result.TradesFed, result.EvalsChecked)
	return 0
}

func report(err error) int {
	fmt.Fprintln(os.Stderr, err)
	return 1
}

func reportInput(err error) int {
	fmt.Fprintln(os.Stderr, err)
	fmt.Fprint(os.Stderr, usage)
	return 2
}

func parseFloatOr(args map[string]string, key string, def float64) (float64, error) {
	raw, ok := args[key]
	if !ok {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fail.New(fail.InputError, "--"+key, "cannot parse %q as float: %v", raw, err)
	}
	return v, nil
}

func parseIntOr(args map[string]string, key string, def int) (int, error) {
	raw, ok := args[key]
	if !ok {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fail.New(fail.InputError, "--"+key, "cannot parse %q as int: %v", raw, err)
	}
	return v, nil
}
