// Package config loads the live service's environment configuration:
// a flat struct, required fields collected up front, optional fields
// defaulted.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// Config is the live estimate service's runtime configuration.
type Config struct {
	HTTPAddr        string
	CandleLookback  int
	CandleSecs      int
	MinConfInterval float64
	TimeoutMS       int
	MinSlotMS       int
	InitVolatility  float64
	WSOrigin        string
}

// Load reads Config from the environment. HTTP_ADDR is the only required
// variable; everything else defaults to the same values the candle
// volatility estimator and price estimator use when constructed directly.
func Load() (Config, error) {
	c := Config{
		CandleLookback:  20,
		CandleSecs:      60,
		MinConfInterval: 0.01,
		TimeoutMS:       60000,
		MinSlotMS:       500,
		InitVolatility:  1.0,
		WSOrigin:        "*",
	}

	c.HTTPAddr = os.Getenv("HTTP_ADDR")
	if c.HTTPAddr == "" {
		return c, errors.New("missing required env: HTTP_ADDR")
	}

	var err error
	if c.CandleLookback, err = intEnvOr("CANDLE_LOOKBACK", c.CandleLookback); err != nil {
		return c, err
	}
	if c.CandleSecs, err = intEnvOr("CANDLE_SECS", c.CandleSecs); err != nil {
		return c, err
	}
	if c.MinConfInterval, err = floatEnvOr("MIN_CONF_INTERVAL", c.MinConfInterval); err != nil {
		return c, err
	}
	if c.TimeoutMS, err = intEnvOr("TIMEOUT_MS", c.TimeoutMS); err != nil {
		return c, err
	}
	if c.MinSlotMS, err = intEnvOr("MIN_SLOT_MS", c.MinSlotMS); err != nil {
		return c, err
	}
	if c.InitVolatility, err = floatEnvOr("INIT_VOLATILITY", c.InitVolatility); err != nil {
		return c, err
	}
	if origin := strings.TrimSpace(os.Getenv("WS_ORIGIN")); origin != "" {
		c.WSOrigin = origin
	}

	return c, nil
}

func intEnvOr(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func floatEnvOr(key string, def float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	return strconv.ParseFloat(raw, 64)
}
