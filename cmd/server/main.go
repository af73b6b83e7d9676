// Command server runs the live price estimate service: an HTTP/WebSocket
// front end over a single in-process priceest.Estimator, fed by POSTed
// trades and polled on a timer to broadcast fresh estimates. Dependencies
// are constructed top-down, background workers started, then the HTTP
// server runs until a signal triggers graceful shutdown.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"lv-priceest/internal/config"
	"lv-priceest/internal/estimbus"
	"lv-priceest/internal/health"
	"lv-priceest/internal/httpserver"
	"lv-priceest/internal/model"
	"lv-priceest/internal/priceest"
	"lv-priceest/internal/volatility"
	"lv-priceest/internal/xtime"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	volEst := volatility.NewEstimator(volatility.Config{
		Lookback:       cfg.CandleLookback,
		CandleDuration: xtime.Duration(cfg.CandleSecs) * 1_000_000_000,
	})
	est, err := priceest.New(priceest.Config{
		MinConfInterval: model.PriceInterval(cfg.MinConfInterval),
		TimeoutNS:       xtime.Duration(cfg.TimeoutMS) * 1_000_000,
		MinSlotNS:       xtime.Duration(cfg.MinSlotMS) * 1_000_000,
		InitVolatility:  model.PriceInterval(cfg.InitVolatility),
		VolatilityModel: volEst,
	})
	if err != nil {
		log.Fatal(err)
	}

	var estMu sync.Mutex
	tradeHandler := priceest.NewHandler(est, &estMu)
	volHandler := volatility.NewHandler(volEst, &estMu)
	bus := estimbus.New()
	wsHandler := httpserver.NewEstimatesWSHandler(bus, cfg.WSOrigin)
	healthHandler := health.NewHandler(time.Now())

	router := httpserver.NewRouter(httpserver.RouterDeps{
		HealthHandler:     healthHandler,
		TradeHandler:      tradeHandler,
		VolatilityHandler: volHandler,
		EstimatesWS:       wsHandler,
	})
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	pollInterval := time.Duration(cfg.MinSlotMS) * time.Millisecond
	if pollInterval <= 0 {
		pollInterval = 500 * time.Millisecond
	}
	stopPoll := make(chan struct{})
	go func() {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				estimate, ok, err := tradeHandler.EvalNow()
				if err != nil {
					log.Printf("eval error: %v", err)
					continue
				}
				if !ok {
					continue
				}
				bus.Publish(estimbus.Event{Price: estimate.Price, Conf: estimate.Conf})
			case <-stopPoll:
				return
			}
		}
	}()

	log.Printf("server listening on %s", cfg.HTTPAddr)
	log.Printf("health endpoint: http://localhost%s/healthz", cfg.HTTPAddr)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		close(stopPoll)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
