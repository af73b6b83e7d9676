package priceest

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"lv-priceest/internal/model"
	"lv-priceest/internal/xtime"
)

func tradeFromWire(price int64, timeNS uint64) model.Trade {
	return model.Trade{Price: model.PriceVal(price), Time: xtime.Timestamp(timeNS)}
}

// Handler serializes access to a shared Estimator for the live service:
// every feed trade and every periodic evaluation goes through the same
// mutex, since Estimator itself is not safe for concurrent use. The lock
// also guards the Estimator's inner volatility model, so a diagnostics
// handler reading volatility through the same *sync.Mutex never races a
// concurrent AddTrade.
type Handler struct {
	mu  *sync.Mutex
	est *Estimator
}

// NewHandler wraps est for HTTP access, serializing it under mu. Pass the
// same mu to any other handler that reads est's volatility model so all
// access to the shared estimator is mutually exclusive.
func NewHandler(est *Estimator, mu *sync.Mutex) *Handler {
	return &Handler{est: est, mu: mu}
}

// AddTrade forwards a trade to the wrapped estimator under lock.
func (h *Handler) AddTrade(price int64, timeNS uint64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.est.AddTrade(tradeFromWire(price, timeNS))
}

// EvalNow evaluates the wrapped estimator at the current wall clock time.
func (h *Handler) EvalNow() (estimateJSON, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	est, ok, err := h.est.EvalAtTime(xtime.Timestamp(time.Now().UnixNano()))
	if err != nil || !ok {
		return estimateJSON{}, ok, err
	}
	return estimateJSON{Price: int64(est.Price), Conf: float64(est.Conf)}, true, nil
}

type estimateJSON struct {
	Price int64   `json:"price"`
	Conf  float64 `json:"conf"`
}

type tradeRequest struct {
	Price  int64  `json:"price"`
	TimeNS uint64 `json:"time_ns"`
}

// ServeHTTP accepts a JSON trade body and forwards it to the estimator.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.AddTrade(req.Price, req.TimeNS); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
