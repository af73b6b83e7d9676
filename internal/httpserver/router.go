package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"lv-priceest/internal/health"
	"lv-priceest/internal/priceest"
	"lv-priceest/internal/volatility"
)

// RouterDeps collects the handlers the live estimate service wires
// together across its four routes.
type RouterDeps struct {
	HealthHandler     *health.Handler
	TradeHandler      *priceest.Handler
	VolatilityHandler *volatility.Handler
	EstimatesWS       http.Handler
}

// NewRouter builds the chi router for the live service: a liveness probe,
// a WebSocket estimate stream, a trade-feed endpoint, and a volatility
// diagnostics endpoint.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				origin = "*"
			}
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/healthz", d.HealthHandler.ServeHTTP)
	r.Get("/ws/estimates", d.EstimatesWS.ServeHTTP)
	r.Post("/feed/trade", d.TradeHandler.ServeHTTP)
	r.Get("/volatility", d.VolatilityHandler.ServeHTTP)

	return r
}
