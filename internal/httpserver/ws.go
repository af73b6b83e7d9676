package httpserver

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"lv-priceest/internal/estimbus"
)

// EstimatesWSHandler streams every published PriceEstimate event to a
// subscribed browser client over a single unauthenticated stream: this
// service has no accounts or sessions to scope a connection to.
type EstimatesWSHandler struct {
	bus      *estimbus.Bus
	upgrader websocket.Upgrader
}

// NewEstimatesWSHandler builds a handler broadcasting bus events, checking
// the WebSocket handshake's Origin header against origin ("*" allows any).
func NewEstimatesWSHandler(bus *estimbus.Bus, origin string) *EstimatesWSHandler {
	return &EstimatesWSHandler{
		bus: bus,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return allowOrigin(r, origin) },
		},
	}
}

func allowOrigin(r *http.Request, origin string) bool {
	if origin == "*" || origin == "" {
		return true
	}
	return strings.EqualFold(r.Header.Get("Origin"), origin)
}

func (h *EstimatesWSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	sub := h.bus.Subscribe()
	defer h.bus.Unsubscribe(sub)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case evt, ok := <-sub:
			if !ok {
				return
			}
			if err := conn.WriteJSON(evt); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
