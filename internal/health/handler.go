// Package health is a liveness endpoint for the live estimate service:
// the service has no database, no auth mode, and no external bot to
// report on, so the response carries only process-level facts.
package health

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"
)

// Handler serves a liveness report.
type Handler struct {
	startedAt time.Time
}

// NewHandler builds a Handler whose uptime is measured from startedAt
// (or now, if zero).
func NewHandler(startedAt time.Time) *Handler {
	start := startedAt.UTC()
	if start.IsZero() {
		start = time.Now().UTC()
	}
	return &Handler{startedAt: start}
}

type liveResponse struct {
	Status     string `json:"status"`
	Timestamp  string `json:"timestamp"`
	UptimeSec  int64  `json:"uptime_sec"`
	Uptime     string `json:"uptime"`
	Goroutines int    `json:"goroutines"`
	GoVersion  string `json:"go_version"`
}

func (h *Handler) uptime(now time.Time) time.Duration {
	uptime := now.Sub(h.startedAt)
	if uptime < 0 {
		return 0
	}
	return uptime
}

func formatUptimeCompact(uptime time.Duration) string {
	totalSeconds := int64(uptime / time.Second)
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

// ServeHTTP writes a liveness JSON report.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	uptime := h.uptime(now)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(liveResponse{
		Status:     "ok",
		Timestamp:  now.Format(time.RFC3339),
		UptimeSec:  int64(uptime.Seconds()),
		Uptime:     formatUptimeCompact(uptime),
		Goroutines: runtime.NumGoroutine(),
		GoVersion:  runtime.Version(),
	})
}
