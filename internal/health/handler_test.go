package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeHTTPReportsLiveness(t *testing.T) {
	h := NewHandler(time.Now().Add(-5 * time.Second))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp liveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.GreaterOrEqual(t, resp.UptimeSec, int64(5))
	assert.Greater(t, resp.Goroutines, 0)
	assert.NotEmpty(t, resp.GoVersion)
}

func TestFormatUptimeCompact(t *testing.T) {
	assert.Equal(t, "45s", formatUptimeCompact(45*time.Second))
	assert.Equal(t, "2m 5s", formatUptimeCompact(2*time.Minute+5*time.Second))
	assert.Equal(t, "1h 0m 1s", formatUptimeCompact(time.Hour+time.Second))
}
