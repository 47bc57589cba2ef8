package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMetricsEndpointExposesCounters(t *testing.T) {
	reg := InitRegistry()

	ObserveHTTP("/api/properties", http.MethodGet, 200, 25*time.Millisecond)
	ObserveClient("/api/locations", 200, 10*time.Millisecond)
	ObserveCache("redis", "miss")

	rr := httptest.NewRecorder()
	MetricsHandler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{
		"stayhunt_http_requests_total",
		"stayhunt_client_requests_total",
		"stayhunt_cache_events_total",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing metric %s in output", want)
		}
	}
}
