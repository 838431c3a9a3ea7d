package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew_IndependentRegistries(t *testing.T) {
	a := New()
	b := New() // must not panic with duplicate registration

	a.ProviderCalls.WithLabelValues("yahoo", "daily_bars", "ok").Inc()
	if got := testutil.ToFloat64(a.ProviderCalls.WithLabelValues("yahoo", "daily_bars", "ok")); got != 1 {
		t.Fatalf("a counter=%v", got)
	}
	if got := testutil.ToFloat64(b.ProviderCalls.WithLabelValues("yahoo", "daily_bars", "ok")); got != 0 {
		t.Fatalf("b counter=%v", got)
	}
}

func TestHandler_ExposesApplicationMetrics(t *testing.T) {
	m := New()
	m.HTTPRequests.WithLabelValues("GET", "/api/v1/dashboard", "200").Inc()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	body, _ := io.ReadAll(w.Body)
	if !strings.Contains(string(body), `stockdash_http_requests_total{method="GET",route="/api/v1/dashboard",status="200"} 1`) {
		t.Fatalf("metric missing from exposition:\n%s", body)
	}
}
