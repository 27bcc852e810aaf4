package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMetricPathUsesRoutePattern(t *testing.T) {
	h, _ := newTestHandler(t)
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	var got string
	wrapped := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mux.ServeHTTP(w, r)
		got = metricPath(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	wrapped.ServeHTTP(httptest.NewRecorder(), req)
	if got != "/status" {
		t.Errorf("matched route label = %q, want /status", got)
	}

	// Unmatched paths collapse to one label value so a scanner hitting
	// random URLs can't grow the metric's cardinality
	req = httptest.NewRequest(http.MethodGet, "/wp-admin/install.php", nil)
	wrapped.ServeHTTP(httptest.NewRecorder(), req)
	if got != "unmatched" {
		t.Errorf("unmatched route label = %q, want unmatched", got)
	}
}
