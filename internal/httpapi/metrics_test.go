package httpapi

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddleware_Exposed(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	rr := httptest.NewRecorder()
	MetricsMiddleware(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	mrr := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(mrr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	for _, name := range []string{"scorepanel_http_requests_total", "scorepanel_http_inflight_requests"} {
		if !bytes.Contains(mrr.Body.Bytes(), []byte(name)) {
			t.Fatalf("expected %s in metrics", name)
		}
	}
	if testutil.ToFloat64(httpInflight) != 0 {
		t.Fatalf("inflight gauge must return to zero")
	}
}

func TestMetricsMiddleware_LabelsByRoute(t *testing.T) {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware)
	r.Get("/slides/{name}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	hit := httpRequestsTotal.WithLabelValues("/slides/{name}", http.MethodGet, "204")
	miss := httpRequestsTotal.WithLabelValues("unmatched", http.MethodGet, "404")
	hitBefore, missBefore := testutil.ToFloat64(hit), testutil.ToFloat64(miss)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/slides/a.png", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope/b.png", nil))

	if got := testutil.ToFloat64(hit); got != hitBefore+1 {
		t.Fatalf("route counter before=%v after=%v", hitBefore, got)
	}
	if got := testutil.ToFloat64(miss); got != missBefore+1 {
		t.Fatalf("unmatched counter before=%v after=%v", missBefore, got)
	}
}

func TestObserveLoopWait_PassesError(t *testing.T) {
	before := testutil.CollectAndCount(loopWait)
	want := errors.New("loop stopped")
	if err := observeLoopWait("frame-test", func() error { return want }); err != want {
		t.Fatalf("error not passed through: %v", err)
	}
	if testutil.CollectAndCount(loopWait) != before+1 {
		t.Fatalf("expected a new loop_wait series")
	}
}
