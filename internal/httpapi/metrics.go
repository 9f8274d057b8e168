package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scorepanel",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Status API requests by route, method and response code.",
		},
		[]string{"route", "method", "code"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "scorepanel",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Status API request latency by route.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 2, 5},
		},
		[]string{"route"},
	)

	httpInflight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "scorepanel",
		Subsystem: "http",
		Name:      "inflight_requests",
		Help:      "Status API requests being served.",
	})

	// loopWait is the time a handler spent waiting for the event loop to
	// answer a snapshot.
	loopWait = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "scorepanel",
			Subsystem: "http",
			Name:      "loop_wait_seconds",
			Help:      "Time spent waiting for the event loop to produce a snapshot.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 2},
		},
		[]string{"snapshot"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, httpInflight, loopWait)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware counts and times requests. chi only knows the route
// pattern once the request was routed, so labels are taken after the handler
// returns.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpInflight.Inc()
		defer httpInflight.Dec()

		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sr, r)
		route := routeLabel(r)
		httpRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(sr.status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// observeLoopWait records how long fn took under the given snapshot label.
func observeLoopWait(snapshot string, fn func() error) error {
	start := time.Now()
	err := fn()
	loopWait.WithLabelValues(snapshot).Observe(time.Since(start).Seconds())
	return err
}

// routeLabel is the chi route pattern, or "unmatched" for requests no route
// served. Raw paths are never used as label values.
func routeLabel(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
