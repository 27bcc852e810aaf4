package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "longevity",
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by path and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"path", "status"})

	statusChecks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "longevity",
		Subsystem: "api",
		Name:      "status_checks_total",
		Help:      "Status endpoint hits by alert level.",
	}, []string{"alert_level"})

	manualActivities = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "longevity",
		Subsystem: "api",
		Name:      "manual_activities_total",
		Help:      "Manually logged activities by source.",
	}, []string{"source"})

	syncRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "longevity",
		Subsystem: "sync",
		Name:      "runs_total",
		Help:      "Sync runs triggered through the API by kind.",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(requestDuration, statusChecks, manualActivities, syncRuns)
}

func recordStatusCheck(alertLevel string) {
	statusChecks.WithLabelValues(alertLevel).Inc()
}

func recordManualActivity(source string) {
	manualActivities.WithLabelValues(source).Inc()
}

func recordSync(kind string) {
	syncRuns.WithLabelValues(kind).Inc()
}

// statusRecorder captures the response code for the latency metric
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument wraps a handler with request latency tracking
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		requestDuration.
			WithLabelValues(metricPath(r), strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}

// metricPath labels requests by the registered route pattern rather
// than the raw URL, so arbitrary paths can't grow the label set.
func metricPath(r *http.Request) string {
	if r.Pattern == "" {
		return "unmatched"
	}
	return r.Pattern
}
