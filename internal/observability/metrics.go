package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "timesieve",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests processed, labeled by route, method, and status code.",
	}, []string{"route", "method", "status"})

	requestLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "timesieve",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds, labeled by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	reportScoreGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "timesieve",
		Subsystem: "quality",
		Name:      "last_report_score",
		Help:      "Quality score from the most recent data quality report.",
	})
)

func init() {
	prometheus.MustRegister(requestCounter, requestLatency, reportScoreGauge)
}

// Handler exposes the registered metrics for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordRequest tracks a completed HTTP request.
func RecordRequest(route, method string, status int, elapsed time.Duration) {
	requestCounter.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	requestLatency.WithLabelValues(route).Observe(elapsed.Seconds())
}

// RecordReportScore updates the quality score gauge.
func RecordReportScore(score int) {
	reportScoreGauge.Set(float64(score))
}
