package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "markettower"

// Registry holds all Prometheus metrics. It satisfies fetch.Observer so the
// pipelines report through it directly.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Fetch metrics
	fetchAttempts   *prometheus.CounterVec
	rangeExtensions *prometheus.CounterVec
	chartSentinels  *prometheus.CounterVec
	quoteFailures   prometheus.Counter
	fetchDuration   *prometheus.HistogramVec
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	r.fetchAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_attempts_total",
			Help:      "Total number of upstream fetch attempts",
		},
		[]string{"kind", "outcome"},
	)
	r.rangeExtensions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "range_extensions_total",
			Help:      "Total number of chart range extensions after empty results",
		},
		[]string{"from", "to"},
	)
	r.chartSentinels = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chart_sentinels_total",
			Help:      "Total number of empty chart series returned",
		},
		[]string{"reason"},
	)
	r.quoteFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_failures_total",
			Help:      "Total number of failed quote fetches",
		},
	)
	r.fetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "End-to-end fetch duration in seconds, retries included",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"kind"},
	)

	reg.MustRegister(r.fetchAttempts)
	reg.MustRegister(r.rangeExtensions)
	reg.MustRegister(r.chartSentinels)
	reg.MustRegister(r.quoteFailures)
	reg.MustRegister(r.fetchDuration)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// ObserveFetchAttempt counts one upstream call by kind and outcome.
func (r *Registry) ObserveFetchAttempt(kind, outcome string) {
	r.fetchAttempts.WithLabelValues(kind, outcome).Inc()
}

// ObserveRangeExtension counts a chart range widening.
func (r *Registry) ObserveRangeExtension(from, to string) {
	r.rangeExtensions.WithLabelValues(from, to).Inc()
}

// ObserveChartSentinel counts an empty chart series returned to a caller.
func (r *Registry) ObserveChartSentinel(reason string) {
	r.chartSentinels.WithLabelValues(reason).Inc()
}

// ObserveQuoteFailure counts a quote fetch that surfaced an error.
func (r *Registry) ObserveQuoteFailure() {
	r.quoteFailures.Inc()
}

// ObserveFetchDuration records the total time spent serving one fetch.
func (r *Registry) ObserveFetchDuration(kind string, seconds float64) {
	r.fetchDuration.WithLabelValues(kind).Observe(seconds)
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
