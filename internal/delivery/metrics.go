package delivery

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Vovarama1992/voci-api/internal/delivery/router"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// unmatchedRoute labels requests the router answered with its 404.
const unmatchedRoute = "unmatched"

// Metrics records per-route request counts and latencies on its own registry.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "voci_api_requests_total",
				Help: "API requests by method, route pattern and status",
			},
			[]string{"method", "route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "voci_api_request_duration_seconds",
				Help:    "API request latency by method and route pattern",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "voci_api_requests_in_flight",
			Help: "API requests currently being served",
		}),
	}

	registry.MustRegister(m.requests, m.duration, m.inFlight)
	return m
}

// Instrument wraps a route handler. route is the registered pattern, so
// label cardinality stays bounded by the route table.
func (m *Metrics) Instrument(method, route string, h router.Handler) router.Handler {
	return func(w http.ResponseWriter, r *http.Request, params []int) {
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		h(sr, r, params)

		m.observe(method, route, sr.status, time.Since(start))
	}
}

// InstrumentNotFound wraps the router's fallback handler.
func (m *Metrics) InstrumentNotFound(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		h.ServeHTTP(sr, r)

		m.observe(r.Method, unmatchedRoute, sr.status, time.Since(start))
	})
}

func (m *Metrics) observe(method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
