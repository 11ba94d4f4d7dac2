// Package metrics exposes fetch and request metrics in Prometheus format.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/eventbox/internal/core/domain"
	"github.com/custodia-labs/eventbox/internal/core/ports/driven"
)

const namespace = "eventbox"

// Ensure Recorder implements the interface.
var _ driven.FetchObserver = (*Recorder)(nil)

// Recorder collects metrics on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	fetchDuration *prometheus.SummaryVec
	fetchTotal    *prometheus.CounterVec
	eventsFetched *prometheus.GaugeVec
	lastSuccess   *prometheus.GaugeVec
	httpRequests  *prometheus.CounterVec
}

// NewRecorder creates a recorder with Go runtime and process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.fetchDuration = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace:  namespace,
		Name:       "fetch_duration_seconds",
		Help:       "Time spent fetching events from the source",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	}, []string{"source"})
	r.fetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_total",
		Help:      "Number of fetches by outcome",
	}, []string{"source", "status"})
	r.eventsFetched = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_fetched",
		Help:      "Number of events returned by the last successful fetch",
	}, []string{"source"})
	r.lastSuccess = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix timestamp of the last successful fetch",
	}, []string{"source"})
	r.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests served by path and status code",
	}, []string{"path", "code"})

	r.registry.MustRegister(
		r.fetchDuration, r.fetchTotal, r.eventsFetched, r.lastSuccess, r.httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveFetch records the outcome of one fetch.
func (r *Recorder) ObserveFetch(source string, seconds float64, count int, err error) {
	r.fetchDuration.WithLabelValues(source).Observe(seconds)
	r.fetchTotal.WithLabelValues(source, fetchStatus(err)).Inc()
	if err == nil {
		r.eventsFetched.WithLabelValues(source).Set(float64(count))
		r.lastSuccess.WithLabelValues(source).Set(float64(time.Now().Unix()))
	}
}

// ObserveRequest counts one HTTP response.
func (r *Recorder) ObserveRequest(path string, code int) {
	r.httpRequests.WithLabelValues(path, strconv.Itoa(code)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func fetchStatus(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrConfigMissing):
		return "config_missing"
	case errors.Is(err, domain.ErrRateLimited):
		return "rate_limited"
	default:
		return "error"
	}
}
