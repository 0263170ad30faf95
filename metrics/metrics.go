// Package metrics exposes Prometheus metrics for the intent signing service.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	signed       *prometheus.CounterVec
	rejected     *prometheus.CounterVec
	failed       *prometheus.CounterVec
	signDuration prometheus.Histogram
}

// NewMetrics creates the collectors under namespace and registers them,
// together with the Go runtime and process collectors, on a private registry.
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		signed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intent_signed_total",
			Help:      "Number of signed intent responses by scope.",
		}, []string{"scope"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intent_rejected_total",
			Help:      "Number of requests rejected before signing.",
		}, []string{"reason"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intent_failed_total",
			Help:      "Number of requests that failed while signing.",
		}, []string{"kind"}),
		signDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "intent_sign_duration_seconds",
			Help:      "Time spent assembling and signing an intent response.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}

	m.registry.MustRegister(
		m.signed,
		m.rejected,
		m.failed,
		m.signDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveSigned records a successful signature.
func (m *Metrics) ObserveSigned(scope string, took time.Duration) {
	if m == nil {
		return
	}
	m.signed.WithLabelValues(scope).Inc()
	m.signDuration.Observe(took.Seconds())
}

// ObserveRejected records a request rejected before signing, e.g. "validation" or "rate_limit".
func (m *Metrics) ObserveRejected(reason string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(reason).Inc()
}

// ObserveFailed records a server-side failure, e.g. "clock" or "encoding".
func (m *Metrics) ObserveFailed(kind string) {
	if m == nil {
		return
	}
	m.failed.WithLabelValues(kind).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// MetricsServer serves /metrics on a dedicated listener.
type MetricsServer struct {
	metrics *Metrics
	srv     *http.Server
}

// New creates the collectors and a metrics server listening on addr.
func New(namespace, addr string) (*MetricsServer, error) {
	m := NewMetrics(namespace)

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	return &MetricsServer{
		metrics: m,
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Metrics returns the collectors served by this server.
func (s *MetricsServer) Metrics() *Metrics {
	return s.metrics
}

func (s *MetricsServer) ListenAndServe() error {
	return s.srv.ListenAndServe()
}

func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
