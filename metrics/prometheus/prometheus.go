package prometheusmetrics

import (
	"time"

	"github.com/prebid/prebid-content-server/config"
	"github.com/prebid/prebid-content-server/metrics"
	"github.com/prebid/prebid-content-server/openrtb2"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics defines the Prometheus metrics backing the MetricsEngine implementation.
type Metrics struct {
	Registry *prometheus.Registry

	connectionsClosed prometheus.Counter
	connectionsError  *prometheus.CounterVec
	connectionsOpened prometheus.Counter
	requests          *prometheus.CounterVec
	requestsTimer     *prometheus.HistogramVec
	contentDecodes    *prometheus.CounterVec
	contentContexts   *prometheus.CounterVec

	metricsDisabled config.DisabledMetrics
}

const (
	connectionErrorLabel = "connection_error"
	contextLabel         = "context"
	endpointLabel        = "endpoint"
	outcomeLabel         = "outcome"
	requestStatusLabel   = "request_status"
)

const (
	connectionAcceptError = "accept"
	connectionCloseError  = "close"
)

// NewMetrics initializes a new Prometheus metrics instance with preloaded label values.
func NewMetrics(cfg config.PrometheusMetrics, disabledMetrics config.DisabledMetrics) *Metrics {
	standardTimeBuckets := []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}

	reg := prometheus.NewRegistry()
	metrics := Metrics{
		Registry:        reg,
		metricsDisabled: disabledMetrics,
	}

	metrics.connectionsClosed = newCounterWithoutLabels(cfg, reg,
		"connections_closed",
		"Count of successful connections closed to Prebid Content Server.")

	metrics.connectionsError = newCounter(cfg, reg,
		"connections_error",
		"Count of errors for connection open and close attempts to Prebid Content Server labeled by type.",
		[]string{connectionErrorLabel})

	metrics.connectionsOpened = newCounterWithoutLabels(cfg, reg,
		"connections_opened",
		"Count of successful connections opened to Prebid Content Server.")

	metrics.requests = newCounter(cfg, reg,
		"requests",
		"Count of total requests to Prebid Content Server labeled by endpoint and status.",
		[]string{endpointLabel, requestStatusLabel})

	metrics.requestsTimer = newHistogramVec(cfg, reg,
		"request_time_seconds",
		"Seconds to resolve successful Prebid Content Server requests labeled by endpoint.",
		[]string{endpointLabel},
		standardTimeBuckets)

	metrics.contentDecodes = newCounter(cfg, reg,
		"content_decodes",
		"Count of decoded content objects labeled by outcome.",
		[]string{outcomeLabel})

	if !disabledMetrics.ContentContext {
		metrics.contentContexts = newCounter(cfg, reg,
			"content_contexts",
			"Count of successfully decoded content objects labeled by content context.",
			[]string{contextLabel})
	}

	preloadLabelValues(&metrics)

	return &metrics
}

func newCounter(cfg config.PrometheusMetrics, registry *prometheus.Registry, name, help string, labels []string) *prometheus.CounterVec {
	opts := prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      name,
		Help:      help,
	}
	counter := prometheus.NewCounterVec(opts, labels)
	registry.MustRegister(counter)
	return counter
}

func newCounterWithoutLabels(cfg config.PrometheusMetrics, registry *prometheus.Registry, name, help string) prometheus.Counter {
	opts := prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      name,
		Help:      help,
	}
	counter := prometheus.NewCounter(opts)
	registry.MustRegister(counter)
	return counter
}

func newHistogramVec(cfg config.PrometheusMetrics, registry *prometheus.Registry, name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	opts := prometheus.HistogramOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	}
	histogram := prometheus.NewHistogramVec(opts, labels)
	registry.MustRegister(histogram)
	return histogram
}

// preloadLabelValues makes every known series visible at zero before the first request.
func preloadLabelValues(m *Metrics) {
	for _, endpoint := range metrics.Endpoints() {
		for _, status := range metrics.RequestStatuses() {
			m.requests.WithLabelValues(string(endpoint), string(status))
		}
		m.requestsTimer.WithLabelValues(string(endpoint))
	}
	for _, outcome := range metrics.DecodeOutcomes() {
		m.contentDecodes.WithLabelValues(string(outcome))
	}
	if m.contentContexts != nil {
		for _, label := range metrics.ContentContextLabels() {
			m.contentContexts.WithLabelValues(label)
		}
	}
	m.connectionsError.WithLabelValues(connectionAcceptError)
	m.connectionsError.WithLabelValues(connectionCloseError)
}

func (m *Metrics) RecordConnectionAccept(success bool) {
	if success {
		m.connectionsOpened.Inc()
	} else {
		m.connectionsError.WithLabelValues(connectionAcceptError).Inc()
	}
}

func (m *Metrics) RecordConnectionClose(success bool) {
	if success {
		m.connectionsClosed.Inc()
	} else {
		m.connectionsError.WithLabelValues(connectionCloseError).Inc()
	}
}

func (m *Metrics) RecordRequest(labels metrics.Labels) {
	m.requests.With(prometheus.Labels{
		endpointLabel:      string(labels.Endpoint),
		requestStatusLabel: string(labels.RequestStatus),
	}).Inc()
}

func (m *Metrics) RecordRequestTime(labels metrics.Labels, length time.Duration) {
	if labels.RequestStatus == metrics.RequestStatusOK {
		m.requestsTimer.WithLabelValues(string(labels.Endpoint)).Observe(length.Seconds())
	}
}

func (m *Metrics) RecordContentDecode(outcome metrics.DecodeOutcome) {
	m.contentDecodes.WithLabelValues(string(outcome)).Inc()
}

func (m *Metrics) RecordContentContext(context *openrtb2.ContentContext) {
	if m.contentContexts == nil {
		return
	}
	m.contentContexts.WithLabelValues(metrics.ContentContextLabel(context)).Inc()
}
