package prometheusmetrics

import (
	"testing"
	"time"

	"github.com/prebid/prebid-content-server/config"
	"github.com/prebid/prebid-content-server/metrics"
	"github.com/prebid/prebid-content-server/openrtb2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetricsEngine(disabled config.DisabledMetrics) *Metrics {
	return NewMetrics(config.PrometheusMetrics{
		Port:      9100,
		Namespace: "pcs",
		Subsystem: "",
	}, disabled)
}

func TestConnectionMetrics(t *testing.T) {
	m := newTestMetricsEngine(config.DisabledMetrics{})

	m.RecordConnectionAccept(true)
	m.RecordConnectionAccept(true)
	m.RecordConnectionAccept(false)
	m.RecordConnectionClose(true)
	m.RecordConnectionClose(false)
	m.RecordConnectionClose(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.connectionsOpened))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.connectionsClosed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.connectionsError.WithLabelValues(connectionAcceptError)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.connectionsError.WithLabelValues(connectionCloseError)))
}

func TestRequestMetrics(t *testing.T) {
	m := newTestMetricsEngine(config.DisabledMetrics{})

	ok := metrics.Labels{Endpoint: metrics.EndpointContent, RequestStatus: metrics.RequestStatusOK}
	bad := metrics.Labels{Endpoint: metrics.EndpointContentBatch, RequestStatus: metrics.RequestStatusBadInput}
	m.RecordRequest(ok)
	m.RecordRequest(ok)
	m.RecordRequest(bad)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("content", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("content_batch", "badinput")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.requests.WithLabelValues("content_contexts", "ok")))
}

func TestRequestTimeMetrics(t *testing.T) {
	m := newTestMetricsEngine(config.DisabledMetrics{})

	m.RecordRequestTime(metrics.Labels{Endpoint: metrics.EndpointContent, RequestStatus: metrics.RequestStatusOK}, 5*time.Millisecond)
	m.RecordRequestTime(metrics.Labels{Endpoint: metrics.EndpointContent, RequestStatus: metrics.RequestStatusErr}, 5*time.Millisecond)

	count, err := testutil.GatherAndCount(m.Registry, "pcs_request_time_seconds")
	require.NoError(t, err)
	assert.Equal(t, len(metrics.Endpoints()), count)

	families, err := m.Registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != "pcs_request_time_seconds" {
			continue
		}
		for _, metric := range family.GetMetric() {
			expected := uint64(0)
			if metric.GetLabel()[0].GetValue() == "content" {
				expected = 1
			}
			assert.Equal(t, expected, metric.GetHistogram().GetSampleCount())
		}
	}
}

func TestContentMetrics(t *testing.T) {
	m := newTestMetricsEngine(config.DisabledMetrics{})

	m.RecordContentDecode(metrics.DecodeOK)
	m.RecordContentDecode(metrics.DecodeTypeMismatch)
	m.RecordContentDecode(metrics.DecodeOK)
	m.RecordContentContext(openrtb2.ContentContextPtr(openrtb2.ContentContextVideo))
	m.RecordContentContext(nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.contentDecodes.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.contentDecodes.WithLabelValues("type_mismatch")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.contentContexts.WithLabelValues("video")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.contentContexts.WithLabelValues("none")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.contentContexts.WithLabelValues("game")))
}

func TestContentContextMetricsDisabled(t *testing.T) {
	m := newTestMetricsEngine(config.DisabledMetrics{ContentContext: true})

	assert.NotPanics(t, func() {
		m.RecordContentContext(openrtb2.ContentContextPtr(openrtb2.ContentContextVideo))
	})
	count, err := testutil.GatherAndCount(m.Registry, "pcs_content_contexts")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestPreloadedSeries(t *testing.T) {
	m := newTestMetricsEngine(config.DisabledMetrics{})

	count, err := testutil.GatherAndCount(m.Registry, "pcs_requests", "pcs_content_decodes", "pcs_content_contexts")
	require.NoError(t, err)
	assert.Equal(t, len(metrics.Endpoints())*len(metrics.RequestStatuses())+len(metrics.DecodeOutcomes())+len(metrics.ContentContextLabels()), count)
}
