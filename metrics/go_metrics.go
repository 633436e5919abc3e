package metrics

import (
	"time"

	"github.com/prebid/prebid-content-server/config"
	"github.com/prebid/prebid-content-server/openrtb2"
	"github.com/rcrowley/go-metrics"
)

// Metrics is the go-metrics implementation of MetricsEngine. It is reported to InfluxDB.
type Metrics struct {
	MetricsRegistry            metrics.Registry
	ConnectionCounter          metrics.Counter
	ConnectionAcceptErrorMeter metrics.Meter
	ConnectionCloseErrorMeter  metrics.Meter
	RequestStatuses            map[Endpoint]map[RequestStatus]metrics.Meter
	RequestTimers              map[Endpoint]metrics.Timer
	DecodeMeters               map[DecodeOutcome]metrics.Meter
	ContentContextMeters       map[string]metrics.Meter

	metricsDisabled config.DisabledMetrics
}

// NewBlankMetrics creates a new Metrics object with all blank metrics object. This may also be useful for
// testing routines to ensure that no metrics are written anywhere.
func NewBlankMetrics(registry metrics.Registry, disabled config.DisabledMetrics) *Metrics {
	blankMeter := &metrics.NilMeter{}
	newMetrics := &Metrics{
		MetricsRegistry:            registry,
		ConnectionCounter:          metrics.NilCounter{},
		ConnectionAcceptErrorMeter: blankMeter,
		ConnectionCloseErrorMeter:  blankMeter,
		RequestStatuses:            make(map[Endpoint]map[RequestStatus]metrics.Meter),
		RequestTimers:              make(map[Endpoint]metrics.Timer),
		DecodeMeters:               make(map[DecodeOutcome]metrics.Meter),
		ContentContextMeters:       make(map[string]metrics.Meter),
		metricsDisabled:            disabled,
	}

	for _, e := range Endpoints() {
		newMetrics.RequestStatuses[e] = make(map[RequestStatus]metrics.Meter)
		for _, s := range RequestStatuses() {
			newMetrics.RequestStatuses[e][s] = blankMeter
		}
		newMetrics.RequestTimers[e] = &metrics.NilTimer{}
	}
	for _, o := range DecodeOutcomes() {
		newMetrics.DecodeMeters[o] = blankMeter
	}
	for _, c := range ContentContextLabels() {
		newMetrics.ContentContextMeters[c] = blankMeter
	}

	return newMetrics
}

// NewMetrics creates a new Metrics object with needed metrics defined. Content context meters stay
// blank when they are disabled in the config.
func NewMetrics(registry metrics.Registry, disabled config.DisabledMetrics) *Metrics {
	newMetrics := NewBlankMetrics(registry, disabled)
	newMetrics.ConnectionCounter = metrics.GetOrRegisterCounter("active_connections", registry)
	newMetrics.ConnectionAcceptErrorMeter = metrics.GetOrRegisterMeter("connection_accept_errors", registry)
	newMetrics.ConnectionCloseErrorMeter = metrics.GetOrRegisterMeter("connection_close_errors", registry)

	for endpoint, statusMap := range newMetrics.RequestStatuses {
		for stat := range statusMap {
			statusMap[stat] = metrics.GetOrRegisterMeter("requests."+string(stat)+"."+string(endpoint), registry)
		}
		newMetrics.RequestTimers[endpoint] = metrics.GetOrRegisterTimer("request_time."+string(endpoint), registry)
	}
	for outcome := range newMetrics.DecodeMeters {
		newMetrics.DecodeMeters[outcome] = metrics.GetOrRegisterMeter("content.decode."+string(outcome), registry)
	}
	if !disabled.ContentContext {
		for label := range newMetrics.ContentContextMeters {
			newMetrics.ContentContextMeters[label] = metrics.GetOrRegisterMeter("content.context."+label, registry)
		}
	}
	return newMetrics
}

func (me *Metrics) RecordConnectionAccept(success bool) {
	if success {
		me.ConnectionCounter.Inc(1)
	} else {
		me.ConnectionAcceptErrorMeter.Mark(1)
	}
}

func (me *Metrics) RecordConnectionClose(success bool) {
	if success {
		me.ConnectionCounter.Dec(1)
	} else {
		me.ConnectionCloseErrorMeter.Mark(1)
	}
}

func (me *Metrics) RecordRequest(labels Labels) {
	if statusMap, ok := me.RequestStatuses[labels.Endpoint]; ok {
		if meter, ok := statusMap[labels.RequestStatus]; ok {
			meter.Mark(1)
		}
	}
}

func (me *Metrics) RecordRequestTime(labels Labels, length time.Duration) {
	// Only record times for successful requests, as we don't have labels to screen out bad requests.
	if labels.RequestStatus != RequestStatusOK {
		return
	}
	if timer, ok := me.RequestTimers[labels.Endpoint]; ok {
		timer.Update(length)
	}
}

func (me *Metrics) RecordContentDecode(outcome DecodeOutcome) {
	if meter, ok := me.DecodeMeters[outcome]; ok {
		meter.Mark(1)
	}
}

func (me *Metrics) RecordContentContext(context *openrtb2.ContentContext) {
	if meter, ok := me.ContentContextMeters[ContentContextLabel(context)]; ok {
		meter.Mark(1)
	}
}
