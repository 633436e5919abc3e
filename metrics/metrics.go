package metrics

import (
	"time"

	"github.com/prebid/prebid-content-server/errortypes"
	"github.com/prebid/prebid-content-server/openrtb2"
)

// Labels defines the labels that can be attached to the request metrics.
type Labels struct {
	Endpoint      Endpoint
	RequestStatus RequestStatus
}

// Endpoint : the content endpoint which served the request
type Endpoint string

// RequestStatus : The request return status
type RequestStatus string

// DecodeOutcome : the result of decoding one content object
type DecodeOutcome string

const (
	EndpointContent         Endpoint = "content"
	EndpointContentBatch    Endpoint = "content_batch"
	EndpointContentContexts Endpoint = "content_contexts"
)

func Endpoints() []Endpoint {
	return []Endpoint{
		EndpointContent,
		EndpointContentBatch,
		EndpointContentContexts,
	}
}

// Request/return status
const (
	RequestStatusOK           RequestStatus = "ok"
	RequestStatusBadInput     RequestStatus = "badinput"
	RequestStatusErr          RequestStatus = "err"
	RequestStatusQueueTimeout RequestStatus = "queuetimeout"
)

func RequestStatuses() []RequestStatus {
	return []RequestStatus{
		RequestStatusOK,
		RequestStatusBadInput,
		RequestStatusErr,
		RequestStatusQueueTimeout,
	}
}

const (
	DecodeOK           DecodeOutcome = "ok"
	DecodeTypeMismatch DecodeOutcome = "type_mismatch"
	DecodeInvalidCode  DecodeOutcome = "invalid_code"
	DecodeMalformed    DecodeOutcome = "malformed"
)

func DecodeOutcomes() []DecodeOutcome {
	return []DecodeOutcome{
		DecodeOK,
		DecodeTypeMismatch,
		DecodeInvalidCode,
		DecodeMalformed,
	}
}

// DecodeOutcomeFromError classifies a content decode error. A nil error is DecodeOK.
func DecodeOutcomeFromError(err error) DecodeOutcome {
	if err == nil {
		return DecodeOK
	}
	switch errortypes.ReadCode(err) {
	case errortypes.TypeMismatchErrorCode:
		return DecodeTypeMismatch
	case errortypes.InvalidEnumCodeErrorCode:
		return DecodeInvalidCode
	default:
		return DecodeMalformed
	}
}

// ContentContextNone labels content whose context attribute was absent.
const ContentContextNone = "none"

// ContentContextLabel returns the metric label for a decoded context attribute.
func ContentContextLabel(context *openrtb2.ContentContext) string {
	if context == nil {
		return ContentContextNone
	}
	return context.String()
}

// ContentContextLabels returns every label ContentContextLabel can produce.
func ContentContextLabels() []string {
	labels := []string{ContentContextNone}
	for _, context := range openrtb2.ContentContexts() {
		labels = append(labels, context.String())
	}
	return labels
}

// MetricsEngine is a generic interface to record metrics into the desired backend.
// The first three metrics function fire off once per incoming request, so total metrics
// will equal the total number of incoming requests. RecordContentDecode and RecordContentContext
// fire once per content object, so a batch request records one per element.
type MetricsEngine interface {
	RecordConnectionAccept(success bool)
	RecordConnectionClose(success bool)
	RecordRequest(labels Labels)
	RecordRequestTime(labels Labels, length time.Duration)
	RecordContentDecode(outcome DecodeOutcome)
	RecordContentContext(context *openrtb2.ContentContext)
}
