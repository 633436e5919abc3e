package openrtb2

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/buger/jsonparser"
	"github.com/julienschmidt/httprouter"
	"github.com/prebid/prebid-content-server/config"
	"github.com/prebid/prebid-content-server/errortypes"
	"github.com/prebid/prebid-content-server/logger"
	"github.com/prebid/prebid-content-server/metrics"
	"github.com/prebid/prebid-content-server/openrtb2"
)

type endpointDeps struct {
	cfg           *config.Configuration
	metricsEngine metrics.MetricsEngine
}

// NewContentEndpoint decodes a single OpenRTB content object and answers with its canonical encoding.
func NewContentEndpoint(cfg *config.Configuration, metricsEngine metrics.MetricsEngine) httprouter.Handle {
	deps := &endpointDeps{cfg: cfg, metricsEngine: metricsEngine}
	return deps.ContentEndpoint
}

// NewContentBatchEndpoint decodes a JSON array of content objects. Every invalid element is reported,
// not only the first one.
func NewContentBatchEndpoint(cfg *config.Configuration, metricsEngine metrics.MetricsEngine) httprouter.Handle {
	deps := &endpointDeps{cfg: cfg, metricsEngine: metricsEngine}
	return deps.ContentBatchEndpoint
}

func (deps *endpointDeps) ContentEndpoint(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	start := time.Now()
	labels := metrics.Labels{
		Endpoint:      metrics.EndpointContent,
		RequestStatus: metrics.RequestStatusOK,
	}
	defer func() {
		deps.metricsEngine.RecordRequest(labels)
		deps.metricsEngine.RecordRequestTime(labels, time.Since(start))
	}()

	body, err := deps.readBody(r)
	if err != nil {
		handleError(&labels, w, []error{err})
		return
	}

	content, err := deps.decodeContent(body)
	if err != nil {
		handleError(&labels, w, []error{err})
		return
	}

	writeJSON(&labels, w, content)
}

func (deps *endpointDeps) ContentBatchEndpoint(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	start := time.Now()
	labels := metrics.Labels{
		Endpoint:      metrics.EndpointContentBatch,
		RequestStatus: metrics.RequestStatusOK,
	}
	defer func() {
		deps.metricsEngine.RecordRequest(labels)
		deps.metricsEngine.RecordRequestTime(labels, time.Since(start))
	}()

	body, err := deps.readBody(r)
	if err != nil {
		handleError(&labels, w, []error{err})
		return
	}

	contents, errs := deps.decodeContentBatch(body)
	if len(errs) > 0 {
		agg := errortypes.NewAggregateErrors("content batch rejected", errs)
		logger.Debugf("/openrtb2/content/batch request %s: %v", r.Header.Get("X-Request-Id"), agg)
		handleError(&labels, w, agg.Errors)
		return
	}

	writeJSON(&labels, w, contents)
}

func (deps *endpointDeps) readBody(r *http.Request) ([]byte, error) {
	lr := &io.LimitedReader{
		R: r.Body,
		N: deps.cfg.MaxRequestSize + 1,
	}
	body, err := io.ReadAll(lr)
	if err != nil {
		return nil, &errortypes.BadInput{Message: fmt.Sprintf("failed to read request body: %v", err)}
	}
	if int64(len(body)) > deps.cfg.MaxRequestSize {
		return nil, &errortypes.RequestTooLarge{Message: fmt.Sprintf("request size exceeded max size of %d bytes", deps.cfg.MaxRequestSize)}
	}
	return body, nil
}

func (deps *endpointDeps) decodeContent(body []byte) (openrtb2.Content, error) {
	var content openrtb2.Content
	err := json.Unmarshal(body, &content)
	deps.recordDecode(&content, err)
	if err != nil {
		return openrtb2.Content{}, asBadInput(err)
	}
	return content, nil
}

func (deps *endpointDeps) decodeContentBatch(body []byte) ([]openrtb2.Content, []error) {
	if !json.Valid(body) {
		return nil, []error{&errortypes.BadInput{Message: "request body is not valid JSON"}}
	}
	if _, dataType, _, _ := jsonparser.Get(body); dataType != jsonparser.Array {
		return nil, []error{&errortypes.TypeMismatch{Field: "request", Expected: "array", Actual: dataType.String()}}
	}

	contents := make([]openrtb2.Content, 0)
	var errs []error
	index := 0
	_, err := jsonparser.ArrayEach(body, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		var content openrtb2.Content
		var err error
		switch dataType {
		case jsonparser.Object, jsonparser.Null:
			err = content.UnmarshalJSON(value)
		default:
			err = &errortypes.TypeMismatch{Field: "content", Expected: "object", Actual: dataType.String()}
		}
		deps.recordDecode(&content, err)
		if err != nil {
			errs = append(errs, fmt.Errorf("content[%d]: %w", index, err))
		} else {
			contents = append(contents, content)
		}
		index++
	})
	if err != nil {
		return nil, []error{&errortypes.BadInput{Message: "request: " + err.Error()}}
	}
	return contents, errs
}

func (deps *endpointDeps) recordDecode(content *openrtb2.Content, err error) {
	deps.metricsEngine.RecordContentDecode(metrics.DecodeOutcomeFromError(err))
	if err == nil {
		deps.metricsEngine.RecordContentContext(content.Context)
	}
}

// asBadInput tags errors which carry no code, such as encoding/json syntax errors.
func asBadInput(err error) error {
	if errortypes.ReadCode(err) == errortypes.UnknownErrorCode {
		return &errortypes.BadInput{Message: err.Error()}
	}
	return err
}

type errorResponse struct {
	Errors []errorResponseEntry `json:"errors"`
}

type errorResponseEntry struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func handleError(labels *metrics.Labels, w http.ResponseWriter, errL []error) {
	status := http.StatusBadRequest
	labels.RequestStatus = metrics.RequestStatusBadInput

	resp := errorResponse{Errors: make([]errorResponseEntry, 0, len(errL))}
	for _, err := range errL {
		code := errortypes.ReadCode(err)
		switch code {
		case errortypes.RequestTooLargeErrorCode:
			status = http.StatusRequestEntityTooLarge
		case errortypes.UnknownErrorCode, errortypes.FailedToMarshalErrorCode:
			status = http.StatusInternalServerError
			labels.RequestStatus = metrics.RequestStatusErr
			logger.Errorf("/openrtb2/content Critical error: %v", err)
		}
		resp.Errors = append(resp.Errors, errorResponseEntry{Code: code, Message: err.Error()})
	}

	b, err := json.Marshal(resp)
	if err != nil {
		logger.Errorf("/openrtb2/content Failed to marshal error response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}

func writeJSON(labels *metrics.Labels, w http.ResponseWriter, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		handleError(labels, w, []error{&errortypes.FailedToMarshal{Message: err.Error()}})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}
