package openrtb2

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prebid/prebid-content-server/logger"
	"github.com/prebid/prebid-content-server/metrics"
	"github.com/prebid/prebid-content-server/openrtb2"
)

type contentContextEntry struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

// NewContentContextsEndpoint serves the OpenRTB list 5.18 code table, ordered by code.
func NewContentContextsEndpoint(metricsEngine metrics.MetricsEngine) httprouter.Handle {
	response, err := prepareContentContextsResponse()
	if err != nil {
		logger.Fatalf("error creating /openrtb2/content/contexts endpoint response: %v", err)
	}

	return func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		start := time.Now()
		labels := metrics.Labels{
			Endpoint:      metrics.EndpointContentContexts,
			RequestStatus: metrics.RequestStatusOK,
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(response)
		metricsEngine.RecordRequest(labels)
		metricsEngine.RecordRequestTime(labels, time.Since(start))
	}
}

func prepareContentContextsResponse() ([]byte, error) {
	contexts := openrtb2.ContentContexts()
	entries := make([]contentContextEntry, 0, len(contexts))
	for _, context := range contexts {
		entries = append(entries, contentContextEntry{
			Code: context.Code(),
			Name: context.String(),
		})
	}
	return json.Marshal(entries)
}
