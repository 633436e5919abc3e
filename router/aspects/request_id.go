package aspects

import (
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/prebid/prebid-content-server/logger"
)

// RequestIDHeader carries the id used to correlate a request with its log lines.
const RequestIDHeader = "X-Request-Id"

// RequestID keeps the caller's request id, or generates one, and echoes it on the response.
func RequestID(f httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			rawUUID, err := uuid.NewV4()
			if err != nil {
				logger.Warnf("Failed to generate a request id: %v", err)
			} else {
				id = rawUUID.String()
				r.Header.Set(RequestIDHeader, id)
			}
		}
		if id != "" {
			w.Header().Set(RequestIDHeader, id)
		}
		f(w, r, params)
	}
}
