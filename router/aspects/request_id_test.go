package aspects

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestRequestIDKeepsCallerID(t *testing.T) {
	var seen string
	handler := RequestID(func(_ http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		seen = r.Header.Get(RequestIDHeader)
	})

	req := httptest.NewRequest("POST", "/openrtb2/content", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rw := httptest.NewRecorder()
	handler(rw, req, nil)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rw.Header().Get(RequestIDHeader))
}

func TestRequestIDGeneratesID(t *testing.T) {
	var seen string
	handler := RequestID(func(_ http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		seen = r.Header.Get(RequestIDHeader)
	})

	rw := httptest.NewRecorder()
	handler(rw, httptest.NewRequest("POST", "/openrtb2/content", nil), nil)

	parsed, err := uuid.FromString(seen)
	assert.NoError(t, err)
	assert.Equal(t, byte(uuid.V4), parsed.Version())
	assert.Equal(t, seen, rw.Header().Get(RequestIDHeader))
}
