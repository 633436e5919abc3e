package metrics

import (
	"time"

	"github.com/prebid/prebid-content-server/openrtb2"
	"github.com/stretchr/testify/mock"
)

// MetricsEngineMock is mock for the MetricsEngine interface
type MetricsEngineMock struct {
	mock.Mock
}

// RecordConnectionAccept mock
func (me *MetricsEngineMock) RecordConnectionAccept(success bool) {
	me.Called(success)
}

// RecordConnectionClose mock
func (me *MetricsEngineMock) RecordConnectionClose(success bool) {
	me.Called(success)
}

// RecordRequest mock
func (me *MetricsEngineMock) RecordRequest(labels Labels) {
	me.Called(labels)
}

// RecordRequestTime mock
func (me *MetricsEngineMock) RecordRequestTime(labels Labels, length time.Duration) {
	me.Called(labels, length)
}

// RecordContentDecode mock
func (me *MetricsEngineMock) RecordContentDecode(outcome DecodeOutcome) {
	me.Called(outcome)
}

// RecordContentContext mock
func (me *MetricsEngineMock) RecordContentContext(context *openrtb2.ContentContext) {
	me.Called(context)
}
