package metricsvc

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/apar/core"
	"github.com/trezcool/apar/core/assessment"
)

func TestSubmitter(t *testing.T) {
	mock := &assessment.SubmitterMock{}
	s := NewSubmitter(mock, prometheus.NewRegistry())
	ctx := context.Background()

	assert.NoError(t, s.Submit(ctx, assessment.EndpointLecture, struct{}{}))

	mock.Err = &core.TransportError{Endpoint: assessment.EndpointLecture, StatusCode: 500}
	assert.Error(t, s.Submit(ctx, assessment.EndpointLecture, struct{}{}))

	mock.Err = &core.TransportError{Endpoint: assessment.EndpointLecture, Err: context.DeadlineExceeded}
	assert.Error(t, s.Submit(ctx, assessment.EndpointLecture, struct{}{}))

	assert.Equal(t, 1.0, testutil.ToFloat64(s.total.WithLabelValues("addlecture", resultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.total.WithLabelValues("addlecture", resultRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.total.WithLabelValues("addlecture", resultTransport)))
	assert.Len(t, mock.Sent(), 3)
}
