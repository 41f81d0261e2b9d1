// Package metricsvc exposes Prometheus metrics about outbound submissions.
package metricsvc

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/trezcool/apar/core"
	"github.com/trezcool/apar/core/assessment"
)

const (
	resultOK        = "ok"
	resultRejected  = "rejected"
	resultTransport = "transport"
)

// Submitter counts and times every request of the wrapped Submitter.
type Submitter struct {
	next assessment.Submitter

	total   *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

var _ assessment.Submitter = (*Submitter)(nil)

func NewSubmitter(next assessment.Submitter, reg prometheus.Registerer) *Submitter {
	factory := promauto.With(reg)
	return &Submitter{
		next: next,
		total: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "apar",
			Name:      "submissions_total",
			Help:      "Total number of requests sent to the appraisal API.",
		}, []string{"endpoint", "result"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "apar",
			Name:      "submission_latency_seconds",
			Help:      "Latency distribution of requests sent to the appraisal API.",
			Buckets:   []float64{0.05, 0.1, 0.2, 0.5, 1, 2, 5, 10, 30},
		}, []string{"endpoint"}),
	}
}

func (s *Submitter) Submit(ctx context.Context, endpoint string, payload interface{}) error {
	start := time.Now()
	err := s.next.Submit(ctx, endpoint, payload)
	s.latency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	s.total.WithLabelValues(endpoint, result(err)).Inc()
	return err
}

func result(err error) string {
	if err == nil {
		return resultOK
	}
	if tErr, ok := errors.Cause(err).(*core.TransportError); ok && tErr.StatusCode != 0 {
		return resultRejected
	}
	return resultTransport
}
