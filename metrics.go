// Copyright 2026 The resfetch-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package resfetch

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/resfetch/resfetch-go/request"
)

// Metrics records Prometheus metrics for calls made through a Client.
// Construct one with NewMetrics and set it on the client; a nil Metrics
// disables collection entirely.
type Metrics struct {
	attempts *prometheus.CounterVec
	retries  *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics constructs and registers the resfetch metric set against
// reg. Pass prometheus.DefaultRegisterer for the default registry; in
// tests, pass a fresh prometheus.NewRegistry to keep registrations
// isolated.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		attempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "resfetch",
				Name:      "attempts_total",
				Help:      "Request attempts made, including retries.",
			},
			[]string{"method", "status"},
		),
		retries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "resfetch",
				Name:      "retries_total",
				Help:      "Retries performed after failed attempts.",
			},
			[]string{"method"},
		),
		failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "resfetch",
				Name:      "failures_total",
				Help:      "Calls that ended in a terminal error, by error kind.",
			},
			[]string{"method", "kind"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "resfetch",
				Name:      "call_duration_seconds",
				Help:      "Wall-clock duration of completed calls.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
}

func (c *Client) recordAttempt(method string, e *request.Execution) {
	if c.Metrics == nil {
		return
	}
	status := "error"
	if e.Response != nil {
		status = strconv.Itoa(e.StatusCode())
	}
	c.Metrics.attempts.WithLabelValues(method, status).Inc()
}

func (c *Client) recordRetry(method string) {
	if c.Metrics == nil {
		return
	}
	c.Metrics.retries.WithLabelValues(method).Inc()
}

func (c *Client) recordFailure(method string, err error) {
	if c.Metrics == nil {
		return
	}
	kind := "response"
	var verr *ValidationError
	if errors.As(err, &verr) {
		kind = "validation"
	}
	c.Metrics.failures.WithLabelValues(method, kind).Inc()
}

func (c *Client) recordDuration(method string, e *request.Execution) {
	if c.Metrics == nil {
		return
	}
	c.Metrics.duration.WithLabelValues(method).Observe(e.Duration().Seconds())
}
