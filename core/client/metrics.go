package client

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector records client-side request metrics.
type Collector struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "huud_client_requests_total",
			Help: "API requests issued by the client, by method and status.",
		}, []string{"method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "huud_client_request_duration_seconds",
			Help:    "API request duration from dispatch to body read.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "huud_client_failures_total",
			Help: "Failed API requests by classified outcome kind.",
		}, []string{"kind"}),
	}
	reg.MustRegister(c.requests, c.duration, c.failures)
	return c
}

// observe records one completed request. status is zero for transport
// failures.
func (c *Collector) observe(method string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	label := "none"
	if status != 0 {
		label = strconv.Itoa(status)
	}
	c.requests.WithLabelValues(method, label).Inc()
	c.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// observeFailure records a classified failure kind.
func (c *Collector) observeFailure(kind string) {
	if c == nil {
		return
	}
	c.failures.WithLabelValues(kind).Inc()
}
