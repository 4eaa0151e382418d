package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMiddleware counts HTTP requests and observes their latency
// per method, route pattern and status.
type PrometheusMiddleware struct {
	requestCount   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewPrometheusMiddleware builds the collectors and registers them with
// reg. Registering twice on the same registry is an error.
func NewPrometheusMiddleware(reg prometheus.Registerer) (*PrometheusMiddleware, error) {
	m := &PrometheusMiddleware{
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed.",
			},
			[]string{"method", "path", "status"},
		),
		requestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	if err := reg.Register(m.requestCount); err != nil {
		return nil, err
	}
	if err := reg.Register(m.requestLatency); err != nil {
		return nil, err
	}

	return m, nil
}

// Handler returns the fiber middleware handler. The /metrics endpoint
// itself is not counted.
func (m *PrometheusMiddleware) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}

		timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
			m.requestLatency.WithLabelValues(c.Method(), routePath(c)).Observe(v)
		}))
		err := c.Next()
		timer.ObserveDuration()

		status := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		m.requestCount.WithLabelValues(
			c.Method(),
			routePath(c),
			strconv.Itoa(status),
		).Inc()

		return err
	}
}

// routePath prefers the route pattern (/api/files/:id) over the raw
// path to keep label cardinality bounded. Unmatched requests fall back
// to the raw path.
func routePath(c *fiber.Ctx) string {
	if p := c.Route().Path; p != "" {
		return p
	}
	return c.Path()
}
