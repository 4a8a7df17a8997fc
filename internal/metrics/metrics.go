// Package metrics exposes the service's Prometheus collectors: relayed
// transitions, relay failures and HTTP request latency.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"marketplace/internal/core/domain/model/history"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "marketplace"

type Metrics struct {
	registry *prometheus.Registry

	transitionsRelayed *prometheus.CounterVec
	relayFailures      prometheus.Counter
	relayBacklog       prometheus.Gauge
	requestDuration    *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transitionsRelayed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_relayed_total",
			Help:      "Applied transitions handed to the notification sink.",
		}, []string{"entity_type", "transition"}),
		relayFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transition_relay_failures_total",
			Help:      "Transitions the notification sink refused; retried on the next tick.",
		}),
		relayBacklog: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transition_relay_batch_size",
			Help:      "Unpublished transitions picked up by the last relay tick.",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "API request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	m.registry.MustRegister(
		m.transitionsRelayed,
		m.relayFailures,
		m.relayBacklog,
		m.requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Relayed(r history.Record) {
	m.transitionsRelayed.WithLabelValues(r.Entity.String(), r.Transition.String()).Inc()
}

func (m *Metrics) RelayFailed() {
	m.relayFailures.Inc()
}

func (m *Metrics) RelayBatch(size int) {
	m.relayBacklog.Set(float64(size))
}

// Middleware records request latency labelled by the route template, so
// ids in paths do not explode label cardinality. Errors are rendered here
// through the echo error handler so the recorded status is the one sent.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.requestDuration.
				WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).
				Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
