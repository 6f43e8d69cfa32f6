// Package metrics expone métricas Prometheus del API y del motor de stock.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los collectors registrados en un registry propio.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	adjustments *prometheus.CounterVec
	units       *prometheus.CounterVec
	rejected    *prometheus.CounterVec
}

// New crea y registra los collectors bajo namespace.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total de peticiones HTTP",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		adjustments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_adjustments_total",
			Help:      "Ajustes de stock confirmados",
		}, []string{"type", "direction"}),
		units: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_adjusted_units_total",
			Help:      "Unidades movidas por ajustes confirmados",
		}, []string{"direction"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_adjustments_rejected_total",
			Help:      "Ajustes de stock rechazados",
		}, []string{"type", "reason"}),
	}
	registry.MustRegister(m.httpRequests, m.httpDuration, m.adjustments, m.units, m.rejected)
	return m
}

// AdjustmentApplied registra un ajuste confirmado.
func (m *Metrics) AdjustmentApplied(txType, direction string, quantity int) {
	m.adjustments.WithLabelValues(txType, direction).Inc()
	m.units.WithLabelValues(direction).Add(float64(quantity))
}

// AdjustmentRejected registra un ajuste rechazado.
func (m *Metrics) AdjustmentRejected(txType, reason string) {
	m.rejected.WithLabelValues(txType, reason).Inc()
}

// Middleware mide cada petición usando la ruta registrada (no el path crudo).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		route := c.Route().Path
		m.httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry para pruebas.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
