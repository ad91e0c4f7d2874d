package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/control-activos/internal/application/inventory"
)

var _ inventory.Recorder = (*Metrics)(nil)

// Metrics colectores Prometheus de la API sobre un registry propio.
type Metrics struct {
	registry         *prometheus.Registry
	movements        *prometheus.CounterVec
	movementDuration *prometheus.HistogramVec
	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
}

// New registra los colectores de movimientos, HTTP, proceso y runtime de Go.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	movements := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventario_movimientos_total",
			Help: "Operaciones del motor de conciliación por tipo y resultado",
		},
		[]string{"operation", "outcome"},
	)
	movementDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventario_movimiento_duracion_segundos",
			Help:    "Duración de las operaciones del motor, incluidos los reintentos",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Peticiones HTTP por método, ruta y código",
		},
		[]string{"method", "route", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latencia de las peticiones HTTP",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	registry.MustRegister(
		movements, movementDuration, requests, requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry:         registry,
		movements:        movements,
		movementDuration: movementDuration,
		requests:         requests,
		requestDuration:  requestDuration,
	}
}

// ObserveMovement implementa inventory.Recorder.
func (m *Metrics) ObserveMovement(operation, outcome string, elapsed time.Duration) {
	m.movements.WithLabelValues(operation, outcome).Inc()
	m.movementDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveRequest registra una petición HTTP. route es el patrón de la ruta, no la URL.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler expone el registry en formato de texto de Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry devuelve el registry subyacente.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
