// Package metrics Prometheus-метрики сервиса
// Все методы записи безопасны для nil-получателя: при выключенных метриках
// в зависимости передается (*Metrics)(nil)
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics коллектор метрик сервиса
type Metrics struct {
	registry *prometheus.Registry
	service  string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration     *prometheus.HistogramVec
	dbOpenConnections   *prometheus.GaugeVec
	dbInUseConnections  *prometheus.GaugeVec
	dbIdleConnections   *prometheus.GaugeVec
	dbWaitCount         *prometheus.GaugeVec
	dbWaitDurationTotal *prometheus.GaugeVec

	bookingsCreated   *prometheus.CounterVec
	bookingConflicts  *prometheus.CounterVec
	bookingsCancelled *prometheus.CounterVec
}

// New создает коллектор метрик с собственным реестром
func New(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		service:  serviceName,

		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation", "status"}),

		dbOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),

		dbInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		dbIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),

		dbWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		dbWaitDurationTotal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_duration_seconds_total",
			Help: "Total time blocked waiting for a new connection",
		}, []string{"service"}),

		bookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Number of confirmed bookings created",
		}, []string{"service"}),

		bookingConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_conflicts_total",
			Help: "Number of booking attempts rejected because the slot was taken",
		}, []string{"service"}),

		bookingsCancelled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_cancelled_total",
			Help: "Number of bookings cancelled by players",
		}, []string{"service"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbOpenConnections,
		m.dbInUseConnections,
		m.dbIdleConnections,
		m.dbWaitCount,
		m.dbWaitDurationTotal,
		m.bookingsCreated,
		m.bookingConflicts,
		m.bookingsCancelled,
	)

	return m
}

// Handler возвращает HTTP handler для эндпоинта метрик
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTPRequest записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(m.service, method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(m.service, method, path).Observe(duration.Seconds())
}

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueryDuration.WithLabelValues(m.service, operation, status).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int, waitCount int64, waitDuration time.Duration) {
	if m == nil {
		return
	}
	m.dbOpenConnections.WithLabelValues(m.service).Set(float64(open))
	m.dbInUseConnections.WithLabelValues(m.service).Set(float64(inUse))
	m.dbIdleConnections.WithLabelValues(m.service).Set(float64(idle))
	m.dbWaitCount.WithLabelValues(m.service).Set(float64(waitCount))
	m.dbWaitDurationTotal.WithLabelValues(m.service).Set(waitDuration.Seconds())
}

// IncBookingCreated увеличивает счетчик созданных бронирований
func (m *Metrics) IncBookingCreated() {
	if m == nil {
		return
	}
	m.bookingsCreated.WithLabelValues(m.service).Inc()
}

// IncBookingConflict увеличивает счетчик отказов из-за занятого слота
func (m *Metrics) IncBookingConflict() {
	if m == nil {
		return
	}
	m.bookingConflicts.WithLabelValues(m.service).Inc()
}

// IncBookingCancelled увеличивает счетчик отмененных бронирований
func (m *Metrics) IncBookingCancelled() {
	if m == nil {
		return
	}
	m.bookingsCancelled.WithLabelValues(m.service).Inc()
}
