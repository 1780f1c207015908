package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса для Prometheus
type Metrics struct {
	// HTTP метрики
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Метрики БД
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec

	// Connection pool
	DBConnectionsOpen  prometheus.Gauge
	DBConnectionsInUse prometheus.Gauge
	DBConnectionsIdle  prometheus.Gauge

	// Бизнес-метрики бронирований
	HoldsCreated   prometheus.Counter
	HoldsConfirmed prometheus.Counter
	HoldsExpired   prometheus.Counter
	HoldConflicts  prometheus.Counter
}

// IncHoldsCreated увеличивает счётчик созданных удержаний
// Методы инкремента безопасны для nil-получателя: при выключенных метриках
// вызовы превращаются в no-op
func (m *Metrics) IncHoldsCreated() {
	if m == nil {
		return
	}
	m.HoldsCreated.Inc()
}

// IncHoldsConfirmed увеличивает счётчик подтверждённых удержаний
func (m *Metrics) IncHoldsConfirmed() {
	if m == nil {
		return
	}
	m.HoldsConfirmed.Inc()
}

// IncHoldConflicts увеличивает счётчик конфликтов за слот
func (m *Metrics) IncHoldConflicts() {
	if m == nil {
		return
	}
	m.HoldConflicts.Inc()
}

// AddHoldsExpired увеличивает счётчик истёкших удержаний на n
func (m *Metrics) AddHoldsExpired(n int64) {
	if m == nil {
		return
	}
	m.HoldsExpired.Add(float64(n))
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		HTTPRequestsInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests currently being served",
			ConstLabels: labels,
		}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: labels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"operation"}),

		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of database query errors",
			ConstLabels: labels,
		}, []string{"operation"}),

		DBConnectionsOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Number of open database connections",
			ConstLabels: labels,
		}),

		DBConnectionsInUse: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_in_use",
			Help:        "Number of database connections currently in use",
			ConstLabels: labels,
		}),

		DBConnectionsIdle: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Number of idle database connections",
			ConstLabels: labels,
		}),

		HoldsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_holds_created_total",
			Help:        "Total number of slot holds created",
			ConstLabels: labels,
		}),

		HoldsConfirmed: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_holds_confirmed_total",
			Help:        "Total number of holds confirmed into bookings",
			ConstLabels: labels,
		}),

		HoldsExpired: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_holds_expired_total",
			Help:        "Total number of holds expired by the sweeper",
			ConstLabels: labels,
		}),

		HoldConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_hold_conflicts_total",
			Help:        "Total number of hold attempts rejected due to slot conflicts",
			ConstLabels: labels,
		}),
	}
}
