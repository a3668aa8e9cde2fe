package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-коллекторов сервиса
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbOpenConns     *prometheus.GaugeVec
	dbInUseConns    *prometheus.GaugeVec
	dbIdleConns     *prometheus.GaugeVec
	dbWaitCount     *prometheus.GaugeVec

	bookingValidations *prometheus.CounterVec
	patternGenerations *prometheus.CounterVec
	generatedClasses   *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Database query errors",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		dbOpenConns:  newPoolGauge("db_pool_open_connections", "Open connections", constLabels),
		dbInUseConns: newPoolGauge("db_pool_in_use_connections", "Connections in use", constLabels),
		dbIdleConns:  newPoolGauge("db_pool_idle_connections", "Idle connections", constLabels),
		dbWaitCount:  newPoolGauge("db_pool_wait_count", "Total number of connections waited for", constLabels),

		bookingValidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_validations_total",
			Help:        "Booking validation outcomes by booking kind and violation code",
			ConstLabels: constLabels,
		}, []string{"kind", "result", "code"}),
		patternGenerations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "pattern_generations_total",
			Help:        "Pattern class generation attempts by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		generatedClasses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "pattern_generated_classes_total",
			Help:        "Classes created by pattern generation",
			ConstLabels: constLabels,
		}, []string{"mode"}),
	}

	reg.MustRegister(
		m.httpRequests, m.httpDuration,
		m.dbQueryDuration, m.dbQueryErrors,
		m.dbOpenConns, m.dbInUseConns, m.dbIdleConns, m.dbWaitCount,
		m.bookingValidations, m.patternGenerations, m.generatedClasses,
	)

	return m
}

func newPoolGauge(name, help string, constLabels prometheus.Labels) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name:        name,
		Help:        help,
		ConstLabels: constLabels,
	}, []string{"db"})
}

// ObserveHTTPRequest фиксирует HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполнение запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(db string, stats sql.DBStats) {
	m.dbOpenConns.WithLabelValues(db).Set(float64(stats.OpenConnections))
	m.dbInUseConns.WithLabelValues(db).Set(float64(stats.InUse))
	m.dbIdleConns.WithLabelValues(db).Set(float64(stats.Idle))
	m.dbWaitCount.WithLabelValues(db).Set(float64(stats.WaitCount))
}

// IncBookingValidation фиксирует результат валидации бронирования.
// code пустой для принятых бронирований
func (m *Metrics) IncBookingValidation(kind, result, code string) {
	m.bookingValidations.WithLabelValues(kind, result, code).Inc()
}

// IncPatternGeneration фиксирует попытку генерации занятий по шаблону
func (m *Metrics) IncPatternGeneration(result string) {
	m.patternGenerations.WithLabelValues(result).Inc()
}

// AddGeneratedClasses фиксирует количество созданных занятий
func (m *Metrics) AddGeneratedClasses(mode string, count int) {
	m.generatedClasses.WithLabelValues(mode).Add(float64(count))
}
