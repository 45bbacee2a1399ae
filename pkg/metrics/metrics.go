package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration     *prometheus.HistogramVec
	DBQueryErrors       *prometheus.CounterVec
	DBOpenConnections   *prometheus.GaugeVec
	DBInUseConnections  *prometheus.GaugeVec
	DBIdleConnections   *prometheus.GaugeVec
	DBWaitCount         *prometheus.GaugeVec

	AvailabilityVerdicts *prometheus.CounterVec
	QuotedDays           *prometheus.HistogramVec
	DataProviderErrors   *prometheus.CounterVec
}

// New регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в указанном registerer (для тестов - отдельный реестр)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{}),

		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{}),

		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{}),

		AvailabilityVerdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "rental_availability_verdicts_total",
			Help:        "Availability evaluations by outcome",
			ConstLabels: constLabels,
		}, []string{"operation", "outcome"}),

		QuotedDays: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "rental_quoted_days",
			Help:        "Billable days of accepted quotes",
			ConstLabels: constLabels,
			Buckets:     []float64{1, 2, 3, 4, 5, 7, 10, 14},
		}, []string{}),

		DataProviderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "rental_data_provider_errors_total",
			Help:        "Failed reservation/stock fetches",
			ConstLabels: constLabels,
		}, []string{"provider", "operation"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.AvailabilityVerdicts,
		m.QuotedDays,
		m.DataProviderErrors,
	)

	return m
}

// RecordVerdict учитывает результат проверки доступности. Безопасно для nil.
func (m *Metrics) RecordVerdict(operation, outcome string) {
	if m == nil {
		return
	}
	m.AvailabilityVerdicts.WithLabelValues(operation, outcome).Inc()
}

// RecordQuote учитывает количество оплачиваемых дней принятого расчета
func (m *Metrics) RecordQuote(days int) {
	if m == nil {
		return
	}
	m.QuotedDays.WithLabelValues().Observe(float64(days))
}

// RecordProviderError учитывает ошибку источника данных
func (m *Metrics) RecordProviderError(provider, operation string) {
	if m == nil {
		return
	}
	m.DataProviderErrors.WithLabelValues(provider, operation).Inc()
}
