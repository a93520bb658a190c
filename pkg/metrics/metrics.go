package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	BookingsCreated    prometheus.Counter
	BookingsCancelled  prometheus.Counter
	AdmissionsRejected prometheus.Counter
	TxRetries          prometheus.Counter

	NotificationsPublished *prometheus.CounterVec
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

		BookingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of successfully created bookings",
			ConstLabels: labels,
		}),

		BookingsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_cancelled_total",
			Help:        "Total number of cancelled bookings",
			ConstLabels: labels,
		}),

		AdmissionsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "admissions_rejected_total",
			Help:        "Total number of booking requests rejected by the capacity check",
			ConstLabels: labels,
		}),

		TxRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "tx_serialization_retries_total",
			Help:        "Total number of serializable transaction retries",
			ConstLabels: labels,
		}),

		NotificationsPublished: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_published_total",
			Help:        "Total number of notification publish attempts by result",
			ConstLabels: labels,
		}, []string{"result"}),
	}
}

// IncBookingsCreated инкрементирует счетчик созданных бронирований
func (m *Metrics) IncBookingsCreated() {
	m.BookingsCreated.Inc()
}

// IncBookingsCancelled инкрементирует счетчик отмененных бронирований
func (m *Metrics) IncBookingsCancelled() {
	m.BookingsCancelled.Inc()
}

// IncAdmissionsRejected инкрементирует счетчик отказов проверки вместимости
func (m *Metrics) IncAdmissionsRejected() {
	m.AdmissionsRejected.Inc()
}

// IncTxRetries инкрементирует счетчик повторов сериализуемых транзакций
func (m *Metrics) IncTxRetries() {
	m.TxRetries.Inc()
}

// IncNotificationsPublished инкрементирует счетчик публикаций уведомлений
func (m *Metrics) IncNotificationsPublished(result string) {
	m.NotificationsPublished.WithLabelValues(result).Inc()
}
