package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics структура для метрик Prometheus
type Metrics struct {
	MessagesProcessed    prometheus.Counter
	CallbacksProcessed   prometheus.Counter
	SubmissionsTotal     prometheus.Counter
	StatusTransitions    *prometheus.CounterVec
	ErrorsTotal          prometheus.Counter
	UpdateProcessingTime prometheus.Histogram
}

// NewMetrics создает новые метрики
func NewMetrics() *Metrics {
	return &Metrics{
		MessagesProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "telegram_bot_messages_processed_total",
			Help: "Total number of messages processed",
		}),

		CallbacksProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "telegram_bot_callbacks_processed_total",
			Help: "Total number of callback queries processed",
		}),

		SubmissionsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "telegram_bot_submissions_total",
			Help: "Total number of access applications submitted",
		}),

		StatusTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "telegram_bot_status_transitions_total",
			Help: "Total number of user status transitions",
		}, []string{"status"}),

		ErrorsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "telegram_bot_errors_total",
			Help: "Total number of errors",
		}),

		UpdateProcessingTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "telegram_bot_update_processing_time_seconds",
			Help:    "Time spent processing updates",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
