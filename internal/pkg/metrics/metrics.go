package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	telegramRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_requests_total",
			Help: "Telegram Bot API calls by method and outcome.",
		},
		[]string{"method", "outcome"},
	)

	telegramLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "telegram_request_duration_seconds",
			Help:    "Telegram Bot API call latency in seconds.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"method"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Admin HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Admin HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(telegramRequests, telegramLatency, httpRequests, httpLatency)
	})
}

func ObserveTelegram(method, outcome string, elapsed time.Duration) {
	telegramRequests.WithLabelValues(method, outcome).Inc()
	telegramLatency.WithLabelValues(method).Observe(elapsed.Seconds())
}

func ObserveHTTP(method, route, status string, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
