package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	availabilityQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vanrent",
			Name:      "availability_queries_total",
			Help:      "Count of availability queries by resolved schedule source.",
		},
		[]string{"source"},
	)

	staleLookups = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vanrent",
			Name:      "stale_lookups_discarded_total",
			Help:      "Count of reservation lookups discarded because a newer query superseded them.",
		},
	)

	sameDayRejections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vanrent",
			Name:      "same_day_rejections_total",
			Help:      "Count of selections rejected by the same-day minimum duration rule.",
		},
	)

	quotes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vanrent",
			Name:      "quotes_total",
			Help:      "Count of price quotes by outcome.",
		},
		[]string{"status"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vanrent",
			Name:      "http_requests_total",
			Help:      "Count of HTTP API requests by endpoint.",
		},
		[]string{"endpoint"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(availabilityQueries, staleLookups, sameDayRejections, quotes, httpRequests)
	})
}

func IncAvailabilityQuery(source string) {
	availabilityQueries.WithLabelValues(source).Inc()
}

func IncStaleLookupDiscarded() {
	staleLookups.Inc()
}

func IncSameDayRejection() {
	sameDayRejections.Inc()
}

func IncQuote(status string) {
	quotes.WithLabelValues(status).Inc()
}

func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}
