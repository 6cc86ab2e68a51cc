package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hall_booking",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	bookingsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hall_booking",
			Name:      "bookings_created_total",
			Help:      "Bookings created, by initial status.",
		},
		[]string{"status"},
	)

	bookingConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hall_booking",
			Name:      "booking_conflicts_total",
			Help:      "Reservation attempts rejected because the slot was contested.",
		},
	)

	ticketsIssued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hall_booking",
			Name:      "tickets_issued_total",
			Help:      "Tickets issued for confirmed bookings.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpDuration, bookingsCreated, bookingConflicts, ticketsIssued)
	})
}

func ObserveHTTP(method, route, status string, d time.Duration) {
	httpDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}

func IncBookingCreated(status string) {
	bookingsCreated.WithLabelValues(status).Inc()
}

func IncBookingConflict() {
	bookingConflicts.Inc()
}

func AddTicketsIssued(n int) {
	ticketsIssued.Add(float64(n))
}
