package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Conversation metrics
	MessagesProcessed *prometheus.CounterVec
	MessagesFailed    *prometheus.CounterVec
	ActiveSessions    prometheus.Gauge

	// Booking metrics
	BookingsConfirmed *prometheus.CounterVec
	BookingConflicts  *prometheus.CounterVec

	// Tenant resolution metrics
	TenantResolutions *prometheus.CounterVec

	// Transport metrics
	TransportLatency prometheus.Histogram
	TransportErrors  prometheus.Counter
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		MessagesProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_processed_total",
			Help:      "Total number of inbound chat messages handled",
		}, []string{"salon", "step"}),
		MessagesFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_failed_total",
			Help:      "Total number of inbound messages that ended in an aborted session",
		}, []string{"salon"}),
		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Current number of live conversational sessions",
		}),
		BookingsConfirmed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_confirmed_total",
			Help:      "Total number of committed bookings",
		}, []string{"salon"}),
		BookingConflicts: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_conflicts_total",
			Help:      "Total number of bookings rejected at commit time because the slot was taken",
		}, []string{"salon"}),
		TenantResolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tenant_resolutions_total",
			Help:      "Tenant resolutions by rule that decided them",
		}, []string{"provenance"}),
		TransportLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transport_request_duration_seconds",
			Help:      "Latency of calls to the outbound messaging transport",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		TransportErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transport_errors_total",
			Help:      "Total number of failed calls to the outbound messaging transport",
		}),
	}
}
