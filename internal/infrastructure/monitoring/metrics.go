package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the provisioning service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	RegistrationsTotal   *prometheus.CounterVec
	LoginsTotal          *prometheus.CounterVec
	DetectionsIngested   *prometheus.CounterVec
	TenantLookupsTotal   *prometheus.CounterVec
	VNICollisionRedraws  prometheus.Counter
	DetectionPublishErrs prometheus.Counter
}

// NewMetrics registers the collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vigia",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route, and status code.",
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vigia",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		RegistrationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vigia",
			Subsystem: "provision",
			Name:      "registrations_total",
			Help:      "Marketplace registrations by outcome.",
		}, []string{"outcome"}),

		LoginsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vigia",
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),

		DetectionsIngested: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vigia",
			Subsystem: "ingest",
			Name:      "detections_total",
			Help:      "Ingested detections by resolution source and outcome.",
		}, []string{"source", "outcome"}),

		TenantLookupsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vigia",
			Subsystem: "ingest",
			Name:      "tenant_lookups_total",
			Help:      "Tenant resolutions on the ingest path by cache result.",
		}, []string{"result"}),

		VNICollisionRedraws: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "vigia",
			Subsystem: "provision",
			Name:      "vni_collision_redraws_total",
			Help:      "VNI draws rejected by the uniqueness constraint.",
		}),

		DetectionPublishErrs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "vigia",
			Subsystem: "ingest",
			Name:      "publish_errors_total",
			Help:      "Detection event publish failures.",
		}),
	}
}

// ObserveHTTPRequest records one completed HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	m.HTTPRequestsTotal.WithLabelValues(method, route, code).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
