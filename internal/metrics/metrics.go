package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private Prometheus registry and the collectors the service reports to.
// It implements domain.EnrollmentMetrics.
type Metrics struct {
	reg                  *prometheus.Registry
	enrollments          *prometheus.CounterVec
	collaboratorFailures *prometheus.CounterVec
	httpRequests         *prometheus.HistogramVec
}

// New creates the registry together with the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		reg: reg,
		enrollments: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "event_enrollments_total",
			Help: "Enrollment attempts by outcome.",
		}, []string{"outcome"}),
		collaboratorFailures: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "collaborator_failures_total",
			Help: "Failed calls to external collaborators.",
		}, []string{"collaborator", "operation"}),
		httpRequests: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and status.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) IncEnrollment(outcome string) {
	m.enrollments.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncCollaboratorFailure(collaborator, operation string) {
	m.collaboratorFailures.WithLabelValues(collaborator, operation).Inc()
}

// ObserveHTTPRequest records one served request. route should be the mux pattern,
// not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
