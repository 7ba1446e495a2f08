package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/exam-board-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface and the distribution engine.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	distributionRuns    *prometheus.CounterVec
	groupsPlaced        *prometheus.CounterVec
	groupsUnplaced      *prometheus.CounterVec
	persistenceFailures *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	distributionRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "distribution_runs_total",
		Help: "Total distribution runs per board kind",
	}, []string{"kind"})

	groupsPlaced := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "distribution_groups_placed_total",
		Help: "Groups that received a slot",
	}, []string{"kind"})

	groupsUnplaced := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "distribution_groups_unplaced_total",
		Help: "Groups skipped for lack of an admissible slot",
	}, []string{"kind"})

	persistenceFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "distribution_persistence_failures_total",
		Help: "Board save calls that failed after a run",
	}, []string{"kind"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, distributionRuns, groupsPlaced, groupsUnplaced, persistenceFailures, goroutines)

	return &MetricsService{
		registry:            registry,
		handler:             promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:     requestDuration,
		requestTotal:        requestTotal,
		distributionRuns:    distributionRuns,
		groupsPlaced:        groupsPlaced,
		groupsUnplaced:      groupsUnplaced,
		persistenceFailures: persistenceFailures,
	}
}

// Handler exposes the registry for the /metrics endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one served request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := prometheus.Labels{"method": method, "path": path, "status": strconv.Itoa(status)}
	s.requestDuration.With(labels).Observe(duration.Seconds())
	s.requestTotal.With(labels).Inc()
}

// ObserveDistributionRun records the outcome counters of one run.
func (s *MetricsService) ObserveDistributionRun(summary models.DistributionSummary) {
	kind := string(summary.Kind)
	s.distributionRuns.WithLabelValues(kind).Inc()
	s.groupsPlaced.WithLabelValues(kind).Add(float64(summary.GroupsPlaced))
	s.groupsUnplaced.WithLabelValues(kind).Add(float64(summary.GroupsUnplaced))
	s.persistenceFailures.WithLabelValues(kind).Add(float64(summary.PersistenceFailed))
}
