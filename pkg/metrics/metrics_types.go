package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Merge outcomes recorded by RecordMerge.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeNoop     = "noop"
)

// Run and restart statuses.
const (
	StatusOK        = "ok"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// Registry holds all metrics for the application
type Registry struct {
	// Search Metrics
	MergesTotal     *prometheus.CounterVec
	UndosTotal      prometheus.Counter
	IterationsTotal prometheus.Counter
	ObjectiveScore  *prometheus.GaugeVec
	Clusters        prometheus.Gauge
	RunDuration     *prometheus.HistogramVec
	RestartsTotal   *prometheus.CounterVec

	// Graph Metrics
	GraphNodes        prometheus.Gauge
	GraphEdges        prometheus.Gauge
	GraphLoadDuration *prometheus.HistogramVec

	// Report Metrics
	ReportWritesTotal *prometheus.CounterVec

	// System Metrics
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.Mutex // serializes WriteToTextfile
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initSearchMetrics()
	r.initGraphMetrics()
	r.initReportMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
