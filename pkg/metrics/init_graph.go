package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "partition_graph_nodes",
			Help: "Number of nodes in the loaded graph",
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "partition_graph_edges",
			Help: "Number of undirected edges in the loaded graph",
		},
	)

	r.GraphLoadDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "partition_graph_load_duration_seconds",
			Help:    "Time to read or generate the graph in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 1.0, 10.0},
		},
		[]string{"source"},
	)
}

func (r *Registry) initReportMetrics() {
	r.ReportWritesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "partition_report_writes_total",
			Help: "Total number of report saves by status",
		},
		[]string{"status"},
	)
}
