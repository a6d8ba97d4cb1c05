package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSearchMetrics() {
	r.MergesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "partition_merges_total",
			Help: "Total number of proposed merges by outcome",
		},
		[]string{"outcome"},
	)

	r.UndosTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "partition_undos_total",
			Help: "Total number of merges reverted with undo",
		},
	)

	r.IterationsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "partition_search_iterations_total",
			Help: "Total number of search iterations across all restarts",
		},
	)

	r.ObjectiveScore = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "partition_objective_score",
			Help: "Best objective score of the most recent run",
		},
		[]string{"objective"},
	)

	r.Clusters = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "partition_clusters",
			Help: "Number of clusters in the best partition",
		},
	)

	r.RunDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "partition_run_duration_seconds",
			Help:    "Duration of a single search restart in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0, 60.0},
		},
		[]string{"objective"},
	)

	r.RestartsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "partition_restarts_total",
			Help: "Total number of search restarts by status",
		},
		[]string{"status"},
	)
}
