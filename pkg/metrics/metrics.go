package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RecordMerge counts one search iteration by the outcome of its merge. A
// rejected merge is always reverted, so it also counts an undo.
func (r *Registry) RecordMerge(outcome string) {
	r.MergesTotal.WithLabelValues(outcome).Inc()
	r.IterationsTotal.Inc()
	if outcome == OutcomeRejected {
		r.UndosTotal.Inc()
	}
}

// RecordRun records the duration and status of one restart.
func (r *Registry) RecordRun(objective, status string, duration time.Duration) {
	r.RunDuration.WithLabelValues(objective).Observe(duration.Seconds())
	r.RestartsTotal.WithLabelValues(status).Inc()
}

// SetBest publishes the best score and its cluster count.
func (r *Registry) SetBest(objective string, score float64, clusters int) {
	r.ObjectiveScore.WithLabelValues(objective).Set(score)
	r.Clusters.Set(float64(clusters))
}

// RecordGraphLoad records the size of the loaded graph and how long it took.
func (r *Registry) RecordGraphLoad(source string, nodes, edges int, duration time.Duration) {
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
	r.GraphLoadDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordReport counts one report save.
func (r *Registry) RecordReport(err error) {
	status := StatusOK
	if err != nil {
		status = StatusFailed
	}
	r.ReportWritesTotal.WithLabelValues(status).Inc()
}

// UpdateSystemMetrics samples goroutine and memory statistics.
func (r *Registry) UpdateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(m.Alloc))
	r.MemorySysBytes.Set(float64(m.Sys))
}

// WriteToTextfile writes every metric in the text exposition format, for
// node_exporter's textfile collector.
func (r *Registry) WriteToTextfile(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.UpdateSystemMetrics()
	return prometheus.WriteToTextfile(path, r.registry)
}
