package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	if err := g.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Gauge.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if r.MergesTotal == nil {
		t.Error("MergesTotal not initialized")
	}
	if r.RunDuration == nil {
		t.Error("RunDuration not initialized")
	}
	if r.GraphNodes == nil {
		t.Error("GraphNodes not initialized")
	}
	if r.ReportWritesTotal == nil {
		t.Error("ReportWritesTotal not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestNewRegistry_Independent(t *testing.T) {
	// Each registry owns its collectors, so two can coexist without
	// duplicate registration panics.
	a := NewRegistry()
	b := NewRegistry()
	a.RecordMerge(OutcomeAccepted)

	if got := counterValue(t, b.MergesTotal.WithLabelValues(OutcomeAccepted)); got != 0 {
		t.Errorf("second registry counter = %v, want 0", got)
	}
}

func TestDefaultRegistry(t *testing.T) {
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()

	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordMerge(t *testing.T) {
	r := NewRegistry()

	r.RecordMerge(OutcomeAccepted)
	r.RecordMerge(OutcomeAccepted)
	r.RecordMerge(OutcomeRejected)
	r.RecordMerge(OutcomeNoop)

	tests := []struct {
		outcome string
		want    float64
	}{
		{OutcomeAccepted, 2},
		{OutcomeRejected, 1},
		{OutcomeNoop, 1},
	}
	for _, tt := range tests {
		counter, err := r.MergesTotal.GetMetricWithLabelValues(tt.outcome)
		if err != nil {
			t.Fatalf("Failed to get metric: %v", err)
		}
		if got := counterValue(t, counter); got != tt.want {
			t.Errorf("merges{outcome=%s} = %v, want %v", tt.outcome, got, tt.want)
		}
	}

	if got := counterValue(t, r.UndosTotal); got != 1 {
		t.Errorf("undos = %v, want 1", got)
	}
	if got := counterValue(t, r.IterationsTotal); got != 4 {
		t.Errorf("iterations = %v, want 4", got)
	}
}

func TestRecordRun(t *testing.T) {
	r := NewRegistry()

	r.RecordRun("modularity", StatusOK, 100*time.Millisecond)
	r.RecordRun("modularity", StatusOK, 2*time.Second)
	r.RecordRun("modularity", StatusCancelled, time.Millisecond)

	observer, err := r.RunDuration.GetMetricWithLabelValues("modularity")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	histogram, ok := observer.(prometheus.Histogram)
	if !ok {
		t.Fatal("RunDuration child is not a histogram")
	}
	var metric dto.Metric
	if err := histogram.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Histogram.GetSampleCount() != 3 {
		t.Errorf("Sample count = %v, want 3", metric.Histogram.GetSampleCount())
	}

	if got := counterValue(t, r.RestartsTotal.WithLabelValues(StatusOK)); got != 2 {
		t.Errorf("restarts{ok} = %v, want 2", got)
	}
	if got := counterValue(t, r.RestartsTotal.WithLabelValues(StatusCancelled)); got != 1 {
		t.Errorf("restarts{cancelled} = %v, want 1", got)
	}
}

func TestSetBest(t *testing.T) {
	r := NewRegistry()
	r.SetBest("jaccard-entropy", -3.5, 4)

	if got := gaugeValue(t, r.ObjectiveScore.WithLabelValues("jaccard-entropy")); got != -3.5 {
		t.Errorf("objective score = %v, want -3.5", got)
	}
	if got := gaugeValue(t, r.Clusters); got != 4 {
		t.Errorf("clusters = %v, want 4", got)
	}
}

func TestRecordGraphLoad(t *testing.T) {
	r := NewRegistry()
	r.RecordGraphLoad("dimacs", 10, 12, 5*time.Millisecond)

	if got := gaugeValue(t, r.GraphNodes); got != 10 {
		t.Errorf("graph nodes = %v, want 10", got)
	}
	if got := gaugeValue(t, r.GraphEdges); got != 12 {
		t.Errorf("graph edges = %v, want 12", got)
	}
}

func TestRecordReport(t *testing.T) {
	r := NewRegistry()
	r.RecordReport(nil)
	r.RecordReport(errors.New("disk full"))
	r.RecordReport(nil)

	if got := counterValue(t, r.ReportWritesTotal.WithLabelValues(StatusOK)); got != 2 {
		t.Errorf("report writes{ok} = %v, want 2", got)
	}
	if got := counterValue(t, r.ReportWritesTotal.WithLabelValues(StatusFailed)); got != 1 {
		t.Errorf("report writes{failed} = %v, want 1", got)
	}
}

func TestUpdateSystemMetrics(t *testing.T) {
	r := NewRegistry()
	r.UpdateSystemMetrics()

	if gaugeValue(t, r.GoRoutines) <= 0 {
		t.Error("Expected goroutines > 0")
	}
	if gaugeValue(t, r.MemorySysBytes) <= 0 {
		t.Error("Expected memory sys bytes > 0")
	}
}

func TestGetPrometheusRegistry(t *testing.T) {
	r := NewRegistry()
	promRegistry := r.GetPrometheusRegistry()

	if promRegistry == nil {
		t.Fatal("GetPrometheusRegistry() returned nil")
	}

	metrics, err := promRegistry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	expectedMetrics := []string{
		"partition_undos_total",
		"partition_clusters",
		"partition_graph_nodes",
		"partition_goroutines",
	}

	metricNames := make(map[string]bool)
	for _, m := range metrics {
		metricNames[m.GetName()] = true
	}
	for _, expected := range expectedMetrics {
		if !metricNames[expected] {
			t.Errorf("Expected metric %s not found", expected)
		}
	}
}

func TestWriteToTextfile(t *testing.T) {
	r := NewRegistry()
	r.RecordMerge(OutcomeAccepted)
	r.SetBest("modularity", 0.4, 3)

	path := filepath.Join(t.TempDir(), "partition.prom")
	if err := r.WriteToTextfile(path); err != nil {
		t.Fatalf("WriteToTextfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read textfile: %v", err)
	}
	out := string(data)
	for _, want := range []string{
		`partition_merges_total{outcome="accepted"} 1`,
		`partition_objective_score{objective="modularity"} 0.4`,
		`partition_clusters 3`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("textfile missing %q", want)
		}
	}
}

func TestWriteToTextfile_BadPath(t *testing.T) {
	r := NewRegistry()
	if err := r.WriteToTextfile(filepath.Join(t.TempDir(), "missing", "x.prom")); err == nil {
		t.Error("expected error for missing directory")
	}
}
