package search

import (
	"errors"
	"time"

	"github.com/dd0wney/cluso-partition/pkg/adjacency"
	"github.com/dd0wney/cluso-partition/pkg/algorithms"
	"github.com/dd0wney/cluso-partition/pkg/logging"
	"github.com/dd0wney/cluso-partition/pkg/metrics"
	"github.com/dd0wney/cluso-partition/pkg/partition"
)

var (
	// ErrNoResult is returned when every restart failed.
	ErrNoResult = errors.New("no restart produced a result")

	// ErrRestartPanicked wraps the value recovered from a panicking restart.
	ErrRestartPanicked = errors.New("restart panicked")
)

// Options tunes a search.
type Options struct {
	Objective  algorithms.Objective
	Metric     algorithms.SimilarityMetric // ranks merge candidates
	TopK       int                         // each step draws among this many best candidates
	Iterations int                         // merge attempts per restart
	Restarts   int
	Workers    int    // 0 means one per CPU
	Seed       uint64 // restart i draws from PCG(Seed, i)
	Timeout    time.Duration
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Objective:  algorithms.ObjectiveJaccardEntropy,
		Metric:     algorithms.SimilarityJaccard,
		TopK:       3,
		Iterations: 1000,
		Restarts:   1,
		Seed:       1,
	}
}

// Searcher improves a partition by greedy merges, keeping a merge only when
// it makes the objective strictly better. The matrix is shared read-only;
// every run works on its own DisjointSet.
type Searcher struct {
	Matrix  *adjacency.Matrix
	Options Options
	Logger  logging.Logger    // nil disables logging
	Metrics *metrics.Registry // nil disables metrics
}

// Result describes one finished run.
type Result struct {
	RunID     string
	Restart   int
	Partition *partition.DisjointSet

	Initial float64 // objective before the first step
	Score   float64 // objective of Partition

	Iterations int
	Accepted   int
	Rejected   int
	Noops      int // steps where no candidate existed or the merge changed nothing

	Duration time.Duration
}
