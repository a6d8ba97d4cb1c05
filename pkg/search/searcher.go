// Package search drives the partition engine with an accept-if-better loop:
// merge a node into its most similar neighbour's cluster, score the result
// and undo the merge unless the objective improved.
package search

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-partition/pkg/algorithms"
	"github.com/dd0wney/cluso-partition/pkg/logging"
	"github.com/dd0wney/cluso-partition/pkg/metrics"
	"github.com/dd0wney/cluso-partition/pkg/parallel"
	"github.com/dd0wney/cluso-partition/pkg/partition"
)

// Run performs one restart on ds in place. On cancellation the partial
// result is returned together with the context error; its partition is
// still the best one seen, since rejected merges are always undone.
func (s *Searcher) Run(ctx context.Context, ds *partition.DisjointSet) (*Result, error) {
	return s.run(ctx, ds, 0)
}

func (s *Searcher) run(ctx context.Context, ds *partition.DisjointSet, restart int) (*Result, error) {
	opts := s.Options
	rng := rand.New(rand.NewPCG(opts.Seed, uint64(restart)))

	res := &Result{
		RunID:     uuid.NewString(),
		Restart:   restart,
		Partition: ds,
	}
	log := s.logger().With(
		logging.RunID(res.RunID),
		logging.Restart(restart),
		logging.Objective(opts.Objective.String()),
		logging.Metric(opts.Metric.String()),
	)

	start := time.Now()
	current := opts.Objective.Evaluate(s.Matrix, ds)
	res.Initial = current
	log.Debug("search started", logging.Score(current), logging.Clusters(ds.NumClusters()))

	var err error
	n := s.Matrix.N()
	for i := 0; i < opts.Iterations && n > 0; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		res.Iterations++

		u := rng.IntN(n)
		v, ok := s.candidate(ds, u, rng)
		if !ok || !ds.Merge(u, v) {
			res.Noops++
			s.recordMerge(metrics.OutcomeNoop)
			continue
		}

		score := opts.Objective.Evaluate(s.Matrix, ds)
		if !opts.Objective.Better(score, current) {
			ds.Undo()
			res.Rejected++
			s.recordMerge(metrics.OutcomeRejected)
			continue
		}

		current = score
		res.Accepted++
		s.recordMerge(metrics.OutcomeAccepted)
		log.Debug("merge accepted",
			logging.Iteration(i),
			logging.Node(u),
			logging.Int("into", v),
			logging.Score(score),
		)
	}

	res.Score = current
	res.Duration = time.Since(start)

	status := metrics.StatusOK
	if err != nil {
		status = metrics.StatusCancelled
	}
	if s.Metrics != nil {
		s.Metrics.RecordRun(opts.Objective.String(), status, res.Duration)
	}
	log.Info("search finished",
		logging.Score(res.Score),
		logging.Clusters(ds.NumClusters()),
		logging.Int("accepted", res.Accepted),
		logging.Int("rejected", res.Rejected),
		logging.Latency(res.Duration),
		logging.String("status", status),
	)

	if err != nil {
		return res, fmt.Errorf("search %s: %w", res.RunID, err)
	}
	return res, nil
}

// candidate picks the neighbour of u to merge with: the most similar one
// outside u's cluster, or a random such neighbour when every candidate
// scores zero.
func (s *Searcher) candidate(ds *partition.DisjointSet, u int, rng *rand.Rand) (int, bool) {
	outside := func(v int) bool { return !ds.Connected(u, v) }

	ranked := algorithms.MostSimilar(s.Matrix, u, algorithms.NodeSimilarityOptions{
		Metric:        s.Options.Metric,
		TopK:          s.Options.TopK,
		NeighborsOnly: true,
		Exclude:       func(v int) bool { return !outside(v) },
	})
	if len(ranked.Similar) > 0 {
		// Draw among the top candidates so restarts explore different merges.
		return ranked.Similar[rng.IntN(len(ranked.Similar))].NodeB, true
	}

	var pool []int
	for _, v := range s.Matrix.Neighbors(u) {
		if outside(v) {
			pool = append(pool, v)
		}
	}
	if len(pool) == 0 {
		return 0, false
	}
	return pool[rng.IntN(len(pool))], true
}

// RunRestarts runs Options.Restarts independent searches, each on its own
// clone of ds, and returns the best result. ds is not modified. Restarts
// that exhaust Options.Timeout still count; cancelling ctx returns the best
// finished result with the context error.
func (s *Searcher) RunRestarts(ctx context.Context, ds *partition.DisjointSet) (*Result, error) {
	opts := s.Options
	restarts := max(opts.Restarts, 1)

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, restarts)

	var (
		mu     sync.Mutex
		panics []error
	)
	pool, err := parallel.NewWorkerPool(workers,
		parallel.WithLogger(s.logger()),
		parallel.WithPanicHandler(func(restart int, r any) {
			mu.Lock()
			panics = append(panics, fmt.Errorf("%w: restart %d: %v", ErrRestartPanicked, restart, r))
			mu.Unlock()
		}),
	)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, restarts)
	errs := make([]error, restarts)
	for i := 0; i < restarts; i++ {
		start := ds.Clone()
		pool.Submit(i, func() {
			results[i], errs[i] = s.run(ctx, start, i)
		})
	}
	pool.Wait()

	var best *Result
	for _, res := range results {
		if res == nil {
			continue
		}
		if best == nil || opts.Objective.Better(res.Score, best.Score) {
			best = res
		}
	}

	if best == nil {
		return nil, errors.Join(append([]error{ErrNoResult}, append(panics, errs...)...)...)
	}
	if s.Metrics != nil {
		s.Metrics.SetBest(opts.Objective.String(), best.Score, best.Partition.NumClusters())
	}
	s.logger().Info("restarts finished",
		logging.RunID(best.RunID),
		logging.Restart(best.Restart),
		logging.Score(best.Score),
		logging.Count(restarts),
		logging.Int("failed", len(panics)),
	)

	if err := ctx.Err(); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return best, err
	}
	return best, nil
}

func (s *Searcher) logger() logging.Logger {
	if s.Logger == nil {
		return logging.NewNopLogger()
	}
	return s.Logger
}

func (s *Searcher) recordMerge(outcome string) {
	if s.Metrics != nil {
		s.Metrics.RecordMerge(outcome)
	}
}
