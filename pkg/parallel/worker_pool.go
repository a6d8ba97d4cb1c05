// Package parallel runs independent search restarts on a bounded set of
// goroutines.
package parallel

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/dd0wney/cluso-partition/pkg/logging"
)

// ErrTooManyWorkers is returned when the worker count exceeds MaxWorkers.
var ErrTooManyWorkers = errors.New("worker count exceeds maximum")

// MaxWorkers bounds the pool size so the queue capacity cannot overflow.
const MaxWorkers = math.MaxInt / 2

// PanicHandler receives the index of a task that panicked and the recovered
// value. It runs on the worker goroutine.
type PanicHandler func(index int, recovered any)

type task struct {
	index int
	run   func()
}

// WorkerPool runs indexed tasks on a fixed number of goroutines. A panicking
// task is recovered, logged and reported; the worker keeps going.
type WorkerPool struct {
	workers int
	queue   chan task
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex // guards closed against a send racing Close
	closed  bool

	logger  logging.Logger
	onPanic PanicHandler
}

// PoolOption configures a WorkerPool.
type PoolOption func(*WorkerPool)

// WithLogger logs recovered panics.
func WithLogger(logger logging.Logger) PoolOption {
	return func(wp *WorkerPool) { wp.logger = logger }
}

// WithPanicHandler is called after a recovered panic has been logged.
func WithPanicHandler(fn PanicHandler) PoolOption {
	return func(wp *WorkerPool) { wp.onPanic = fn }
}

// NewWorkerPool starts workers goroutines. Non-positive counts become 1.
func NewWorkerPool(workers int, opts ...PoolOption) (*WorkerPool, error) {
	if workers <= 0 {
		workers = 1
	}
	if workers > MaxWorkers {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyWorkers, workers, MaxWorkers)
	}

	wp := &WorkerPool{
		workers: workers,
		queue:   make(chan task, workers*2),
		logger:  logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(wp)
	}

	wp.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go wp.worker(i)
	}
	return wp, nil
}

// Workers returns the number of worker goroutines.
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()
	for t := range wp.queue {
		wp.run(id, t)
	}
}

func (wp *WorkerPool) run(id int, t task) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		wp.logger.Error("task panicked",
			logging.Component("worker-pool"),
			logging.Int("worker", id),
			logging.Int("task", t.index),
			logging.String("panic", fmt.Sprint(r)),
		)
		if wp.onPanic != nil {
			wp.onPanic(t.index, r)
		}
	}()
	t.run()
}

// Submit queues fn under index, blocking while the queue is full. It
// returns false once the pool is closed.
func (wp *WorkerPool) Submit(index int, fn func()) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.closed {
		return false
	}
	wp.queue <- task{index: index, run: fn}
	return true
}

// Close stops accepting tasks and waits for queued ones to finish. It is
// safe to call more than once and from several goroutines.
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.queue)
		wp.mu.Unlock()
	})
	wp.wg.Wait()
}

// Wait is Close. It reads better after a batch of Submit calls.
func (wp *WorkerPool) Wait() {
	wp.Close()
}
