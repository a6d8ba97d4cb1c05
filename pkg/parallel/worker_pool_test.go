package parallel

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dd0wney/cluso-partition/pkg/logging"
)

func newPool(t testing.TB, workers int, opts ...PoolOption) *WorkerPool {
	t.Helper()
	pool, err := NewWorkerPool(workers, opts...)
	if err != nil {
		t.Fatalf("NewWorkerPool(%d): %v", workers, err)
	}
	return pool
}

func TestNewWorkerPool_Sizing(t *testing.T) {
	for _, tt := range []struct{ requested, want int }{
		{1, 1}, {8, 8}, {0, 1}, {-3, 1},
	} {
		pool := newPool(t, tt.requested)
		if got := pool.Workers(); got != tt.want {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d", tt.requested, got, tt.want)
		}
		pool.Close()
	}

	if _, err := NewWorkerPool(math.MaxInt); !errors.Is(err, ErrTooManyWorkers) {
		t.Errorf("NewWorkerPool(MaxInt) error = %v, want ErrTooManyWorkers", err)
	}
}

// Each restart writes only its own slot, the way the searcher collects
// results.
func TestWorkerPool_IndexedResults(t *testing.T) {
	const restarts = 40
	pool := newPool(t, 3)

	results := make([]int, restarts)
	for i := 0; i < restarts; i++ {
		pool.Submit(i, func() {
			results[i] = i * i
		})
	}
	pool.Wait()

	for i, got := range results {
		if got != i*i {
			t.Fatalf("results[%d] = %d, want %d", i, got, i*i)
		}
	}
}

func TestWorkerPool_BoundsConcurrency(t *testing.T) {
	const workers = 2
	pool := newPool(t, workers)

	var running, peak int64
	for i := 0; i < 12; i++ {
		pool.Submit(i, func() {
			n := atomic.AddInt64(&running, 1)
			for {
				p := atomic.LoadInt64(&peak)
				if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt64(&running, -1)
		})
	}
	pool.Close()

	if peak > workers {
		t.Errorf("peak concurrency %d exceeds %d workers", peak, workers)
	}
}

func TestWorkerPool_PanicsAreReportedByIndex(t *testing.T) {
	var buf bytes.Buffer
	var mu sync.Mutex
	var failed []int
	pool := newPool(t, 4,
		WithLogger(logging.NewJSONLogger(&buf, logging.InfoLevel)),
		WithPanicHandler(func(index int, r any) {
			if r != "bad restart" {
				t.Errorf("recovered %v", r)
			}
			mu.Lock()
			failed = append(failed, index)
			mu.Unlock()
		}),
	)

	var finished int64
	for i := 0; i < 10; i++ {
		pool.Submit(i, func() {
			if i%3 == 0 {
				panic("bad restart")
			}
			atomic.AddInt64(&finished, 1)
		})
	}
	pool.Close()

	slices.Sort(failed)
	if !slices.Equal(failed, []int{0, 3, 6, 9}) {
		t.Errorf("panicked tasks = %v, want [0 3 6 9]", failed)
	}
	if finished != 6 {
		t.Errorf("finished = %d, want 6", finished)
	}

	var logged []int
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var e logging.Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("unmarshal %q: %v", sc.Text(), err)
		}
		if e.Level != "ERROR" || e.Message != "task panicked" || e.Fields["panic"] != "bad restart" {
			t.Errorf("unexpected entry %+v", e)
		}
		logged = append(logged, int(e.Fields["task"].(float64)))
	}
	slices.Sort(logged)
	if !slices.Equal(logged, failed) {
		t.Errorf("logged tasks %v, handled %v", logged, failed)
	}
}

func TestWorkerPool_SubmitAfterClose(t *testing.T) {
	pool := newPool(t, 2)
	if !pool.Submit(0, func() {}) {
		t.Fatal("Submit before Close returned false")
	}
	pool.Close()

	if pool.Submit(1, func() { t.Error("task ran after Close") }) {
		t.Error("Submit after Close returned true")
	}
}

// Close may race with submitters and with itself without panicking on a
// closed channel.
func TestWorkerPool_CloseRaces(t *testing.T) {
	for round := 0; round < 25; round++ {
		pool := newPool(t, 4)

		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				for j := 0; j < 10; j++ {
					pool.Submit(g*10+j, func() { time.Sleep(100 * time.Microsecond) })
				}
			}()
			go func() {
				defer wg.Done()
				pool.Close()
			}()
		}
		wg.Wait()
		pool.Close()
	}
}

func BenchmarkWorkerPool_Submit(b *testing.B) {
	pool := newPool(b, 8)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.Submit(i, func() {})
	}
	pool.Close()
}
