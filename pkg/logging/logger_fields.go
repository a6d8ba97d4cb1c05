package logging

import "time"

func String(key, value string) Field { return Field{Key: key, Value: value} }

func Int(key string, value int) Field { return Field{Key: key, Value: value} }

func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

func Any(key string, value any) Field { return Field{Key: key, Value: value} }

// Duration logs d in its String form, e.g. "1.5s".
func Duration(key string, d time.Duration) Field {
	return String(key, d.String())
}

// Error logs err under "error". A nil error logs a null value.
func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return String("error", err.Error())
}

func Component(name string) Field { return String("component", name) }

func Latency(d time.Duration) Field { return Duration("latency", d) }

func Count(n int) Field { return Int("count", n) }

func Path(p string) Field { return String("path", p) }

// Search fields.

// RunID correlates every line logged by one search restart.
func RunID(id string) Field { return String("run_id", id) }

func Restart(n int) Field { return Int("restart", n) }

func Objective(name string) Field { return String("objective", name) }

// Metric names the similarity index that ranks merge candidates.
func Metric(name string) Field { return String("similarity", name) }

func Score(v float64) Field { return Float64("score", v) }

func Iteration(i int) Field { return Int("iteration", i) }

func Node(n int) Field { return Int("node", n) }

func Cluster(id int) Field { return Int("cluster", id) }

func Clusters(n int) Field { return Int("clusters", n) }
