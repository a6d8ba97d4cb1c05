package algorithms

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/community"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/dd0wney/cluso-partition/pkg/adjacency"
	"github.com/dd0wney/cluso-partition/pkg/partition"
)

// SizeEntropy is -Σ (n_c/N)·log2(n_c/N) over the clusters of ds, with N the
// node count of a. It is 0 for one cluster holding every node and log2(N)
// for all singletons.
func SizeEntropy(a *adjacency.Matrix, ds *partition.DisjointSet) float64 {
	n := float64(a.N())
	if n == 0 {
		return 0
	}
	h := 0.0
	ds.RangeClusters(func(_ int, members partition.Cluster) bool {
		h += xlog2x(float64(len(members)) / n)
		return true
	})
	return -h
}

// JaccardEntropy sums s·log2(s) + (1-s)·log2(1-s) over every unordered pair
// of distinct members of every cluster, where s is the pair's Jaccard index.
// Lower totals mean more internally coherent clusters.
func JaccardEntropy(a *adjacency.Matrix, ds *partition.DisjointSet) float64 {
	total := 0.0
	ds.RangeClusters(func(_ int, members partition.Cluster) bool {
		nodes := members.Sorted()
		for i := 0; i < len(nodes); i++ {
			for j := i + 1; j < len(nodes); j++ {
				s := JaccardIndex(a, nodes[i], nodes[j])
				total += xlog2x(s) + xlog2x(1-s)
			}
		}
		return true
	})
	return total
}

// xlog2x is x·log2(x) with the limit 0 at x = 0.
func xlog2x(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return x * math.Log2(x)
}

// Modularity is Newman's Q at resolution 1 for the partition in ds. Nodes of
// a without a cluster count as singletons; cluster members outside a are
// ignored. A graph without edges scores 0.
func Modularity(a *adjacency.Matrix, ds *partition.DisjointSet) float64 {
	if a.EdgeCount() == 0 {
		return 0
	}
	g := a.Graph()

	var communities [][]graph.Node
	seen := make(map[int]bool, a.N())
	ds.RangeClusters(func(_ int, members partition.Cluster) bool {
		var nodes []graph.Node
		for _, node := range members.Sorted() {
			if node < 0 || node >= a.N() {
				continue
			}
			seen[node] = true
			nodes = append(nodes, simple.Node(int64(node)))
		}
		if len(nodes) > 0 {
			communities = append(communities, nodes)
		}
		return true
	})
	for node := 0; node < a.N(); node++ {
		if !seen[node] {
			communities = append(communities, []graph.Node{simple.Node(int64(node))})
		}
	}
	return community.Q(g, communities, 1)
}

// Objective selects the partition quality score a search optimizes.
type Objective int

const (
	// ObjectiveJaccardEntropy is minimized.
	ObjectiveJaccardEntropy Objective = iota
	// ObjectiveSizeEntropy is minimized.
	ObjectiveSizeEntropy
	// ObjectiveModularity is maximized.
	ObjectiveModularity
)

// String returns the configuration name of the objective.
func (o Objective) String() string {
	switch o {
	case ObjectiveJaccardEntropy:
		return "jaccard-entropy"
	case ObjectiveSizeEntropy:
		return "size-entropy"
	case ObjectiveModularity:
		return "modularity"
	default:
		return fmt.Sprintf("Objective(%d)", int(o))
	}
}

// ParseObjective converts a configuration name to an Objective.
func ParseObjective(s string) (Objective, error) {
	switch s {
	case "jaccard-entropy":
		return ObjectiveJaccardEntropy, nil
	case "size-entropy":
		return ObjectiveSizeEntropy, nil
	case "modularity":
		return ObjectiveModularity, nil
	default:
		return 0, fmt.Errorf("unknown objective %q", s)
	}
}

// Evaluate scores the current partition of ds.
func (o Objective) Evaluate(a *adjacency.Matrix, ds *partition.DisjointSet) float64 {
	switch o {
	case ObjectiveSizeEntropy:
		return SizeEntropy(a, ds)
	case ObjectiveModularity:
		return Modularity(a, ds)
	default:
		return JaccardEntropy(a, ds)
	}
}

// Better reports whether candidate strictly improves on current.
func (o Objective) Better(candidate, current float64) bool {
	if o == ObjectiveModularity {
		return candidate > current
	}
	return candidate < current
}
