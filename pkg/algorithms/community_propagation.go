package algorithms

import (
	"github.com/dd0wney/cluso-partition/pkg/adjacency"
	"github.com/dd0wney/cluso-partition/pkg/partition"
)

// LabelPropagation performs label propagation for community detection.
// Nodes are visited in ascending order and adopt the most frequent label
// among their neighbours. A node keeps its label when it is among the most
// frequent, otherwise ties go to the smallest label, so the result is
// deterministic. The returned membership can seed NewFromMembership.
func LabelPropagation(a *adjacency.Matrix, maxIterations int) partition.Membership {
	labels := make([]int, a.N())
	for node := range labels {
		labels[node] = node
	}

	// Iterate until convergence or max iterations
	for iter := 0; iter < maxIterations; iter++ {
		changed := false

		for node := range labels {
			neighbors := a.Neighbors(node)
			if len(neighbors) == 0 {
				continue
			}
			labelCount := make(map[int]int, len(neighbors))
			for _, neighbor := range neighbors {
				labelCount[labels[neighbor]]++
			}

			maxCount := 0
			for _, count := range labelCount {
				if count > maxCount {
					maxCount = count
				}
			}
			best := labels[node]
			if labelCount[best] < maxCount {
				best = -1
				for label, count := range labelCount {
					if count == maxCount && (best == -1 || label < best) {
						best = label
					}
				}
			}

			if best != labels[node] {
				labels[node] = best
				changed = true
			}
		}

		if !changed {
			break // Converged
		}
	}

	membership := make(partition.Membership, len(labels))
	for node, label := range labels {
		membership[node] = label
	}
	return membership
}
