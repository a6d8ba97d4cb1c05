package algorithms

import (
	"math"

	"github.com/dd0wney/cluso-partition/pkg/adjacency"
)

// sharedNeighbors returns the nodes adjacent to both n1 and n2, ascending.
func sharedNeighbors(a *adjacency.Matrix, n1, n2 int) []int {
	setB := a.NeighborSet(n2)
	var shared []int
	for _, z := range a.Neighbors(n1) {
		if setB[z] {
			shared = append(shared, z)
		}
	}
	return shared
}

// ResourceAllocationIndex is -Σ 1/deg(z) over the shared neighbours z of n1
// and n2. The sum is negated, so more negative means more related.
func ResourceAllocationIndex(a *adjacency.Matrix, n1, n2 int) float64 {
	sum := 0.0
	for _, z := range sharedNeighbors(a, n1, n2) {
		deg := float64(a.ColSum(z)) / 2
		if deg > 0 {
			sum += 1.0 / deg
		}
	}
	return -sum
}

// AdamicAdarIndex is Σ 1/log(deg(z)) over the shared neighbours z of n1 and
// n2, giving more weight to common neighbours with fewer connections.
func AdamicAdarIndex(a *adjacency.Matrix, n1, n2 int) float64 {
	sum := 0.0
	for _, z := range sharedNeighbors(a, n1, n2) {
		logDeg := math.Log(float64(a.ColSum(z)) / 2)
		// log(deg) <= 0 would divide by zero or flip the sign
		if logDeg > 0 {
			sum += 1.0 / logDeg
		}
	}
	return sum
}
