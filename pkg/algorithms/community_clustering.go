package algorithms

import "github.com/dd0wney/cluso-partition/pkg/adjacency"

// ClusteringCoefficient computes the local clustering coefficient of every
// node: the fraction of neighbour pairs that are themselves adjacent.
// Nodes with fewer than two neighbours score 0.
func ClusteringCoefficient(a *adjacency.Matrix) []float64 {
	coefficients := make([]float64, a.N())

	for node := range coefficients {
		neighbors := a.Neighbors(node)
		k := len(neighbors)
		if k < 2 {
			continue
		}

		triangles := 0
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				if a.Has(neighbors[i], neighbors[j]) {
					triangles++
				}
			}
		}

		// Clustering coefficient = actual triangles / possible triangles
		coefficients[node] = float64(triangles) / float64(k*(k-1)/2)
	}

	return coefficients
}

// AverageClusteringCoefficient computes the average clustering coefficient
func AverageClusteringCoefficient(a *adjacency.Matrix) float64 {
	coefficients := ClusteringCoefficient(a)
	if len(coefficients) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, coef := range coefficients {
		sum += coef
	}
	return sum / float64(len(coefficients))
}
