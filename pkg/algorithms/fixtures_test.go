package algorithms

import (
	"testing"

	"github.com/dd0wney/cluso-partition/pkg/adjacency"
)

func mustMatrix(t *testing.T, n int, edges [][2]int) *adjacency.Matrix {
	t.Helper()
	a, err := adjacency.FromEdges(n, edges)
	if err != nil {
		t.Fatalf("FromEdges failed: %v", err)
	}
	return a
}

// pathGraph is 0-1-2-3.
func pathGraph(t *testing.T) *adjacency.Matrix {
	return mustMatrix(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}})
}

// kiteGraph is a diamond 0-1-2-3 with chord 1-2 and a tail 3-4.
func kiteGraph(t *testing.T) *adjacency.Matrix {
	return mustMatrix(t, 5, [][2]int{{0, 1}, {0, 2}, {1, 2}, {1, 3}, {2, 3}, {3, 4}})
}

// bridgedTriangles is {0,1,2} and {3,4,5} joined by 2-3.
func bridgedTriangles(t *testing.T) *adjacency.Matrix {
	return mustMatrix(t, 6, [][2]int{{0, 1}, {0, 2}, {1, 2}, {3, 4}, {3, 5}, {4, 5}, {2, 3}})
}

func almostEqual(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	return d < eps && d > -eps
}
