package adjacency

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var ErrTooManyEdges = errors.New("too many edges for node count")

// ErdosRenyi returns a G(n, m) random graph: exactly m distinct undirected
// edges drawn uniformly, without self-loops.
func ErdosRenyi(n, m int, rng *rand.Rand) (*Matrix, error) {
	if n <= 0 {
		return nil, fmt.Errorf("node count must be positive, got %d", n)
	}
	maxEdges := n * (n - 1) / 2
	if m < 0 || m > maxEdges {
		return nil, fmt.Errorf("%w: %d edges requested, %d nodes allow %d", ErrTooManyEdges, m, n, maxEdges)
	}

	g := New(n)
	for placed := 0; placed < m; {
		a := rng.IntN(n)
		b := rng.IntN(n)
		if a == b || g.Has(a, b) {
			continue
		}
		_ = g.SetEdge(a, b)
		placed++
	}
	return g, nil
}
