// Package adjacency holds the square binary adjacency matrix consumed by the
// partition engine and the scoring functions, plus the readers and generators
// that produce it.
package adjacency

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrNotSquare    = errors.New("adjacency matrix is not square")
	ErrNotSymmetric = errors.New("adjacency matrix is not symmetric")
	ErrNotBinary    = errors.New("adjacency matrix is not binary")
	ErrSelfLoop     = errors.New("adjacency matrix has a self-loop")
	ErrNodeRange    = errors.New("node out of range")
)

// Matrix is an N×N zero/one adjacency matrix. Callers own it; the engine and
// the similarity functions only read it.
type Matrix struct {
	n    int
	data *mat.Dense
}

// New returns an empty n×n matrix.
func New(n int) *Matrix {
	if n <= 0 {
		return &Matrix{}
	}
	return &Matrix{n: n, data: mat.NewDense(n, n, nil)}
}

// FromDense wraps a square dense matrix. Non-zero entries are stored as 1.
func FromDense(d mat.Matrix) (*Matrix, error) {
	r, c := d.Dims()
	if r != c {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotSquare, r, c)
	}
	m := New(r)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if d.At(i, j) != 0 {
				m.data.Set(i, j, 1)
			}
		}
	}
	return m, nil
}

// FromRows builds a matrix from row slices. Every row must have len(rows) entries.
func FromRows(rows [][]float64) (*Matrix, error) {
	n := len(rows)
	m := New(n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrNotSquare, i, len(row), n)
		}
		for j, v := range row {
			if v != 0 {
				m.data.Set(i, j, 1)
			}
		}
	}
	return m, nil
}

// FromEdges builds an undirected n-node matrix from an edge list.
func FromEdges(n int, edges [][2]int) (*Matrix, error) {
	m := New(n)
	for _, e := range edges {
		if err := m.SetEdge(e[0], e[1]); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// N returns the number of nodes.
func (m *Matrix) N() int {
	return m.n
}

// Has reports whether A[i][j] is set.
func (m *Matrix) Has(i, j int) bool {
	if !m.inRange(i) || !m.inRange(j) {
		return false
	}
	return m.data.At(i, j) != 0
}

// At returns A[i][j] as 0 or 1.
func (m *Matrix) At(i, j int) int {
	if m.Has(i, j) {
		return 1
	}
	return 0
}

// SetEdge sets both A[i][j] and A[j][i].
func (m *Matrix) SetEdge(i, j int) error {
	if !m.inRange(i) || !m.inRange(j) {
		return fmt.Errorf("%w: edge (%d, %d) in %d-node matrix", ErrNodeRange, i, j, m.n)
	}
	m.data.Set(i, j, 1)
	m.data.Set(j, i, 1)
	return nil
}

// RowSum returns the number of set entries in row i.
func (m *Matrix) RowSum(i int) int {
	if !m.inRange(i) {
		return 0
	}
	sum := 0
	for _, v := range m.data.RawRowView(i) {
		if v != 0 {
			sum++
		}
	}
	return sum
}

// ColSum returns the number of set entries in column j.
func (m *Matrix) ColSum(j int) int {
	if !m.inRange(j) {
		return 0
	}
	sum := 0
	for i := 0; i < m.n; i++ {
		if m.data.At(i, j) != 0 {
			sum++
		}
	}
	return sum
}

// Degree returns half the row sum of node i. Every undirected edge is stored
// twice across the matrix, so the halved count is the degree convention used
// by all similarity indices.
func (m *Matrix) Degree(i int) float64 {
	return float64(m.RowSum(i)) / 2.0
}

// Neighbors returns the columns set in row i, ascending.
func (m *Matrix) Neighbors(i int) []int {
	if !m.inRange(i) {
		return nil
	}
	var out []int
	for j, v := range m.data.RawRowView(i) {
		if v != 0 {
			out = append(out, j)
		}
	}
	return out
}

// NeighborSet returns the columns set in row i as a set.
func (m *Matrix) NeighborSet(i int) map[int]bool {
	set := make(map[int]bool)
	for _, j := range m.Neighbors(i) {
		set[j] = true
	}
	return set
}

// Edges returns every undirected edge once as (i, j) with i < j.
func (m *Matrix) Edges() [][2]int {
	var edges [][2]int
	for i := 0; i < m.n; i++ {
		for j := i + 1; j < m.n; j++ {
			if m.data.At(i, j) != 0 || m.data.At(j, i) != 0 {
				edges = append(edges, [2]int{i, j})
			}
		}
	}
	return edges
}

// EdgeCount returns the number of undirected edges.
func (m *Matrix) EdgeCount() int {
	return len(m.Edges())
}

// Dense returns a copy of the underlying matrix.
func (m *Matrix) Dense() *mat.Dense {
	if m.data == nil {
		return nil
	}
	return mat.DenseCopyOf(m.data)
}

// Validate checks the invariants the ingestion layer is expected to hold:
// square, binary, symmetric and no self-loops. The engine never calls it.
func (m *Matrix) Validate() error {
	for i := 0; i < m.n; i++ {
		if m.data.At(i, i) != 0 {
			return fmt.Errorf("%w: node %d", ErrSelfLoop, i)
		}
		for j := 0; j < m.n; j++ {
			v := m.data.At(i, j)
			if v != 0 && v != 1 {
				return fmt.Errorf("%w: A[%d][%d] = %v", ErrNotBinary, i, j, v)
			}
			if v != m.data.At(j, i) {
				return fmt.Errorf("%w: A[%d][%d] != A[%d][%d]", ErrNotSymmetric, i, j, j, i)
			}
		}
	}
	return nil
}

// Graph converts the matrix to a gonum undirected graph with node IDs 0..N-1.
// Isolated nodes are kept.
func (m *Matrix) Graph() *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := 0; i < m.n; i++ {
		g.AddNode(simple.Node(int64(i)))
	}
	for _, e := range m.Edges() {
		g.SetEdge(g.NewEdge(simple.Node(int64(e[0])), simple.Node(int64(e[1]))))
	}
	return g
}

func (m *Matrix) inRange(i int) bool {
	return i >= 0 && i < m.n
}
