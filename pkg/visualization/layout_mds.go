package visualization

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/mds"

	"github.com/dd0wney/cluso-partition/pkg/adjacency"
)

// ErrScalingFailed is returned when classical scaling finds no positive
// eigenvalue.
var ErrScalingFailed = errors.New("multidimensional scaling failed")

// MDSLayout places nodes by classical (Torgerson) multidimensional scaling
// of their shortest-path distances, so hop distance maps to Euclidean
// distance as closely as two dimensions allow.
type MDSLayout struct {
	config *LayoutConfig
}

// NewMDSLayout creates a new MDS layout
func NewMDSLayout(config *LayoutConfig) *MDSLayout {
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &MDSLayout{config: config}
}

// ComputeLayout scales the hop-distance matrix to two dimensions.
// Unreachable pairs are placed one hop beyond the graph's diameter.
func (ml *MDSLayout) ComputeLayout(a *adjacency.Matrix) ([]Position, error) {
	n := a.N()
	cfg := ml.config
	if n == 0 {
		return []Position{}, nil
	}
	if n == 1 {
		return []Position{{X: cfg.Width / 2, Y: cfg.Height / 2}}, nil
	}

	var coords mat.Dense
	if k, _ := mds.TorgersonScaling(&coords, nil, hopDistances(a)); k == 0 {
		return nil, ErrScalingFailed
	}

	_, cols := coords.Dims()
	positions := make([]Position, n)
	for i := range positions {
		positions[i].X = coords.At(i, 0)
		if cols > 1 {
			positions[i].Y = coords.At(i, 1)
		}
	}

	return normalizePositions(positions, cfg.Width, cfg.Height, cfg.Padding), nil
}

// hopDistances returns the all-pairs shortest path lengths of a.
func hopDistances(a *adjacency.Matrix) *mat.SymDense {
	n := a.N()
	paths, _ := path.FloydWarshall(a.Graph())

	dist := mat.NewSymDense(n, nil)
	diameter := 0.0
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			w := paths.Weight(int64(i), int64(j))
			if !math.IsInf(w, 1) {
				diameter = math.Max(diameter, w)
			}
			dist.SetSym(i, j, w)
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.IsInf(dist.At(i, j), 1) {
				dist.SetSym(i, j, diameter+1)
			}
		}
	}
	return dist
}
